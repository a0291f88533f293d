package sql

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
)

const blockColumns = `
	 b.version
	,b.previous_hash
	,b.merkle_root
	,b.block_time
	,b.n_bits
	,b.nonce
	,b.height
	,b.tentative
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row rowScanner) (*model.Block, error) {
	var (
		hashPrevBlock  []byte
		hashMerkleRoot []byte
		nBits          []byte
		err            error
	)

	block := &model.Block{
		Header: &model.BlockHeader{},
	}

	if err = row.Scan(
		&block.Header.Version,
		&hashPrevBlock,
		&hashMerkleRoot,
		&block.Header.Timestamp,
		&nBits,
		&block.Header.Nonce,
		&block.Height,
		&block.Tentative,
	); err != nil {
		return nil, err
	}

	block.Header.HashPrevBlock, err = chainhash.NewHash(hashPrevBlock)
	if err != nil {
		return nil, errors.NewStorageError("failed to convert previous hash", err)
	}

	block.Header.HashMerkleRoot, err = chainhash.NewHash(hashMerkleRoot)
	if err != nil {
		return nil, errors.NewStorageError("failed to convert merkle root", err)
	}

	block.Header.Bits = model.NewNBitFromSlice(nBits)

	return block, nil
}

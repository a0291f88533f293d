package model

import (
	"strings"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/errors"
)

// MerkleBlock is a candidate block as received from a peer: a header and the
// transaction hashes its merkle proof matched.
type MerkleBlock struct {
	Header   *BlockHeader
	TxHashes []chainhash.Hash
}

func (mb *MerkleBlock) Hash() *chainhash.Hash {
	return mb.Header.Hash()
}

// NewMerkleBlockFromString parses "<header hex>[,<tx hash>...]", the line
// format used by header import files.
func NewMerkleBlockFromString(line string) (*MerkleBlock, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")

	header, err := NewBlockHeaderFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, err
	}

	mb := &MerkleBlock{
		Header:   header,
		TxHashes: make([]chainhash.Hash, 0, len(parts)-1),
	}

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		txHash, err := chainhash.NewHashFromStr(part)
		if err != nil {
			return nil, errors.NewTxError("invalid transaction hash %q", part, err)
		}

		mb.TxHashes = append(mb.TxHashes, *txHash)
	}

	return mb, nil
}

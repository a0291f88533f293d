package model

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/bsv-blockchain/go-bc"
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/errors"
)

const BlockHeaderSize = 80

type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	Version uint32

	// Hash of the previous block header in the blockchain.
	HashPrevBlock *chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	HashMerkleRoot *chainhash.Hash

	// Time the block was created in unix time.
	Timestamp uint32

	// Difficulty target for the block.
	Bits NBit

	// Nonce used to generate the block.
	Nonce uint32
}

func NewBlockHeaderFromBytes(headerBytes []byte) (*BlockHeader, error) {
	if len(headerBytes) != BlockHeaderSize {
		return nil, errors.NewBlockHeaderInvalidError("block header should be %d bytes long, got %d", BlockHeaderSize, len(headerBytes))
	}

	hashPrevBlock, err := chainhash.NewHash(headerBytes[4:36])
	if err != nil {
		return nil, errors.NewBlockHeaderInvalidError("error creating previous block hash from bytes", err)
	}

	hashMerkleRoot, err := chainhash.NewHash(headerBytes[36:68])
	if err != nil {
		return nil, errors.NewBlockHeaderInvalidError("error creating merkle root hash from bytes", err)
	}

	return &BlockHeader{
		Version:        binary.LittleEndian.Uint32(headerBytes[:4]),
		HashPrevBlock:  hashPrevBlock,
		HashMerkleRoot: hashMerkleRoot,
		Timestamp:      binary.LittleEndian.Uint32(headerBytes[68:72]),
		Bits:           NewNBitFromSlice(headerBytes[72:76]),
		Nonce:          binary.LittleEndian.Uint32(headerBytes[76:]),
	}, nil
}

func NewBlockHeaderFromString(headerHex string) (*BlockHeader, error) {
	headerBytes, err := hex.DecodeString(headerHex)
	if err != nil {
		return nil, errors.NewBlockHeaderInvalidError("error decoding hex string to bytes", err)
	}

	return NewBlockHeaderFromBytes(headerBytes)
}

func (bh *BlockHeader) Hash() *chainhash.Hash {
	hash := chainhash.DoubleHashH(bh.Bytes())
	return &hash
}

// HasMetTargetDifficulty reports whether the header hash is at or below the
// target encoded in its own Bits field.
func (bh *BlockHeader) HasMetTargetDifficulty() (bool, *chainhash.Hash, error) {
	target := bh.Bits.CalculateTarget()
	if target.Sign() <= 0 {
		return false, nil, errors.NewBlockInvalidError("block header has non-positive target %s", bh.Bits)
	}

	hash := bh.Hash()

	var bn = new(big.Int).SetBytes(bt.ReverseBytes(hash.CloneBytes()))
	if bn.Cmp(target) > 0 {
		return false, hash, errors.NewBlockInvalidError("block hash %s does not meet target %s", hash, bh.Bits)
	}

	return true, hash, nil
}

func (bh *BlockHeader) Bytes() []byte {
	if bh == nil {
		return nil
	}

	hashPrevBlock := bh.HashPrevBlock
	if hashPrevBlock == nil {
		hashPrevBlock = &chainhash.Hash{}
	}

	hashMerkleRoot := bh.HashMerkleRoot
	if hashMerkleRoot == nil {
		hashMerkleRoot = &chainhash.Hash{}
	}

	blockHeaderBytes := make([]byte, 0, BlockHeaderSize)
	blockHeaderBytes = append(blockHeaderBytes, bc.UInt32ToBytes(bh.Version)...)
	blockHeaderBytes = append(blockHeaderBytes, hashPrevBlock.CloneBytes()...)
	blockHeaderBytes = append(blockHeaderBytes, hashMerkleRoot.CloneBytes()...)
	blockHeaderBytes = append(blockHeaderBytes, bc.UInt32ToBytes(bh.Timestamp)...)
	blockHeaderBytes = append(blockHeaderBytes, bh.Bits.CloneBytes()...)
	blockHeaderBytes = append(blockHeaderBytes, bc.UInt32ToBytes(bh.Nonce)...)

	return blockHeaderBytes
}

func (bh *BlockHeader) String() string {
	return fmt.Sprintf("%s (prev %s, bits %s, time %d)", bh.Hash(), bh.HashPrevBlock, bh.Bits, bh.Timestamp)
}

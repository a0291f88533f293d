package model

import (
	"encoding/binary"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

var testBits = NBit{0xff, 0xff, 0x7f, 0x20} // 207fffff, regtest minimum difficulty

// NewTestMerkleBlock builds a candidate on top of prev. salt makes sibling
// candidates with the same parent hash differently; txCount matched
// transaction hashes are derived from the resulting header.
func NewTestMerkleBlock(prev *chainhash.Hash, salt uint32, txCount int) *MerkleBlock {
	merkleRoot := chainhash.HashH(binary.LittleEndian.AppendUint32(prev.CloneBytes(), salt))

	header := &BlockHeader{
		Version:        0x20000000,
		HashPrevBlock:  prev,
		HashMerkleRoot: &merkleRoot,
		Timestamp:      1729251723 + salt,
		Bits:           testBits,
		Nonce:          salt,
	}

	blockHash := header.Hash()

	txHashes := make([]chainhash.Hash, 0, txCount)
	for i := 0; i < txCount; i++ {
		txHashes = append(txHashes, chainhash.HashH(binary.LittleEndian.AppendUint32(blockHash.CloneBytes(), uint32(i)))) //nolint:gosec // test helper
	}

	return &MerkleBlock{
		Header:   header,
		TxHashes: txHashes,
	}
}

// NewTestChain builds count linked candidates starting on top of prev.
func NewTestChain(prev *chainhash.Hash, count int, salt uint32, txCount int) []*MerkleBlock {
	chain := make([]*MerkleBlock, 0, count)

	for i := 0; i < count; i++ {
		mb := NewTestMerkleBlock(prev, salt+uint32(i), txCount) //nolint:gosec // test helper
		chain = append(chain, mb)
		prev = mb.Hash()
	}

	return chain
}

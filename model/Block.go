package model

import (
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

type Block struct {
	Header *BlockHeader
	Height uint32

	// Tentative blocks belong to a competing branch that has not yet been
	// accepted by fork resolution.
	Tentative bool

	// Transactions is only populated when the block is created.
	Transactions []*Transaction
}

// NewBlock builds a block at height from a candidate, assigning every matched
// transaction to it. A transaction hash listed more than once is kept once,
// in the position of its first occurrence.
func NewBlock(candidate *MerkleBlock, height uint32, tentative bool) *Block {
	block := &Block{
		Header:       candidate.Header,
		Height:       height,
		Tentative:    tentative,
		Transactions: make([]*Transaction, 0, len(candidate.TxHashes)),
	}

	blockHash := *block.Hash()
	seen := make(map[chainhash.Hash]struct{}, len(candidate.TxHashes))

	for _, txHash := range candidate.TxHashes {
		if _, ok := seen[txHash]; ok {
			continue
		}

		seen[txHash] = struct{}{}

		block.Transactions = append(block.Transactions, &Transaction{
			Hash:      txHash,
			BlockHash: blockHash,
		})
	}

	return block
}

func (b *Block) Hash() *chainhash.Hash {
	return b.Header.Hash()
}

func (b *Block) String() string {
	return fmt.Sprintf("%s at height %d (tentative %t)", b.Hash(), b.Height, b.Tentative)
}

package model

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// Transaction is a transaction hash matched by a merkle proof, owned by
// exactly one stored block.
type Transaction struct {
	Hash      chainhash.Hash
	BlockHash chainhash.Hash
}

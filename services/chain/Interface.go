// Package chain maintains the local proof-of-work header chain. Headers from
// untrusted peers are connected to their predecessor after validation, or
// added tentatively and later accepted or discarded by fork resolution.
package chain

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/model"
)

// HeaderValidator decides whether candidate may follow previous. Any error
// rejects the candidate.
type HeaderValidator interface {
	Validate(ctx context.Context, candidate *model.BlockHeader, previous *model.Block) error
}

// Listener receives chain events. Calls are made synchronously, in order, and
// only after the corresponding store write succeeded.
type Listener interface {
	OnBlockInsert(ctx context.Context, block *model.Block)
	OnTransactionsDelete(ctx context.Context, hashes []chainhash.Hash)
}

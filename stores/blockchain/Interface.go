// Package blockchain defines the block store used by the chain manager and
// selects an implementation from the store URL.
package blockchain

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/stores/blockchain/options"
)

// Store persists blocks and the transactions matched in them. Every read
// reflects all writes that returned before it.
type Store interface {
	// GetBlock fails with errors.ErrBlockNotFound when the hash is unknown.
	// The returned block has no Transactions; use GetBlockTransactions.
	GetBlock(ctx context.Context, blockHash *chainhash.Hash) (*model.Block, error)
	GetBlockExists(ctx context.Context, blockHash *chainhash.Hash) (bool, error)

	// AddBlock inserts the block and its transactions atomically.
	AddBlock(ctx context.Context, block *model.Block) error

	// UpdateBlock persists the Tentative flag of a stored block.
	UpdateBlock(ctx context.Context, block *model.Block) error

	// DeleteBlocks removes the blocks and their transactions atomically.
	DeleteBlocks(ctx context.Context, blocks []*model.Block) error

	// GetBlocks returns all blocks with the given tentative flag, height ascending.
	GetBlocks(ctx context.Context, tentative bool) ([]*model.Block, error)

	// GetBlocksFromHeight returns blocks at or above height with the given
	// tentative flag, height ascending.
	GetBlocksFromHeight(ctx context.Context, height uint32, tentative bool) ([]*model.Block, error)

	// GetFirstBlock returns the lowest (SortAsc) or highest (SortDesc) block
	// with the given tentative flag, or errors.ErrBlockNotFound.
	GetFirstBlock(ctx context.Context, tentative bool, sortOrder options.SortOrder) (*model.Block, error)

	GetBlockTransactions(ctx context.Context, block *model.Block) ([]*model.Transaction, error)

	Close() error
}

package sql

import (
	"context"

	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/tracing"
)

// DeleteBlocks removes the blocks and their transactions in one transaction.
// Unknown blocks are ignored.
func (s *SQL) DeleteBlocks(ctx context.Context, blocks []*model.Block) (err error) {
	if len(blocks) == 0 {
		return nil
	}

	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:DeleteBlocks")
	defer func() {
		deferFn(err)
	}()

	defer s.ResetCache()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("failed to begin transaction", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// transactions are deleted explicitly, sqlite only cascades on connections with foreign_keys enabled
	qTx := `
		DELETE FROM transactions
		WHERE block_id IN (SELECT id FROM blocks WHERE hash = $1)
	`

	qBlock := `
		DELETE FROM blocks
		WHERE hash = $1
	`

	for _, block := range blocks {
		blockHash := block.Hash()

		if _, err = tx.ExecContext(ctx, qTx, blockHash[:]); err != nil {
			return errors.NewStorageError("failed to delete transactions of block %s", blockHash, err)
		}

		if _, err = tx.ExecContext(ctx, qBlock, blockHash[:]); err != nil {
			return errors.NewStorageError("failed to delete block %s", blockHash, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.NewStorageError("failed to commit block deletion", err)
	}

	return nil
}

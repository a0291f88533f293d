package sql

import (
	"context"

	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/tracing"
)

// UpdateBlock persists the tentative flag. Height and header are immutable.
func (s *SQL) UpdateBlock(ctx context.Context, block *model.Block) (err error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:UpdateBlock")
	defer func() {
		deferFn(err)
	}()

	defer s.ResetCache()

	q := `
		UPDATE blocks
		SET tentative = $1
		WHERE hash = $2
	`

	blockHash := block.Hash()

	res, err := s.db.ExecContext(ctx, q, block.Tentative, blockHash[:])
	if err != nil {
		return errors.NewStorageError("failed to update block %s", blockHash, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.NewStorageError("failed to update block %s", blockHash, err)
	}

	if rows == 0 {
		return errors.NewBlockNotFoundError("block %s not found", blockHash)
	}

	return nil
}

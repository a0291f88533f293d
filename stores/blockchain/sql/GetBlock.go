package sql

import (
	"context"
	"database/sql"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/tracing"
)

func (s *SQL) GetBlock(ctx context.Context, blockHash *chainhash.Hash) (*model.Block, error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:GetBlock")
	defer deferFn()

	var op *cacheOperation

	if s.blocksCache != nil {
		op = s.blocksCache.Begin(*blockHash)
		if cached := op.Get(); cached != nil {
			return cached, nil
		}
	}

	q := `
		SELECT` + blockColumns + `
		FROM blocks b
		WHERE b.hash = $1
	`

	block, err := scanBlock(s.db.QueryRowContext(ctx, q, blockHash[:]))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewBlockNotFoundError("block %s not found", blockHash)
		}

		return nil, errors.NewStorageError("failed to get block %s", blockHash, err)
	}

	if op != nil {
		op.Set(block, s.cacheTTL)
	}

	return block, nil
}

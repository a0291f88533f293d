package sql

import (
	"context"

	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/tracing"
)

func (s *SQL) GetBlocks(ctx context.Context, tentative bool) ([]*model.Block, error) {
	return s.GetBlocksFromHeight(ctx, 0, tentative)
}

func (s *SQL) GetBlocksFromHeight(ctx context.Context, height uint32, tentative bool) ([]*model.Block, error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:GetBlocksFromHeight")
	defer deferFn()

	q := `
		SELECT` + blockColumns + `
		FROM blocks b
		WHERE b.tentative = $1
		  AND b.height >= $2
		ORDER BY b.height ASC, b.id ASC
	`

	rows, err := s.db.QueryContext(ctx, q, tentative, height)
	if err != nil {
		return nil, errors.NewStorageError("failed to get blocks from height %d", height, err)
	}

	defer rows.Close()

	blocks := make([]*model.Block, 0)

	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, errors.NewStorageError("failed to scan block", err)
		}

		blocks = append(blocks, block)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.NewStorageError("failed to iterate blocks", err)
	}

	return blocks, nil
}

package sql

import (
	"context"
	"database/sql"

	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/stores/blockchain/options"
	"github.com/bsv-blockchain/spvchain/tracing"
)

func (s *SQL) GetFirstBlock(ctx context.Context, tentative bool, sortOrder options.SortOrder) (*model.Block, error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:GetFirstBlock")
	defer deferFn()

	// sortOrder.String() only yields ASC or DESC
	q := `
		SELECT` + blockColumns + `
		FROM blocks b
		WHERE b.tentative = $1
		ORDER BY b.height ` + sortOrder.String() + `, b.id ` + sortOrder.String() + `
		LIMIT 1
	`

	block, err := scanBlock(s.db.QueryRowContext(ctx, q, tentative))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewBlockNotFoundError("no block with tentative=%t", tentative)
		}

		return nil, errors.NewStorageError("failed to get first block", err)
	}

	return block, nil
}

package sql

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/tracing"
)

// GetBlockTransactions returns the transactions of block in insertion order.
func (s *SQL) GetBlockTransactions(ctx context.Context, block *model.Block) ([]*model.Transaction, error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:GetBlockTransactions")
	defer deferFn()

	q := `
		SELECT
		 t.hash
		FROM transactions t
		INNER JOIN blocks b ON b.id = t.block_id
		WHERE b.hash = $1
		ORDER BY t.id ASC
	`

	blockHash := block.Hash()

	rows, err := s.db.QueryContext(ctx, q, blockHash[:])
	if err != nil {
		return nil, errors.NewStorageError("failed to get transactions of block %s", blockHash, err)
	}

	defer rows.Close()

	transactions := make([]*model.Transaction, 0)

	for rows.Next() {
		var txHashBytes []byte

		if err = rows.Scan(&txHashBytes); err != nil {
			return nil, errors.NewStorageError("failed to scan transaction", err)
		}

		txHash, err := chainhash.NewHash(txHashBytes)
		if err != nil {
			return nil, errors.NewStorageError("failed to convert transaction hash", err)
		}

		transactions = append(transactions, &model.Transaction{
			Hash:      *txHash,
			BlockHash: *blockHash,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, errors.NewStorageError("failed to iterate transactions", err)
	}

	return transactions, nil
}

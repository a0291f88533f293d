package sql

import (
	"context"

	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/tracing"
)

func (s *SQL) AddBlock(ctx context.Context, block *model.Block) (err error) {
	ctx, _, deferFn := tracing.StartTracing(ctx, "sql:AddBlock")
	defer func() {
		deferFn(err)
	}()

	defer s.ResetCache()

	blockHash := block.Hash()

	exists, err := s.GetBlockExists(ctx, blockHash)
	if err != nil {
		return err
	}

	if exists {
		return errors.NewBlockExistsError("block %s already exists", blockHash)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("failed to begin transaction", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	q := `
		INSERT INTO blocks (
			 hash
			,version
			,previous_hash
			,merkle_root
			,block_time
			,n_bits
			,nonce
			,height
			,tentative
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var blockID int64

	if err = tx.QueryRowContext(ctx, q,
		blockHash[:],
		block.Header.Version,
		block.Header.HashPrevBlock[:],
		block.Header.HashMerkleRoot[:],
		block.Header.Timestamp,
		block.Header.Bits.CloneBytes(),
		block.Header.Nonce,
		block.Height,
		block.Tentative,
	).Scan(&blockID); err != nil {
		return errors.NewStorageError("failed to insert block %s", blockHash, err)
	}

	qTx := `
		INSERT INTO transactions (
			 block_id
			,hash
		) VALUES ($1, $2)
	`

	for _, transaction := range block.Transactions {
		if _, err = tx.ExecContext(ctx, qTx, blockID, transaction.Hash[:]); err != nil {
			return errors.NewStorageError("failed to insert transaction %s of block %s", transaction.Hash, blockHash, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.NewStorageError("failed to commit block %s", blockHash, err)
	}

	return nil
}

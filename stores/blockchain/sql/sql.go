// Package sql implements the block store on postgres or sqlite.
package sql

import (
	"context"
	"net/url"
	"time"

	"github.com/bsv-blockchain/go-chaincfg"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/ulogger"
	"github.com/bsv-blockchain/spvchain/util"
	"github.com/bsv-blockchain/spvchain/util/usql"
)

type SQL struct {
	db          *usql.DB
	engine      util.SQLEngine
	logger      ulogger.Logger
	chainParams *chaincfg.Params
	blocksCache *blockCache // nil when caching is disabled
	cacheTTL    time.Duration
}

func New(logger ulogger.Logger, storeURL *url.URL, tSettings *settings.Settings) (*SQL, error) {
	logger = logger.New("bcsql")

	db, err := util.InitSQLDB(logger, storeURL, tSettings)
	if err != nil {
		return nil, errors.NewStorageUnavailableError("failed to init sql db", err)
	}

	engine := util.SQLEngine(storeURL.Scheme)

	switch engine {
	case util.Postgres:
		if err = createPostgresSchema(db); err != nil {
			return nil, errors.NewStorageError("failed to create postgres schema", err)
		}

	case util.Sqlite, util.SqliteMemory:
		if err = createSqliteSchema(db); err != nil {
			return nil, errors.NewStorageError("failed to create sqlite schema", err)
		}

	default:
		return nil, errors.NewConfigurationError("unknown database engine: %s", storeURL.Scheme)
	}

	s := &SQL{
		db:          db,
		engine:      engine,
		logger:      logger,
		chainParams: tSettings.ChainCfgParams,
		cacheTTL:    tSettings.BlockChain.CacheTTL,
	}

	if tSettings.BlockChain.CacheEnabled {
		s.blocksCache = newBlockCache(tSettings.BlockChain.CacheSize)
	}

	if err = s.insertGenesisBlock(context.Background()); err != nil {
		_ = s.Close()
		return nil, errors.NewStorageError("failed to insert genesis block", err)
	}

	return s, nil
}

func (s *SQL) GetDB() *usql.DB {
	return s.db
}

func (s *SQL) GetDBEngine() util.SQLEngine {
	return s.engine
}

func (s *SQL) Close() error {
	if s.blocksCache != nil {
		s.blocksCache.Stop()
	}

	return s.db.Close()
}

// ResetCache drops every cached read. It is called after each write.
func (s *SQL) ResetCache() {
	if s.blocksCache != nil {
		s.blocksCache.DeleteAll()
	}
}

func createPostgresSchema(db *usql.DB) error {
	if _, err := db.Exec(`
      CREATE TABLE IF NOT EXISTS blocks (
	     id             BIGSERIAL PRIMARY KEY
	    ,hash           BYTEA NOT NULL
	    ,version        BIGINT NOT NULL
	    ,previous_hash  BYTEA NOT NULL
	    ,merkle_root    BYTEA NOT NULL
	    ,block_time     BIGINT NOT NULL
	    ,n_bits         BYTEA NOT NULL
	    ,nonce          BIGINT NOT NULL
	    ,height         BIGINT NOT NULL
	    ,tentative      BOOLEAN NOT NULL DEFAULT FALSE
	    ,inserted_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create blocks table", err)
	}

	if _, err := db.Exec(`
      CREATE TABLE IF NOT EXISTS transactions (
	     id          BIGSERIAL PRIMARY KEY
	    ,block_id    BIGINT NOT NULL REFERENCES blocks(id) ON DELETE CASCADE
	    ,hash        BYTEA NOT NULL
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create transactions table", err)
	}

	return createIndexes(db)
}

func createSqliteSchema(db *usql.DB) error {
	if _, err := db.Exec(`
      CREATE TABLE IF NOT EXISTS blocks (
	     id             INTEGER PRIMARY KEY AUTOINCREMENT
	    ,hash           BLOB NOT NULL
	    ,version        BIGINT NOT NULL
	    ,previous_hash  BLOB NOT NULL
	    ,merkle_root    BLOB NOT NULL
	    ,block_time     BIGINT NOT NULL
	    ,n_bits         BLOB NOT NULL
	    ,nonce          BIGINT NOT NULL
	    ,height         BIGINT NOT NULL
	    ,tentative      BOOLEAN NOT NULL DEFAULT FALSE
	    ,inserted_at    TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create blocks table", err)
	}

	if _, err := db.Exec(`
      CREATE TABLE IF NOT EXISTS transactions (
	     id          INTEGER PRIMARY KEY AUTOINCREMENT
	    ,block_id    INTEGER NOT NULL REFERENCES blocks(id) ON DELETE CASCADE
	    ,hash        BLOB NOT NULL
	  );
	`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create transactions table", err)
	}

	return createIndexes(db)
}

func createIndexes(db *usql.DB) error {
	if _, err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_blocks_hash ON blocks (hash);`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create ux_blocks_hash index", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_blocks_tentative_height ON blocks (tentative, height, id);`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create idx_blocks_tentative_height index", err)
	}

	if _, err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_transactions_block_id_hash ON transactions (block_id, hash);`); err != nil {
		_ = db.Close()
		return errors.NewStorageError("could not create ux_transactions_block_id_hash index", err)
	}

	return nil
}

func (s *SQL) insertGenesisBlock(ctx context.Context) error {
	q := `
		SELECT
		 count(*)
		FROM blocks b
	`

	var blockCount uint64
	if err := s.db.QueryRowContext(ctx, q).Scan(&blockCount); err != nil {
		return err
	}

	if blockCount > 0 {
		return nil
	}

	genesisBlock, err := model.GenesisBlock(s.chainParams)
	if err != nil {
		return err
	}

	if err = s.AddBlock(ctx, genesisBlock); err != nil {
		return err
	}

	s.logger.Infof("genesis block %s inserted", genesisBlock.Hash())

	return nil
}

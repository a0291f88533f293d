package blockchain

import (
	"context"
	"net/url"
	"testing"

	"github.com/bsv-blockchain/go-chaincfg"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/stores/blockchain/memory"
	"github.com/bsv-blockchain/spvchain/stores/blockchain/sql"
	"github.com/bsv-blockchain/spvchain/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	tSettings := settings.NewSettings()
	tSettings.ChainCfgParams = &chaincfg.RegressionNetParams

	t.Run("memory", func(t *testing.T) {
		storeURL, err := url.Parse("memory:///")
		require.NoError(t, err)

		store, err := NewStore(ulogger.TestLogger{}, storeURL, tSettings)
		require.NoError(t, err)

		defer func() { _ = store.Close() }()

		assert.IsType(t, &memory.Memory{}, store)

		exists, err := store.GetBlockExists(context.Background(), chaincfg.RegressionNetParams.GenesisHash)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("sqlitememory", func(t *testing.T) {
		storeURL, err := url.Parse("sqlitememory:///blockchain")
		require.NoError(t, err)

		store, err := NewStore(ulogger.TestLogger{}, storeURL, tSettings)
		require.NoError(t, err)

		defer func() { _ = store.Close() }()

		assert.IsType(t, &sql.SQL{}, store)

		exists, err := store.GetBlockExists(context.Background(), chaincfg.RegressionNetParams.GenesisHash)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("unknown scheme", func(t *testing.T) {
		storeURL, err := url.Parse("aerospike://localhost:3000")
		require.NoError(t, err)

		_, err = NewStore(ulogger.TestLogger{}, storeURL, tSettings)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
	})

	t.Run("nil url", func(t *testing.T) {
		_, err := NewStore(ulogger.TestLogger{}, nil, tSettings)
		require.Error(t, err)
	})
}

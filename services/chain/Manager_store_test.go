package chain

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/go-chaincfg"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/stores/blockchain"
	"github.com/bsv-blockchain/spvchain/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingListener keeps every event for later assertions.
type recordingListener struct {
	inserted  []*model.Block
	retracted [][]chainhash.Hash
}

func (r *recordingListener) OnBlockInsert(_ context.Context, block *model.Block) {
	r.inserted = append(r.inserted, block)
}

func (r *recordingListener) OnTransactionsDelete(_ context.Context, hashes []chainhash.Hash) {
	r.retracted = append(r.retracted, hashes)
}

func newStoreManager(t *testing.T, storeURL string) (*Manager, blockchain.Store, *recordingListener) {
	t.Helper()

	tSettings := settings.NewSettings()
	tSettings.ChainCfgParams = &chaincfg.RegressionNetParams

	u, err := url.Parse(storeURL)
	require.NoError(t, err)

	store, err := blockchain.NewStore(ulogger.TestLogger{}, u, tSettings)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	validator := &MockValidator{}
	validator.On("Validate", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	listener := &recordingListener{}

	return NewManager(ulogger.TestLogger{}, tSettings, store, validator, listener), store, listener
}

func connectChain(t *testing.T, manager *Manager, chain []*model.MerkleBlock) []*model.Block {
	t.Helper()

	blocks := make([]*model.Block, 0, len(chain))

	for _, candidate := range chain {
		block, err := manager.Connect(context.Background(), candidate)
		require.NoError(t, err)

		blocks = append(blocks, block)
	}

	return blocks
}

func forceAddChain(t *testing.T, manager *Manager, chain []*model.MerkleBlock, height uint32) []*model.Block {
	t.Helper()

	blocks := make([]*model.Block, 0, len(chain))

	for i, candidate := range chain {
		block, err := manager.ForceAdd(context.Background(), candidate, height+uint32(i)) //nolint:gosec // test
		require.NoError(t, err)

		blocks = append(blocks, block)
	}

	return blocks
}

func TestManagerWithStore(t *testing.T) {
	for _, storeURL := range []string{"sqlitememory:///chain", "memory:///"} {
		t.Run(storeURL, func(t *testing.T) {
			testManagerWithStore(t, storeURL)
		})
	}
}

func TestManagerConcurrentConnect(t *testing.T) {
	manager, store, listener := newStoreManager(t, "memory:///")

	candidate := model.NewTestMerkleBlock(chaincfg.RegressionNetParams.GenesisHash, 1, 1)

	var wg sync.WaitGroup

	heights := make([]uint32, 8)
	errs := make([]error, len(heights))

	for i := range heights {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			block, err := manager.Connect(context.Background(), candidate)
			if err == nil {
				heights[i] = block.Height
			}

			errs[i] = err
		}(i)
	}

	wg.Wait()

	for i := range heights {
		require.NoError(t, errs[i])
		assert.Equal(t, uint32(1), heights[i])
	}

	// only the first caller stores and notifies
	assert.Len(t, listener.inserted, 1)

	blocks, err := store.GetBlocksFromHeight(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
}

func testManagerWithStore(t *testing.T, storeURL string) {
	ctx := context.Background()
	genesisHash := chaincfg.RegressionNetParams.GenesisHash

	t.Run("connect is idempotent", func(t *testing.T) {
		manager, _, listener := newStoreManager(t, storeURL)

		candidate := model.NewTestMerkleBlock(genesisHash, 1, 2)

		first, err := manager.Connect(ctx, candidate)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), first.Height)

		second, err := manager.Connect(ctx, candidate)
		require.NoError(t, err)
		assert.Equal(t, first.Hash(), second.Hash())
		assert.Equal(t, first.Height, second.Height)

		assert.Len(t, listener.inserted, 1)
	})

	t.Run("orphan is rejected", func(t *testing.T) {
		manager, store, listener := newStoreManager(t, storeURL)

		candidate := model.NewTestMerkleBlock(&chainhash.Hash{0xaa}, 1, 1)

		_, err := manager.Connect(ctx, candidate)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNoPreviousBlock))

		exists, err := store.GetBlockExists(ctx, candidate.Hash())
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Empty(t, listener.inserted)
	})

	t.Run("fork without incumbent suffix", func(t *testing.T) {
		manager, _, listener := newStoreManager(t, storeURL)

		confirmed := connectChain(t, manager, model.NewTestChain(genesisHash, 10, 1, 1))
		branch := forceAddChain(t, manager, model.NewTestChain(confirmed[9].Hash(), 3, 100, 1), 11)

		require.NoError(t, manager.ResolveForks(ctx))

		tip, err := manager.GetBestBlock(ctx)
		require.NoError(t, err)
		assert.Equal(t, branch[2].Hash(), tip.Hash())
		assert.Equal(t, uint32(13), tip.Height)
		assert.Empty(t, listener.retracted)
	})

	t.Run("branch strictly longer", func(t *testing.T) {
		manager, store, listener := newStoreManager(t, storeURL)

		confirmed := connectChain(t, manager, model.NewTestChain(genesisHash, 12, 1, 2))
		branch := forceAddChain(t, manager, model.NewTestChain(confirmed[9].Hash(), 3, 100, 1), 11)

		require.NoError(t, manager.ResolveForks(ctx))

		for _, block := range confirmed[10:] {
			exists, err := store.GetBlockExists(ctx, block.Hash())
			require.NoError(t, err)
			assert.False(t, exists)
		}

		for _, block := range branch {
			stored, err := store.GetBlock(ctx, block.Hash())
			require.NoError(t, err)
			assert.False(t, stored.Tentative)
		}

		require.Len(t, listener.retracted, 1)
		assert.Equal(t, txHashes(confirmed[10:]), listener.retracted[0])

		tip, err := manager.GetBestBlock(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint32(13), tip.Height)
		assert.Equal(t, branch[2].Hash(), tip.Hash())

		// the new tip accepts connections
		next, err := manager.Connect(ctx, model.NewTestMerkleBlock(tip.Hash(), 500, 0))
		require.NoError(t, err)
		assert.Equal(t, uint32(14), next.Height)
	})

	t.Run("branch shorter", func(t *testing.T) {
		manager, store, listener := newStoreManager(t, storeURL)

		confirmed := connectChain(t, manager, model.NewTestChain(genesisHash, 12, 1, 1))
		branch := forceAddChain(t, manager, model.NewTestChain(confirmed[9].Hash(), 1, 100, 2), 11)

		require.NoError(t, manager.ResolveForks(ctx))

		exists, err := store.GetBlockExists(ctx, branch[0].Hash())
		require.NoError(t, err)
		assert.False(t, exists)

		require.Len(t, listener.retracted, 1)
		assert.Equal(t, txHashes(branch), listener.retracted[0])

		tip, err := manager.GetBestBlock(ctx)
		require.NoError(t, err)
		assert.Equal(t, confirmed[11].Hash(), tip.Hash())
	})

	t.Run("equal length keeps incumbent", func(t *testing.T) {
		manager, store, listener := newStoreManager(t, storeURL)

		confirmed := connectChain(t, manager, model.NewTestChain(genesisHash, 12, 1, 1))
		branch := forceAddChain(t, manager, model.NewTestChain(confirmed[9].Hash(), 2, 100, 1), 11)

		require.NoError(t, manager.ResolveForks(ctx))

		for _, block := range branch {
			exists, err := store.GetBlockExists(ctx, block.Hash())
			require.NoError(t, err)
			assert.False(t, exists)
		}

		require.Len(t, listener.retracted, 1)
		assert.Equal(t, txHashes(branch), listener.retracted[0])

		tip, err := manager.GetBestBlock(ctx)
		require.NoError(t, err)
		assert.Equal(t, confirmed[11].Hash(), tip.Hash())
	})

	t.Run("no tentative blocks", func(t *testing.T) {
		manager, _, listener := newStoreManager(t, storeURL)

		connectChain(t, manager, model.NewTestChain(genesisHash, 3, 1, 1))

		require.NoError(t, manager.ResolveForks(ctx))
		assert.Empty(t, listener.retracted)

		tip, err := manager.GetBestBlock(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint32(3), tip.Height)
	})

	t.Run("force add duplicate fails", func(t *testing.T) {
		manager, _, _ := newStoreManager(t, storeURL)

		candidate := model.NewTestMerkleBlock(genesisHash, 1, 0)

		_, err := manager.ForceAdd(ctx, candidate, 1)
		require.NoError(t, err)

		_, err = manager.ForceAdd(ctx, candidate, 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrBlockExists))
	})

	t.Run("repeated transaction hash", func(t *testing.T) {
		manager, _, _ := newStoreManager(t, storeURL)

		candidate := model.NewTestMerkleBlock(genesisHash, 1, 1)
		candidate.TxHashes = append(candidate.TxHashes, candidate.TxHashes[0])

		block, err := manager.Connect(ctx, candidate)
		require.NoError(t, err)

		transactions, err := manager.GetBlockTransactions(ctx, block)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, candidate.TxHashes[0], transactions[0].Hash)
	})

	t.Run("block transactions", func(t *testing.T) {
		manager, _, _ := newStoreManager(t, storeURL)

		blocks := connectChain(t, manager, model.NewTestChain(genesisHash, 1, 1, 3))

		stored, err := manager.GetBlock(ctx, blocks[0].Hash())
		require.NoError(t, err)

		transactions, err := manager.GetBlockTransactions(ctx, stored)
		require.NoError(t, err)
		require.Len(t, transactions, 3)

		for i, tx := range transactions {
			assert.Equal(t, blocks[0].Transactions[i].Hash, tx.Hash)
		}
	})
}

package memory

import (
	"context"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/go-chaincfg"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/stores/blockchain/options"
	"github.com/bsv-blockchain/spvchain/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Memory {
	t.Helper()

	tSettings := settings.NewSettings()
	tSettings.ChainCfgParams = &chaincfg.RegressionNetParams

	m, err := New(ulogger.TestLogger{}, tSettings)
	require.NoError(t, err)

	return m
}

func testBlocks(count int, salt uint32, tentative bool) []*model.Block {
	chain := model.NewTestChain(chaincfg.RegressionNetParams.GenesisHash, count, salt, 2)

	blocks := make([]*model.Block, 0, count)
	for i, mb := range chain {
		blocks = append(blocks, model.NewBlock(mb, uint32(i+1), tentative)) //nolint:gosec // test
	}

	return blocks
}

func TestGenesis(t *testing.T) {
	m := newTestStore(t)

	genesis, err := m.GetBlock(context.Background(), chaincfg.RegressionNetParams.GenesisHash)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), genesis.Height)
	assert.False(t, genesis.Tentative)
}

func TestAddGetDelete(t *testing.T) {
	m := newTestStore(t)
	ctx := context.Background()

	blocks := testBlocks(3, 1, false)
	for _, block := range blocks {
		require.NoError(t, m.AddBlock(ctx, block))
	}

	err := m.AddBlock(ctx, blocks[0])
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBlockExists))

	stored, err := m.GetBlock(ctx, blocks[1].Hash())
	require.NoError(t, err)
	assert.Equal(t, uint32(2), stored.Height)
	assert.Empty(t, stored.Transactions)

	transactions, err := m.GetBlockTransactions(ctx, stored)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, blocks[1].Transactions[0].Hash, transactions[0].Hash)
	assert.Equal(t, *blocks[1].Hash(), transactions[0].BlockHash)

	require.NoError(t, m.DeleteBlocks(ctx, blocks[1:]))

	exists, err := m.GetBlockExists(ctx, blocks[1].Hash())
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = m.GetBlock(ctx, blocks[2].Hash())
	assert.True(t, errors.Is(err, errors.ErrBlockNotFound))

	transactions, err = m.GetBlockTransactions(ctx, blocks[2])
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestUpdateBlock(t *testing.T) {
	m := newTestStore(t)
	ctx := context.Background()

	block := testBlocks(1, 1, true)[0]
	require.NoError(t, m.AddBlock(ctx, block))

	// mutating a returned block does not change the store
	stored, err := m.GetBlock(ctx, block.Hash())
	require.NoError(t, err)

	stored.Tentative = false

	again, err := m.GetBlock(ctx, block.Hash())
	require.NoError(t, err)
	assert.True(t, again.Tentative)

	require.NoError(t, m.UpdateBlock(ctx, stored))

	again, err = m.GetBlock(ctx, block.Hash())
	require.NoError(t, err)
	assert.False(t, again.Tentative)

	err = m.UpdateBlock(ctx, testBlocks(1, 50, false)[0])
	assert.True(t, errors.Is(err, errors.ErrBlockNotFound))
}

func TestQueriesAreOrdered(t *testing.T) {
	m := newTestStore(t)
	ctx := context.Background()

	blocks := testBlocks(5, 1, true)
	for i := len(blocks) - 1; i >= 0; i-- {
		require.NoError(t, m.AddBlock(ctx, blocks[i]))
	}

	tentative, err := m.GetBlocks(ctx, true)
	require.NoError(t, err)
	require.Len(t, tentative, 5)

	for i, block := range tentative {
		assert.Equal(t, blocks[i].Hash(), block.Hash())
	}

	fromHeight, err := m.GetBlocksFromHeight(ctx, 4, true)
	require.NoError(t, err)
	require.Len(t, fromHeight, 2)
	assert.Equal(t, uint32(4), fromHeight[0].Height)

	lowest, err := m.GetFirstBlock(ctx, true, options.SortAsc)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), lowest.Height)

	highest, err := m.GetFirstBlock(ctx, true, options.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), highest.Height)

	best, err := m.GetFirstBlock(ctx, false, options.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), best.Height)
}

func TestSameHeightKeepsInsertionOrder(t *testing.T) {
	m := newTestStore(t)
	ctx := context.Background()

	a := testBlocks(1, 1, true)[0]
	b := testBlocks(1, 2, true)[0]

	require.NoError(t, m.AddBlock(ctx, a))
	require.NoError(t, m.AddBlock(ctx, b))

	blocks, err := m.GetBlocks(ctx, true)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, a.Hash(), blocks[0].Hash())
	assert.Equal(t, b.Hash(), blocks[1].Hash())

	last, err := m.GetFirstBlock(ctx, true, options.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, b.Hash(), last.Hash())
}

func TestClose(t *testing.T) {
	m := newTestStore(t)

	require.NoError(t, m.Close())

	exists, err := m.GetBlockExists(context.Background(), &chainhash.Hash{})
	require.NoError(t, err)
	assert.False(t, exists)
}

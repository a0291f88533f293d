package sql

import (
	"testing"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockCache_PreventStaleWrites(t *testing.T) {
	bc := newBlockCache(10)
	defer bc.Stop()

	block := testBlocks(1, 1, false)[0]
	key := *block.Hash()

	op := bc.Begin(key)

	// a write happens while the read is in flight
	bc.DeleteAll()

	require.False(t, op.Set(block, time.Hour))
	require.Nil(t, bc.Begin(key).Get())
}

func TestBlockCache_AllowFreshWrites(t *testing.T) {
	bc := newBlockCache(10)
	defer bc.Stop()

	block := testBlocks(1, 1, false)[0]
	key := *block.Hash()

	require.True(t, bc.Begin(key).Set(block, time.Hour))

	cached := bc.Begin(key).Get()
	require.NotNil(t, cached)
	assert.Equal(t, block.Hash(), cached.Hash())
	assert.Equal(t, 1, bc.Len())
}

func TestBlockCache_Capacity(t *testing.T) {
	bc := newBlockCache(2)
	defer bc.Stop()

	for i, block := range testBlocks(3, 1, false) {
		require.True(t, bc.Begin(*block.Hash()).Set(block, time.Hour), i)
	}

	assert.Equal(t, 2, bc.Len())
}

func TestBlockCache_StopTwice(t *testing.T) {
	bc := newBlockCache(0)

	bc.Stop()
	bc.Stop()

	assert.Nil(t, bc.Begin(chainhash.Hash{}).Get())
}

func TestCloneBlock(t *testing.T) {
	block := model.NewBlock(model.NewTestMerkleBlock(&chainhash.Hash{}, 1, 2), 3, true)

	clone := cloneBlock(block)

	assert.Equal(t, block.Hash(), clone.Hash())
	assert.Equal(t, block.Height, clone.Height)
	assert.Nil(t, clone.Transactions)

	clone.Header.Nonce++
	assert.NotEqual(t, block.Hash(), clone.Hash())
}

package settings

import (
	"testing"
	"time"

	"github.com/bsv-blockchain/go-chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// check settings object is initialised
func TestInitialiseSettings(t *testing.T) {
	tSettings := NewSettings()

	require.NotNil(t, tSettings.ChainCfgParams)
	require.NotNil(t, tSettings.BlockChain.StoreURL)
	require.NotNil(t, tSettings.Tracing.CollectorURL)

	assert.NotEmpty(t, tSettings.ServiceName)
	assert.Positive(t, tSettings.HeaderSync.MaxOrphans)
	assert.Greater(t, tSettings.HeaderSync.OrphanTTL, time.Duration(0))
}

func TestChainParams(t *testing.T) {
	tests := []struct {
		name    string
		params  *chaincfg.Params
		genesis string
	}{
		{"RegressionNet", &chaincfg.RegressionNetParams, "0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206"},
		{"MainNet", &chaincfg.MainNetParams, "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tSettings := NewSettings()
			tSettings.ChainCfgParams = tt.params
			require.Equal(t, tt.genesis, tSettings.ChainCfgParams.GenesisHash.String())
		})
	}
}

func TestHelperDefaults(t *testing.T) {
	assert.Equal(t, "fallback", getString("spvchain_test_missing_key", "fallback"))
	assert.Equal(t, 42, getInt("spvchain_test_missing_key", 42))
	assert.True(t, getBool("spvchain_test_missing_key", true))
	assert.InDelta(t, 0.5, getFloat64("spvchain_test_missing_key", 0.5), 0.0001)
	assert.Equal(t, 3*time.Second, getDuration("spvchain_test_missing_key", 3*time.Second))

	u := getURL("spvchain_test_missing_key", "memory:///")
	require.NotNil(t, u)
	assert.Equal(t, "memory", u.Scheme)
}

func TestHelperEnvironmentOverride(t *testing.T) {
	t.Setenv("spvchain_test_orphans", "7")
	t.Setenv("spvchain_test_rate", "0.25")
	t.Setenv("spvchain_test_ttl", "90s")

	assert.Equal(t, 7, getInt("spvchain_test_orphans", 1))
	assert.InDelta(t, 0.25, getFloat64("spvchain_test_rate", 1), 0.0001)
	assert.Equal(t, 90*time.Second, getDuration("spvchain_test_ttl", time.Second))
}

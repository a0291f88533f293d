// Package settings builds the spvchain configuration from gocore config
// (settings.conf, settings_local.conf and environment overrides).
package settings

import (
	"time"

	"github.com/bsv-blockchain/go-chaincfg"
)

func NewSettings() *Settings {
	params, err := chaincfg.GetChainParams(getString("network", "mainnet"))
	if err != nil {
		panic(err)
	}

	var chainEventsURL = getURL("chain_events_kafka", "")
	if chainEventsURL != nil && chainEventsURL.Host == "" {
		chainEventsURL = nil
	}

	return &Settings{
		ServiceName:    getString("SERVICE_NAME", "spvchain"),
		DataFolder:     getString("dataFolder", "data"),
		LogLevel:       getString("logLevel", "INFO"),
		LoggerType:     getString("logger_type", "zerolog"),
		PrettyLogs:     getBool("PRETTY_LOGS", true),
		ChainCfgParams: params,
		BlockChain: BlockChainSettings{
			StoreURL:             getURL("blockchain_store", "sqlite:///spvchain"),
			CacheEnabled:         getBool("blockchain_store_cache_enabled", true),
			CacheTTL:             getDuration("blockchain_store_cache_ttl", 2*time.Minute),
			CacheSize:            getInt("blockchain_store_cache_size", 1000),
			PostgresMaxIdleConns: getInt("postgres_maxIdleConns", 10),
			PostgresMaxOpenConns: getInt("postgres_maxOpenConns", 80),
		},
		HeaderSync: HeaderSyncSettings{
			CheckPoW:           getBool("headersync_checkPoW", true),
			MaxFutureBlockTime: getDuration("headersync_maxFutureBlockTime", 2*time.Hour),
			OrphanTTL:          getDuration("headersync_orphanTTL", 10*time.Minute),
			MaxOrphans:         getInt("headersync_maxOrphans", 1000),
		},
		Kafka: KafkaSettings{
			ChainEventsURL: chainEventsURL,
			Partitions:     getInt("chain_events_kafka_partitions", 1),
			PublishRetries: getInt("chain_events_kafka_publish_retries", 3),
			PublishBackoff: getDuration("chain_events_kafka_publish_backoff", 100*time.Millisecond),
		},
		Tracing: TracingSettings{
			Enabled:      getBool("tracing_enabled", false),
			CollectorURL: getURL("tracing_collector_url", "http://localhost:4318"),
			SampleRate:   getFloat64("tracing_sample_rate", 0.01),
		},
	}
}

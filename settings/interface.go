package settings

import (
	"net/url"
	"time"

	"github.com/bsv-blockchain/go-chaincfg"
)

type BlockChainSettings struct {
	StoreURL             *url.URL
	CacheEnabled         bool
	CacheTTL             time.Duration
	CacheSize            int
	PostgresMaxIdleConns int
	PostgresMaxOpenConns int
}

type HeaderSyncSettings struct {
	CheckPoW           bool
	MaxFutureBlockTime time.Duration
	OrphanTTL          time.Duration
	MaxOrphans         int
}

type KafkaSettings struct {
	// ChainEventsURL is nil when chain events are not published.
	ChainEventsURL *url.URL
	Partitions     int
	PublishRetries int
	PublishBackoff time.Duration
}

type TracingSettings struct {
	Enabled      bool
	CollectorURL *url.URL
	SampleRate   float64
}

type Settings struct {
	ServiceName    string
	DataFolder     string
	LogLevel       string
	LoggerType     string
	PrettyLogs     bool
	ChainCfgParams *chaincfg.Params
	BlockChain     BlockChainSettings
	HeaderSync     HeaderSyncSettings
	Kafka          KafkaSettings
	Tracing        TracingSettings
}

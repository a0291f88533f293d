package main

import (
	"context"
	"net/url"

	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/services/chain"
	"github.com/bsv-blockchain/spvchain/services/headersync"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/stores/blockchain"
	"github.com/bsv-blockchain/spvchain/tracing"
	"github.com/bsv-blockchain/spvchain/ulogger"
	"github.com/bsv-blockchain/spvchain/util/kafka"
	"github.com/urfave/cli/v2"
)

// node wires the chain components for one command invocation.
type node struct {
	logger   ulogger.Logger
	settings *settings.Settings
	store    blockchain.Store
	manager  *chain.Manager
	syncer   *headersync.Syncer
	closers  []func() error
}

func newNodeFromContext(c *cli.Context) (*node, error) {
	tSettings := settings.NewSettings()

	if storeURL := c.String("store"); storeURL != "" {
		u, err := url.Parse(storeURL)
		if err != nil {
			return nil, errors.NewConfigurationError("invalid store URL %s", storeURL, err)
		}

		tSettings.BlockChain.StoreURL = u
	}

	logger := ulogger.New(tSettings.ServiceName,
		ulogger.WithLevel(tSettings.LogLevel),
		ulogger.WithLoggerType(tSettings.LoggerType),
		ulogger.WithPrettyLogs(tSettings.PrettyLogs),
	)

	return newNode(c.Context, logger, tSettings)
}

func newNode(ctx context.Context, logger ulogger.Logger, tSettings *settings.Settings) (*node, error) {
	n := &node{
		logger:   logger,
		settings: tSettings,
	}

	if err := tracing.InitTracer(ctx, tSettings); err != nil {
		return nil, err
	}

	n.closers = append(n.closers, func() error {
		return tracing.ShutdownTracer(context.Background())
	})

	store, err := blockchain.NewStore(logger, tSettings.BlockChain.StoreURL, tSettings)
	if err != nil {
		n.Close()
		return nil, err
	}

	n.store = store
	n.closers = append(n.closers, store.Close)

	listeners := chain.Listeners{chain.NewLoggingListener(logger.New("events"))}

	if tSettings.Kafka.ChainEventsURL != nil {
		clusterAdmin, producer, err := kafka.NewKafkaProducer(tSettings.Kafka.ChainEventsURL, tSettings.Kafka.Partitions)
		if err != nil {
			n.Close()
			return nil, err
		}

		kafkaListener := chain.NewKafkaListener(logger.New("kafka"), tSettings, producer)

		listeners = append(listeners, kafkaListener)
		n.closers = append(n.closers, kafkaListener.Close, clusterAdmin.Close)
	}

	validator := chain.NewValidator(logger.New("validator"), tSettings)

	n.manager = chain.NewManager(logger.New("chain"), tSettings, store, validator, listeners)
	n.syncer = headersync.New(logger.New("headersync"), tSettings, n.manager, validator)

	n.closers = append(n.closers, func() error {
		return n.syncer.Stop(context.Background())
	})

	return n, nil
}

// Close releases everything in reverse order of creation.
func (n *node) Close() {
	for i := len(n.closers) - 1; i >= 0; i-- {
		if err := n.closers[i](); err != nil {
			n.logger.Errorf("[Close] %v", err)
		}
	}

	n.closers = nil
}

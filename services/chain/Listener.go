package chain

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/model"
	"github.com/bsv-blockchain/spvchain/settings"
	"github.com/bsv-blockchain/spvchain/ulogger"
	"github.com/bsv-blockchain/spvchain/util/kafka"
	"github.com/bsv-blockchain/spvchain/util/retry"
)

// Listeners fans every event out to each listener in order.
type Listeners []Listener

func (l Listeners) OnBlockInsert(ctx context.Context, block *model.Block) {
	for _, listener := range l {
		listener.OnBlockInsert(ctx, block)
	}
}

func (l Listeners) OnTransactionsDelete(ctx context.Context, hashes []chainhash.Hash) {
	for _, listener := range l {
		listener.OnTransactionsDelete(ctx, hashes)
	}
}

// LoggingListener writes every event to the logger.
type LoggingListener struct {
	logger ulogger.Logger
}

func NewLoggingListener(logger ulogger.Logger) *LoggingListener {
	return &LoggingListener{logger: logger}
}

func (l *LoggingListener) OnBlockInsert(_ context.Context, block *model.Block) {
	l.logger.Infof("[OnBlockInsert] %s", block)
}

func (l *LoggingListener) OnTransactionsDelete(_ context.Context, hashes []chainhash.Hash) {
	l.logger.Infof("[OnTransactionsDelete] %d transactions retracted", len(hashes))

	for _, hash := range hashes {
		l.logger.Debugf("[OnTransactionsDelete] retracted %s", hash)
	}
}

// KafkaListener publishes every event as a JSON model.Notification. Events
// are keyed by block hash, or by the first retracted transaction hash.
// Transient send failures are retried with a backoff. Delivery failures
// are logged and counted, never returned to the chain.
type KafkaListener struct {
	logger   ulogger.Logger
	settings *settings.Settings
	producer kafka.KafkaProducerI
}

func NewKafkaListener(logger ulogger.Logger, tSettings *settings.Settings, producer kafka.KafkaProducerI) *KafkaListener {
	initPrometheusMetrics()

	return &KafkaListener{
		logger:   logger,
		settings: tSettings,
		producer: producer,
	}
}

func (k *KafkaListener) OnBlockInsert(ctx context.Context, block *model.Block) {
	k.publish(ctx, block.Hash().CloneBytes(), model.NewBlockInsertNotification(block))
}

func (k *KafkaListener) OnTransactionsDelete(ctx context.Context, hashes []chainhash.Hash) {
	var key []byte
	if len(hashes) > 0 {
		key = hashes[0].CloneBytes()
	}

	k.publish(ctx, key, model.NewTransactionsDeleteNotification(hashes))
}

func (k *KafkaListener) publish(ctx context.Context, key []byte, notification *model.Notification) {
	data, err := notification.Bytes()
	if err != nil {
		prometheusChainListenerErrors.Inc()
		k.logger.Errorf("[KafkaListener] %v", err)

		return
	}

	_, err = retry.Retry(ctx, k.logger, func() (struct{}, error) {
		return struct{}{}, k.producer.Send(key, data)
	},
		retry.WithRetryCount(max(k.settings.Kafka.PublishRetries, 1)),
		retry.WithExponentialBackoff(),
		retry.WithBackoffDurationType(k.settings.Kafka.PublishBackoff),
		retry.WithRetryIf(errors.IsRetryableError),
		retry.WithMessage("[KafkaListener] publish failed"),
	)
	if err != nil {
		prometheusChainListenerErrors.Inc()
		k.logger.Errorf("[KafkaListener] failed to publish %s: %v", notification.Type, err)
	}
}

func (k *KafkaListener) Close() error {
	return k.producer.Close()
}

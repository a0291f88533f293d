// Package kafka publishes keyed messages to a Kafka topic described by a URL
// of the form kafka://host1:9092,host2:9092/topic?partitions=1&replication=1.
package kafka

import (
	"encoding/binary"
	"net/url"
	"strings"

	"github.com/IBM/sarama"
	"github.com/bsv-blockchain/spvchain/errors"
	"github.com/bsv-blockchain/spvchain/util"
)

type KafkaProducerI interface {
	Send(key []byte, data []byte) error
	Close() error
}

type SyncKafkaProducer struct {
	Producer   sarama.SyncProducer
	Topic      string
	Partitions int32
}

func (k *SyncKafkaProducer) Close() error {
	if err := k.Producer.Close(); err != nil {
		return errors.NewKafkaError("failed to close Kafka producer", err)
	}

	return nil
}

// Send publishes data to the partition selected by the first four bytes of key.
func (k *SyncKafkaProducer) Send(key []byte, data []byte) error {
	var partition int32

	if k.Partitions > 1 && len(key) >= 4 {
		partition = int32(binary.LittleEndian.Uint32(key) % uint32(k.Partitions)) //nolint:gosec // bounded by Partitions
	}

	if _, _, err := k.Producer.SendMessage(&sarama.ProducerMessage{
		Topic:     k.Topic,
		Key:       sarama.ByteEncoder(key),
		Value:     sarama.ByteEncoder(data),
		Partition: partition,
	}); err != nil {
		if isPermanentSendError(err) {
			return errors.NewKafkaError("message rejected by topic %s", k.Topic, err)
		}

		return errors.NewServiceUnavailableError("failed to send message to topic %s", k.Topic, err)
	}

	return nil
}

// isPermanentSendError reports whether the broker rejected the message itself,
// so sending it again cannot succeed.
func isPermanentSendError(err error) bool {
	return errors.Is(err, sarama.ErrMessageSizeTooLarge) ||
		errors.Is(err, sarama.ErrInvalidMessage) ||
		errors.Is(err, sarama.ErrTopicAuthorizationFailed) ||
		errors.Is(err, sarama.ErrUnknownTopicOrPartition)
}

// TopicFromURL returns the topic name encoded in the path of kafkaURL.
func TopicFromURL(kafkaURL *url.URL) (string, error) {
	topic := strings.TrimPrefix(kafkaURL.Path, "/")
	if topic == "" {
		return "", errors.NewConfigurationError("kafka URL %s has no topic", kafkaURL.String())
	}

	return topic, nil
}

// topicPartitions returns the partitions query parameter of kafkaURL, or
// defaultPartitions when it is not set. The result is at least 1.
func topicPartitions(kafkaURL *url.URL, defaultPartitions int) int {
	return max(util.GetQueryParamInt(kafkaURL, "partitions", defaultPartitions), 1)
}

// NewKafkaProducer creates the topic if needed and connects a producer.
// A partitions query parameter on kafkaURL overrides defaultPartitions.
func NewKafkaProducer(kafkaURL *url.URL, defaultPartitions int) (sarama.ClusterAdmin, KafkaProducerI, error) {
	brokersURL := strings.Split(kafkaURL.Host, ",")

	topic, err := TopicFromURL(kafkaURL)
	if err != nil {
		return nil, nil, err
	}

	config := sarama.NewConfig()
	config.Version = sarama.V2_1_0_0

	clusterAdmin, err := sarama.NewClusterAdmin(brokersURL, config)
	if err != nil {
		return nil, nil, errors.NewServiceUnavailableError("error while creating cluster admin", err)
	}

	partitions := topicPartitions(kafkaURL, defaultPartitions)
	replicationFactor := util.GetQueryParamInt(kafkaURL, "replication", 1)
	retentionPeriod := util.GetQueryParam(kafkaURL, "retention", "600000")      // 10 minutes
	segmentBytes := util.GetQueryParam(kafkaURL, "segment_bytes", "1073741824") // 1GB default

	if err = clusterAdmin.CreateTopic(topic, &sarama.TopicDetail{
		NumPartitions:     int32(partitions),        //nolint:gosec // small config value
		ReplicationFactor: int16(replicationFactor), //nolint:gosec // small config value
		ConfigEntries: map[string]*string{
			"retention.ms":        &retentionPeriod,
			"delete.retention.ms": &retentionPeriod,
			"segment.ms":          &retentionPeriod,
			"segment.bytes":       &segmentBytes,
		},
	}, false); err != nil {
		if !errors.Is(err, sarama.ErrTopicAlreadyExists) {
			_ = clusterAdmin.Close()
			return nil, nil, errors.NewKafkaError("failed to create topic %s", topic, err)
		}
	}

	flushBytes := util.GetQueryParamInt(kafkaURL, "flush_bytes", 1024)

	producer, err := ConnectProducer(brokersURL, topic, int32(partitions), flushBytes) //nolint:gosec // small config value
	if err != nil {
		_ = clusterAdmin.Close()
		return nil, nil, errors.NewServiceUnavailableError("unable to connect to kafka", err)
	}

	return clusterAdmin, producer, nil
}

func ConnectProducer(brokersURL []string, topic string, partitions int32, flushBytes ...int) (KafkaProducerI, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Partitioner = sarama.NewManualPartitioner

	flush := 16 * 1024
	if len(flushBytes) > 0 {
		flush = flushBytes[0]
	}

	config.Producer.Flush.Bytes = flush

	conn, err := sarama.NewSyncProducer(brokersURL, config)
	if err != nil {
		return nil, err
	}

	return &SyncKafkaProducer{
		Producer:   conn,
		Partitions: partitions,
		Topic:      topic,
	}, nil
}

// Package notify publishes governance events to Kafka. Publishing is
// best-effort from the workflows' point of view: the transaction that
// changed state has already committed when an event goes out, and a
// publish failure never rolls it back.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Publisher is the contract the workflows depend on. A nil *KafkaPublisher
// is a valid Publisher that drops every event, so services need no
// configured-or-not branching.
type Publisher interface {
	Publish(ctx context.Context, event *GovernanceEvent) error
	Close() error
}

// Config contains configuration for the Kafka governance-event producer.
type Config struct {
	Brokers      []string
	Topic        string
	RetryMax     int
	Timeout      time.Duration
	RequiredAcks sarama.RequiredAcks
}

// DefaultConfig returns a default producer configuration.
func DefaultConfig(brokers []string, topic string) *Config {
	return &Config{
		Brokers:      brokers,
		Topic:        topic,
		RetryMax:     3,
		Timeout:      10 * time.Second,
		RequiredAcks: sarama.WaitForAll,
	}
}

// KafkaPublisher publishes governance events through a sarama SyncProducer.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaPublisher creates a publisher connected to the configured brokers.
func NewKafkaPublisher(config *Config) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps every event for one site on one partition,
	// so consumers see transitions in order.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &KafkaPublisher{
		producer: producer,
		topic:    config.Topic,
	}, nil
}

// Publish sends one governance event, keyed by site ID.
func (p *KafkaPublisher) Publish(ctx context.Context, event *GovernanceEvent) error {
	if p == nil {
		return nil
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal governance event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(fmt.Sprintf("site-%d", event.SiteID)),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to publish governance event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}

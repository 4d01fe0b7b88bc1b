package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"civiscope/pkg/platform/sentinel"
)

// KafkaSink forwards audit events to a Kafka topic. It is produce-only:
// readers consume the topic directly, so ListByZip is unavailable.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects a producer to the given brokers and topic.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("audit.NewKafkaSink: at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("audit.NewKafkaSink: topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("audit.NewKafkaSink: %w", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	record := &kgo.Record{
		Key:   []byte(event.ZipCode),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (s *KafkaSink) ListByZip(context.Context, string) ([]Event, error) {
	return nil, fmt.Errorf("kafka sink is produce-only: %w", sentinel.ErrUnavailable)
}

// Close flushes buffered records and releases the producer.
func (s *KafkaSink) Close() {
	s.client.Close()
}

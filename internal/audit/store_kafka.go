package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"datencheck/internal/platform/kafka/producer"
)

// Sender is the subset of producer.Producer the Kafka store needs.
type Sender interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// KafkaStore publishes events as JSON records keyed by tree and xref.
type KafkaStore struct {
	sender Sender
	topic  string
}

func NewKafkaStore(sender Sender, topic string) *KafkaStore {
	if sender == nil {
		panic("audit: sender is required")
	}
	return &KafkaStore{sender: sender, topic: topic}
}

func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	msg := &producer.Message{
		Topic: s.topic,
		Key:   []byte(event.PartitionKey()),
		Value: payload,
		Headers: map[string]string{
			"event_type": string(event.Action),
			"event_id":   event.ID.String(),
		},
	}
	if err := s.sender.Produce(ctx, msg); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}

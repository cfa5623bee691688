package quote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hardik88t/puredry/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultTopic        = "quote-requests"
	EventQuoteRequested = "quote.requested"
	eventTypeHeader     = "event_type"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSubmitter publishes quote requests for a downstream sales system.
// Messages are keyed by quote id.
type KafkaSubmitter struct {
	writer messageWriter
}

func NewKafkaSubmitter(topic string, brokers ...string) *KafkaSubmitter {
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaSubmitter{writer: w}
}

func (s *KafkaSubmitter) Submit(ctx context.Context, req *domain.QuoteRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal quote request: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(req.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(EventQuoteRequested)},
		},
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to publish quote request: %w", err)
	}
	return req.ID, nil
}

func (s *KafkaSubmitter) Close() error {
	return s.writer.Close()
}

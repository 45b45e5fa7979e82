package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// EventMailRequested is the event type of every published envelope.
const EventMailRequested = "email.requested"

// Envelope is the JSON message consumed by the mail service.
type Envelope struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    string    `json:"order_id"`
	To         string    `json:"to"`
	Name       string    `json:"name,omitempty"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSender publishes e-mail requests to a Kafka topic.
type KafkaSender struct {
	writer messageWriter
	now    func() time.Time
	newID  func() uuid.UUID
}

// NewKafkaSender creates a synchronous writer for topic on brokers.
func NewKafkaSender(brokers []string, topic string) (*KafkaSender, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("mail topic is required")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return newKafkaSender(w), nil
}

func newKafkaSender(w messageWriter) *KafkaSender {
	return &KafkaSender{writer: w, now: time.Now, newID: uuid.New}
}

// Send writes one envelope keyed by order id.
func (s *KafkaSender) Send(ctx context.Context, n model.Notification) error {
	env := Envelope{
		EventID:    s.newID().String(),
		EventType:  EventMailRequested,
		OccurredAt: s.now().UTC(),
		OrderID:    n.OrderID.String(),
		To:         n.To,
		Name:       n.Name,
		Subject:    n.Subject,
		Body:       n.Body,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode mail envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(env.OrderID),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventMailRequested)},
		},
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish mail request: %w", err)
	}
	return nil
}

// Close flushes and closes the writer.
func (s *KafkaSender) Close() error {
	return s.writer.Close()
}

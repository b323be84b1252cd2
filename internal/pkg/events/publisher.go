package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event names, published under "<topic prefix><name>".
const (
	OrderCreated          = "order.created"
	CommissionPaid        = "payroll.commission_paid"
	EmployeePaid          = "payroll.employee_paid"
	PurchaseOrderReceived = "purchasing.po_received"
	CustomerPayment       = "payments.customer_payment"
)

// Event is the envelope written to the broker.
type Event struct {
	Name        string    `json:"name"`
	AggregateID string    `json:"aggregate_id"`
	BranchID    string    `json:"branch_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	Payload     any       `json:"payload"`
}

// Publisher emits integration events after state has been committed.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }
func (noopPublisher) Close() error                         { return nil }

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer      MessageWriter
	topicPrefix string
}

func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

func NewKafkaPublisher(writer MessageWriter, topicPrefix string) Publisher {
	return &kafkaPublisher{writer: writer, topicPrefix: topicPrefix}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Name, err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topicPrefix + event.Name,
		Key:   []byte(event.AggregateID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Name)},
		},
	})
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// Emit publishes event and logs a failure instead of returning it.
func Emit(ctx context.Context, p Publisher, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := p.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish event", "event", event.Name, "aggregate_id", event.AggregateID, "error", err)
	}
}

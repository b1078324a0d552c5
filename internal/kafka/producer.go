package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/pupbiru/humanitix-auto-codes/internal/logger"
	"github.com/pupbiru/humanitix-auto-codes/internal/models"
)

// RolloutMessage is the audit record published after a remote mutation.
type RolloutMessage struct {
	RunID     string    `json:"run_id"`
	EventID   string    `json:"event_id"`
	EventName string    `json:"event_name"`
	Action    string    `json:"action"`
	Marker    string    `json:"marker,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Producer struct {
	Writer *kafka.Writer
	log    *logger.Logger
}

func NewProducer(brokers []string, topic string, log *logger.Logger) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	return &Producer{Writer: writer, log: log}
}

// PublishDiscountsUpdated streams a discounts-replaced audit record.
func (p *Producer) PublishDiscountsUpdated(runID string, event models.Event) error {
	return p.publish(RolloutMessage{
		RunID:     runID,
		EventID:   event.EventID,
		EventName: event.Name,
		Action:    "discounts_updated",
		Timestamp: time.Now().UTC(),
	})
}

// PublishCodesUploaded streams a codes-uploaded audit record carrying the
// ledger marker that was committed for the event.
func (p *Producer) PublishCodesUploaded(runID string, event models.Event, marker string) error {
	return p.publish(RolloutMessage{
		RunID:     runID,
		EventID:   event.EventID,
		EventName: event.Name,
		Action:    "codes_uploaded",
		Marker:    marker,
		Timestamp: time.Now().UTC(),
	})
}

func (p *Producer) publish(msg RolloutMessage) error {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	p.log.Info("KAFKA", fmt.Sprintf("Publishing [%s] for event %s", msg.Action, msg.EventID))

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(msg.EventID),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

// MockProducer logs instead of publishing, for environments without brokers.
type MockProducer struct {
	Log *logger.Logger
}

func (m *MockProducer) PublishDiscountsUpdated(runID string, event models.Event) error {
	m.Log.Info("KAFKA", fmt.Sprintf("[mock] discounts_updated for event %s", event.EventID))
	return nil
}

func (m *MockProducer) PublishCodesUploaded(runID string, event models.Event, marker string) error {
	m.Log.Info("KAFKA", fmt.Sprintf("[mock] codes_uploaded for event %s", event.EventID))
	return nil
}

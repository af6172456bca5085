package facades

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=confirmation.go -destination=confirmation_mock.go -package=facades

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// ConfirmationKafkaFacade publishes confirmation events to Kafka.
type ConfirmationKafkaFacade struct {
	writer KafkaWriter
}

// NewConfirmationKafkaFacade creates a new facade over a Kafka writer.
func NewConfirmationKafkaFacade(writer KafkaWriter) *ConfirmationKafkaFacade {
	return &ConfirmationKafkaFacade{writer: writer}
}

// PublishConfirmation writes the event keyed by user id, so events of one
// user stay ordered within a partition.
func (f *ConfirmationKafkaFacade) PublishConfirmation(ctx context.Context, event models.ConfirmationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal confirmation event", "user_id", event.UserID, "error", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)),
		Value: data,
	}

	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish confirmation event", "user_id", event.UserID, "error", err)
		return err
	}

	logger.Log.Infow("confirmation event published", "user_id", event.UserID)
	return nil
}

// Close releases the underlying writer.
func (f *ConfirmationKafkaFacade) Close() error {
	return f.writer.Close()
}

// NopConfirmationFacade drops events. It stands in when no brokers are
// configured.
type NopConfirmationFacade struct{}

// PublishConfirmation logs and discards the event.
func (NopConfirmationFacade) PublishConfirmation(_ context.Context, event models.ConfirmationEvent) error {
	logger.Log.Warnw("kafka writer not configured, skipping publishing", "user_id", event.UserID)
	return nil
}

package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=consumer.go -destination=consumer_mock.go -package=mailer

// ErrSendFailed is returned by Run when a mail could not be delivered.
var ErrSendFailed = errors.New("confirmation mail not delivered")

// KafkaReader defines a Kafka consumer group reader abstraction.
type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Sender delivers a confirmation mail.
type Sender interface {
	Send(ctx context.Context, event models.ConfirmationEvent) error
}

// Consumer reads confirmation events and mails them out. An offset is
// committed only after the mail went out or the message proved unreadable.
type Consumer struct {
	reader   KafkaReader
	sender   Sender
	attempts int
	backoff  time.Duration
}

// ConsumerOpt configures a Consumer.
type ConsumerOpt func(*Consumer)

// WithRetry sets how many times a send is attempted and the base delay
// between attempts. The delay grows linearly.
func WithRetry(attempts int, backoff time.Duration) ConsumerOpt {
	return func(c *Consumer) {
		if attempts > 0 {
			c.attempts = attempts
		}
		c.backoff = backoff
	}
}

// NewConsumer creates a new Consumer.
func NewConsumer(reader KafkaReader, sender Sender, opts ...ConsumerOpt) *Consumer {
	c := &Consumer{
		reader:   reader,
		sender:   sender,
		attempts: 3,
		backoff:  time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run consumes until ctx is cancelled. It returns an error when a mail
// cannot be delivered after all attempts; the message stays uncommitted and
// is redelivered to the next consumer of the group.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Log.Errorw("failed to fetch message", "error", err)
			return err
		}

		if err := c.handle(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Log.Errorw("failed to commit message", "partition", msg.Partition, "offset", msg.Offset, "error", err)
			return err
		}
	}
}

// handle returns nil for messages that should be committed.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	var event models.ConfirmationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Log.Warnw("dropping malformed confirmation event", "partition", msg.Partition, "offset", msg.Offset, "error", err)
		return nil
	}
	if event.Email == "" || event.ConfirmURL == "" {
		logger.Log.Warnw("dropping incomplete confirmation event", "partition", msg.Partition, "offset", msg.Offset, "user_id", event.UserID)
		return nil
	}

	var err error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err = c.sender.Send(ctx, event); err == nil {
			return nil
		}
		logger.Log.Warnw("confirmation mail attempt failed", "user_id", event.UserID, "attempt", attempt, "error", err)
		if attempt == c.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoff * time.Duration(attempt)):
		}
	}
	return errors.Join(ErrSendFailed, err)
}

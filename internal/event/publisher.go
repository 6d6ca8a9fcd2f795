// Package event publishes domain events to RabbitMQ.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const TypeAttemptRecorded = "quiz.attempt.recorded"

// AttemptRecorded is emitted after a signed-in user's attempt commits.
type AttemptRecorded struct {
	EventType      string    `json:"event_type"`
	AttemptID      int64     `json:"attempt_id"`
	UserID         int64     `json:"user_id"`
	PhaseID        int       `json:"phase_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	PhaseCompleted bool      `json:"phase_completed"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishAttemptRecorded(ctx context.Context, e AttemptRecorded) error
	Close() error
}

type EventPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	enabled  bool
	logger   *slog.Logger
}

// NewEventPublisher connects and declares a durable topic exchange. An
// empty URI yields a publisher that drops every event.
func NewEventPublisher(rabbitURI, exchange string, logger *slog.Logger) (*EventPublisher, error) {
	if rabbitURI == "" {
		logger.Warn("RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{exchange: exchange, logger: logger}, nil
	}

	conn, err := amqp091.Dial(rabbitURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Info("event publisher initialized", slog.String("exchange", exchange))
	return &EventPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		enabled:  true,
		logger:   logger,
	}, nil
}

func (p *EventPublisher) Enabled() bool {
	return p.enabled
}

func (p *EventPublisher) PublishAttemptRecorded(ctx context.Context, e AttemptRecorded) error {
	if !p.enabled {
		return nil
	}
	e.EventType = TypeAttemptRecorded

	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,          // exchange
		TypeAttemptRecorded, // routing key
		false,               // mandatory
		false,               // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    e.OccurredAt,
			Body:         body,
			Headers: amqp091.Table{
				"event_type": TypeAttemptRecorded,
				"user_id":    strconv.FormatInt(e.UserID, 10),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("published event",
		slog.String("event_type", TypeAttemptRecorded),
		slog.Int64("attempt_id", e.AttemptID),
	)
	return nil
}

func (p *EventPublisher) Close() error {
	if !p.enabled {
		return nil
	}
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Error("error closing RabbitMQ channel", slog.String("error", err.Error()))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("error closing RabbitMQ connection: %w", err)
		}
	}
	return nil
}

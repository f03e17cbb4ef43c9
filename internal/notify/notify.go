// ABOUTME: Alert notifications for readings that classify at alert severity.
// ABOUTME: Publishes JSON alert messages to a durable RabbitMQ queue.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/vitals"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue is the queue alerts are published to when none is configured.
const DefaultQueue = "vitals.alerts"

const publishTimeout = 10 * time.Second

// Notifier receives every newly recorded reading.
type Notifier interface {
	Notify(ctx context.Context, r *models.Reading) error
	Close() error
}

// AlertMessage is the JSON body published for an alert.
type AlertMessage struct {
	ID         string          `json:"id"`
	Kind       vitals.Kind     `json:"kind"`
	Value      string          `json:"value"`
	Unit       string          `json:"unit,omitempty"`
	Label      vitals.Label    `json:"label"`
	Severity   vitals.Severity `json:"severity"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// NewAlertMessage builds the alert for r, or returns false when r does not
// classify at alert severity.
func NewAlertMessage(r *models.Reading) (AlertMessage, bool) {
	if r == nil {
		return AlertMessage{}, false
	}
	c := r.Classification()
	if c.Severity != vitals.Alert {
		return AlertMessage{}, false
	}
	return AlertMessage{
		ID:         r.ID.String(),
		Kind:       r.Kind,
		Value:      r.Value,
		Unit:       r.Unit,
		Label:      c.Label,
		Severity:   c.Severity,
		RecordedAt: r.RecordedAt,
	}, true
}

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes alerts to a RabbitMQ queue.
type AMQPPublisher struct {
	conn   *amqp.Connection
	ch     channel
	queue  string
	logger *log.Logger
}

// Dial connects to the broker at url and declares a durable queue.
func Dial(url, queue string, logger *log.Logger) (*AMQPPublisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	logger.Debug("connected to broker", "queue", queue)
	p := newPublisher(ch, queue, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, queue string, logger *log.Logger) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, queue: queue, logger: logger}
}

// Notify publishes r when it classifies at alert severity. Other readings
// are ignored.
func (p *AMQPPublisher) Notify(ctx context.Context, r *models.Reading) error {
	msg, ok := NewAlertMessage(r)
	if !ok {
		return nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx,
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.ID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}

	p.logger.Info("alert published", "kind", msg.Kind, "value", msg.Value, "label", msg.Label)
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	var firstErr error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			firstErr = fmt.Errorf("close channel: %w", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close connection: %w", err)
		}
	}
	return firstErr
}

// Nop discards every reading.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context, *models.Reading) error { return nil }

// Close does nothing.
func (Nop) Close() error { return nil }

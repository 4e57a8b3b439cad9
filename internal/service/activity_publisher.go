// Package service holds integrations that sit beside the request path.
// Failures are logged and returned so callers can ignore them without
// interrupting the request.
package service

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/oscar-explorer/internal/config"
	"github.com/iliyamo/oscar-explorer/internal/logging"
	"github.com/iliyamo/oscar-explorer/internal/metrics"
	"github.com/iliyamo/oscar-explorer/internal/queue"
)

// ActivityPublisher publishes activity events to RabbitMQ.  When AMQP is
// disabled Publish is a no-op.
type ActivityPublisher struct {
	cfg  config.AMQPConfig
	dial func(url string) (*amqp.Connection, error)
}

// NewActivityPublisher returns a publisher for cfg.
func NewActivityPublisher(cfg config.AMQPConfig) *ActivityPublisher {
	if cfg.Queue == "" {
		cfg.Queue = queue.ActivityQueue
	}
	return &ActivityPublisher{cfg: cfg, dial: amqp.Dial}
}

// Enabled reports whether events leave the process.
func (p *ActivityPublisher) Enabled() bool { return p != nil && p.cfg.Enabled }

// Publish sends ev to the activity queue as a persistent message.  Each call
// opens its own connection; activity events are rare next to reads.
func (p *ActivityPublisher) Publish(ctx context.Context, ev queue.ActivityEvent) (err error) {
	if !p.Enabled() {
		metrics.ActivityEventsPublished.WithLabelValues(ev.Type, "skipped").Inc()
		return nil
	}
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			logging.Ctx(ctx).Warn().Err(err).Str("type", ev.Type).Msg("rabbitmq: publish failed")
		}
		metrics.ActivityEventsPublished.WithLabelValues(ev.Type, outcome).Inc()
	}()

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	conn, err := p.dial(p.cfg.URL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.cfg.Queue, true, false, false, false, nil); err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",          // default exchange
		p.cfg.Queue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Type:         ev.Type,
			Body:         body,
		},
	)
}

package queue

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iliyamo/oscar-explorer/internal/logging"
)

// ActivityLogFile is the file the consumer appends to inside its log dir.
const ActivityLogFile = "activity.log"

const maxBackoff = 30 * time.Second

// Consumer drains the activity queue into an append-only audit log.
type Consumer struct {
	URL    string
	Queue  string
	LogDir string

	log zerolog.Logger
	mu  sync.Mutex // serialises writes to the log file
}

// NewConsumer returns a consumer for queue, writing to logDir/activity.log.
func NewConsumer(url, queue, logDir string) *Consumer {
	if queue == "" {
		queue = ActivityQueue
	}
	if logDir == "" {
		logDir = "logs"
	}
	return &Consumer{URL: url, Queue: queue, LogDir: logDir, log: logging.WithComponent("activity-consumer")}
}

// Run connects to the broker and consumes until ctx is cancelled.  Dial and
// channel failures are retried with exponential backoff capped at 30s.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.log.Warn().Err(err).Dur("retry_in", backoff).Msg("failed to dial broker")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second
		c.log.Info().Str("queue", c.Queue).Msg("consuming")

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn().Err(err).Msg("consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn().Err(err).Msg("set QoS failed")
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.HandleMessage(d.Body); err != nil {
				c.log.Error().Err(err).Msg("handle message failed")
				_ = d.Nack(false, false) // no requeue; a malformed body would loop forever
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event and appends its audit line.
func (c *Consumer) HandleMessage(body []byte) error {
	var ev ActivityEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" || ev.UserID == 0 {
		return errors.New("event without type or user")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.LogDir, err)
	}
	f, err := os.OpenFile(filepath.Join(c.LogDir, ActivityLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders ev as a single newline-terminated audit line.
func FormatLine(ev ActivityEvent) string {
	at := ev.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s | user_id=%d", at.UTC().Format(time.RFC3339), ev.Type, ev.UserID)
	if ev.Username != "" {
		fmt.Fprintf(&b, " | username=%q", ev.Username)
	}
	if ev.ItemType != "" {
		fmt.Fprintf(&b, " | item=%s:%s", ev.ItemType, ev.ItemID)
	}
	if ev.FavoriteID != 0 {
		fmt.Fprintf(&b, " | favorite_id=%d", ev.FavoriteID)
	}
	b.WriteByte('\n')
	return b.String()
}

package service

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/oscar-explorer/internal/config"
	"github.com/iliyamo/oscar-explorer/internal/queue"
)

func TestDisabledPublisherIsNoop(t *testing.T) {
	p := NewActivityPublisher(config.AMQPConfig{Enabled: false})
	p.dial = func(string) (*amqp.Connection, error) {
		t.Fatal("dial must not be called when disabled")
		return nil, nil
	}
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Publish(context.Background(), queue.ActivityEvent{Type: queue.EventFavoriteAdded, UserID: 1}))
}

func TestNilPublisherIsDisabled(t *testing.T) {
	var p *ActivityPublisher
	assert.False(t, p.Enabled())
}

func TestPublishReturnsDialError(t *testing.T) {
	p := NewActivityPublisher(config.AMQPConfig{Enabled: true, URL: "amqp://nowhere"})
	assert.Equal(t, queue.ActivityQueue, p.cfg.Queue)

	boom := errors.New("connection refused")
	p.dial = func(string) (*amqp.Connection, error) { return nil, boom }

	err := p.Publish(context.Background(), queue.ActivityEvent{Type: queue.EventUserRegistered, UserID: 2})
	assert.ErrorIs(t, err, boom)
}

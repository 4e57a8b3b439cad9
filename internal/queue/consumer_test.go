package queue

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine(t *testing.T) {
	at := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	line := FormatLine(ActivityEvent{
		Type: EventFavoriteAdded, UserID: 3, Username: "ann",
		ItemType: "film", ItemID: "tt0111161", FavoriteID: 9, OccurredAt: at,
	})
	assert.Equal(t, `[2024-03-10T20:00:00Z] favorite.added | user_id=3 | username="ann" | item=film:tt0111161 | favorite_id=9`+"\n", line)

	line = FormatLine(ActivityEvent{Type: EventUserRegistered, UserID: 4, OccurredAt: at})
	assert.Equal(t, "[2024-03-10T20:00:00Z] user.registered | user_id=4\n", line)
}

func TestHandleMessageAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	c := NewConsumer("amqp://unused", "", dir)
	assert.Equal(t, ActivityQueue, c.Queue)

	for _, ev := range []ActivityEvent{
		{Type: EventUserRegistered, UserID: 1, Username: "a", OccurredAt: time.Now()},
		{Type: EventFavoriteRemoved, UserID: 1, ItemType: "actor", ItemID: "nm1", FavoriteID: 2, OccurredAt: time.Now()},
	} {
		body, err := json.Marshal(ev)
		require.NoError(t, err)
		require.NoError(t, c.HandleMessage(body))
	}

	data, err := os.ReadFile(filepath.Join(dir, ActivityLogFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "user.registered")
	assert.Contains(t, lines[1], "item=actor:nm1")
}

func TestHandleMessageRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	c := NewConsumer("", "q", dir)

	assert.Error(t, c.HandleMessage([]byte("{not json")))
	assert.Error(t, c.HandleMessage([]byte(`{"type":"favorite.added"}`)))

	_, err := os.Stat(filepath.Join(dir, ActivityLogFile))
	assert.True(t, os.IsNotExist(err))
}

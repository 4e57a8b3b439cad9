// Package queue defines the activity events exchanged over the message
// broker and the consumer that records them.
package queue

import "time"

// ActivityQueue is the default durable queue for user activity.
const ActivityQueue = "user.activity"

// Activity event types.
const (
	EventUserRegistered  = "user.registered"
	EventFavoriteAdded   = "favorite.added"
	EventFavoriteRemoved = "favorite.removed"
)

// ActivityEvent is published after a user mutates their own data.  It
// carries enough to write an audit line without querying the database.
// Item fields are empty for account events.
type ActivityEvent struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	ItemType   string    `json:"item_type,omitempty"`
	ItemID     string    `json:"item_id,omitempty"`
	FavoriteID int64     `json:"favorite_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

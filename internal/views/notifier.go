package views

import (
	"sync"
	"time"
)

// NoticeTTL is how long a notice stays up unless replaced.
const NoticeTTL = 6 * time.Second

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notifier is a per-page queue of depth one: a new notice replaces the
// current one, and each notice clears itself after the TTL.
type Notifier struct {
	mu    sync.Mutex
	ttl   time.Duration
	cur   *Notice
	gen   uint64
	timer *time.Timer
}

// NewNotifier returns a notifier whose notices expire after ttl; zero means
// NoticeTTL.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = NoticeTTL
	}
	return &Notifier{ttl: ttl}
}

func (n *Notifier) Notify(kind NoticeKind, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.cur = &Notice{Kind: kind, Message: msg}
	n.timer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// A replaced notice's timer must not clear its successor.
		if n.gen == gen {
			n.cur = nil
		}
	})
}

func (n *Notifier) Success(msg string) { n.Notify(NoticeSuccess, msg) }
func (n *Notifier) Error(msg string)   { n.Notify(NoticeError, msg) }

// Current returns the visible notice, if any.
func (n *Notifier) Current() (Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cur == nil {
		return Notice{}, false
	}
	return *n.cur, true
}

func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	n.cur = nil
}

// Package views holds the page view-models of the terminal client.  Each
// page owns its inputs and one or more Loadable results; changing an input
// re-runs the fetch.  Rendering is left to the caller.
package views

import (
	"context"
	"sync"
)

// Status is the phase of a Loadable.
type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "error"
	default:
		return "idle"
	}
}

// State is a snapshot of a Loadable.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
}

// Loadable tracks one asynchronous result.  Every Begin hands out a
// sequence number and Finish only applies the result carrying the latest
// one, so a slow earlier response never overwrites a newer one.
type Loadable[T any] struct {
	mu    sync.Mutex
	seq   uint64
	state State[T]
}

// Begin marks a new request in flight and returns its sequence number.
// Data from the previous success stays visible while loading.
func (l *Loadable[T]) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.state.Status = Loading
	l.state.Err = nil
	return l.seq
}

// Finish records the outcome of request seq.  It reports false and changes
// nothing when a newer request has started since.
func (l *Loadable[T]) Finish(seq uint64, data T, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		return false
	}
	if err != nil {
		l.state.Status = Failed
		l.state.Err = err
		return true
	}
	l.state = State[T]{Status: Success, Data: data}
	return true
}

// Set replaces the state with a successful value outside any request.
func (l *Loadable[T]) Set(data T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.state = State[T]{Status: Success, Data: data}
}

// State returns the current snapshot.
func (l *Loadable[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load runs fetch as one request and returns the resulting snapshot, which
// may belong to a newer request when calls overlap.
func (l *Loadable[T]) Load(ctx context.Context, fetch func(context.Context) (T, error)) State[T] {
	seq := l.Begin()
	data, err := fetch(ctx)
	l.Finish(seq, data, err)
	return l.State()
}

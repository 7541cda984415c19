package catalog

import (
	"context"
	"sync"
)

// LookupFunc computes suggestions for a raw query.
type LookupFunc func(ctx context.Context, raw string) []Item

// Result is a suggestion list tagged with the epoch of the query that
// produced it.
type Result struct {
	Epoch uint64
	Query string
	Items []Item
}

// Live holds the visible suggestions of one input. Every Query starts a new
// epoch; a lookup that completes after a newer Query was issued is discarded.
type Live struct {
	lookup  LookupFunc
	onApply func(Result)

	mu      sync.Mutex
	epoch   uint64
	visible Result
}

// NewLive returns a Live backed by lookup. onApply, if non-nil, is called with
// every result that becomes visible, in epoch order. It runs with the Live
// locked and must not call back into it.
func NewLive(lookup LookupFunc, onApply func(Result)) *Live {
	return &Live{lookup: lookup, onApply: onApply, visible: Result{Items: []Item{}}}
}

// Query issues a lookup for raw in the background and returns its epoch.
func (l *Live) Query(ctx context.Context, raw string) uint64 {
	l.mu.Lock()
	l.epoch++
	epoch := l.epoch
	l.mu.Unlock()

	go func() {
		items := l.lookup(ctx, raw)
		l.apply(Result{Epoch: epoch, Query: raw, Items: items})
	}()
	return epoch
}

// apply publishes res unless a newer query has been issued since.
func (l *Live) apply(res Result) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if res.Epoch != l.epoch {
		return false
	}
	l.visible = res
	if l.onApply != nil {
		l.onApply(res)
	}
	return true
}

// Epoch returns the epoch of the most recently issued query.
func (l *Live) Epoch() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.epoch
}

// Current returns the visible result.
func (l *Live) Current() Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visible
}

// Package syncstore keeps client-side copies of diary resources in step with
// the remote backend. Each store loads its collection, exposes mutations that
// call the gateway first and then mirror the expected server-side effect
// locally, and reports failures through a Notifier.
//
// Loads are ordered: every load gets a sequence number and its own context,
// starting a newer load cancels the older one, and a result that is no longer
// the newest is discarded. After Close, late results are dropped.
package syncstore

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

var (
	// ErrSuperseded is returned by a load whose result was discarded because
	// a newer load started after it.
	ErrSuperseded = errors.New("load superseded by a newer one")
	// ErrClosed is returned by any call made after Close.
	ErrClosed = errors.New("store closed")
)

// Notifier surfaces a failed load or mutation to the user.
type Notifier interface {
	Notify(resource, action string, err error)
}

// LogNotifier writes notifications to a zerolog logger.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Notify(resource, action string, err error) {
	n.Log.Warn().Err(err).Str("resource", resource).Str("action", action).Msg("sync failed")
}

type options struct {
	notifier  Notifier
	reconcile bool
}

// Option configures a store.
type Option func(*options)

// WithNotifier replaces the default no-op notifier.
func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithReconcile re-fetches the collection after every successful mutation
// instead of applying the local mirror.
func WithReconcile() Option {
	return func(o *options) { o.reconcile = true }
}

func buildOptions(opts []Option) options {
	o := options{notifier: LogNotifier{Log: zerolog.Nop()}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// collection is the state shared by every store: the cached items, the
// loading flag, the last error and the load sequence.
//
// Keyed collections belong to an entry; key 0 means no entry is selected.
// Unkeyed collections always use key 0.
type collection[T any] struct {
	resource string
	keyed    bool
	fetch    func(ctx context.Context, key int64) domain.Result[[]T]
	opts     options

	mu      sync.Mutex
	items   []T
	loading bool
	err     error
	key     int64
	bound   bool
	seq     uint64
	cancel  context.CancelFunc
	closed  bool
}

func newCollection[T any](resource string, keyed bool, fetch func(context.Context, int64) domain.Result[[]T], opts options) *collection[T] {
	return &collection[T]{
		resource: resource,
		keyed:    keyed,
		fetch:    fetch,
		opts:     opts,
		items:    []T{},
	}
}

// snapshot returns a copy of the items, safe to keep after the call.
func (c *collection[T]) snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) isLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *collection[T]) lastErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *collection[T]) currentKey() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key
}

// setKey switches a keyed collection to another entry. The same key is a
// no-op once bound; key 0 clears the collection without a backend call.
func (c *collection[T]) setKey(ctx context.Context, key int64) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.bound && c.key == key {
		c.mu.Unlock()
		return nil
	}
	c.bound = true
	c.key = key
	if key == 0 {
		c.clearLocked()
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return c.load(ctx)
}

// clearLocked drops the items and invalidates any in-flight load.
func (c *collection[T]) clearLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.items = []T{}
	c.loading = false
	c.err = nil
}

// load fetches the collection for the current key. Only the newest load may
// store its result.
func (c *collection[T]) load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.keyed && c.key == 0 {
		c.mu.Unlock()
		return domain.ErrNoEntry
	}
	if c.cancel != nil {
		c.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	c.seq++
	seq, key := c.seq, c.key
	c.cancel = cancel
	c.loading = true
	c.mu.Unlock()

	res := c.fetch(loadCtx, key)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		cancel()
		return ErrClosed
	}
	if seq != c.seq {
		c.mu.Unlock()
		cancel()
		return ErrSuperseded
	}
	cancel()
	c.cancel = nil
	c.loading = false
	if res.Failed() {
		c.items = []T{}
		c.err = res.Failure()
		err := c.err
		c.mu.Unlock()
		c.opts.notifier.Notify(c.resource, "load", err)
		return err
	}
	c.err = nil
	c.items = []T{}
	if res.Data != nil && *res.Data != nil {
		c.items = *res.Data
	}
	c.mu.Unlock()
	return nil
}

// mutate performs call against the backend and, on success, either applies
// the local mirror or re-fetches. A failed call leaves the items untouched.
// The mirror is skipped when the key changed while the call was in flight.
func (c *collection[T]) mutate(ctx context.Context, action string, call func(ctx context.Context, key int64) error, apply func(items []T, key int64) []T) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	key := c.key
	if c.keyed && key == 0 {
		c.mu.Unlock()
		return domain.ErrNoEntry
	}
	c.mu.Unlock()

	if err := call(ctx, key); err != nil {
		c.mu.Lock()
		if !c.closed {
			c.err = err
		}
		c.mu.Unlock()
		c.opts.notifier.Notify(c.resource, action, err)
		return err
	}

	if c.opts.reconcile {
		if c.currentKey() != key {
			return nil
		}
		err := c.load(ctx)
		if errors.Is(err, ErrSuperseded) {
			return nil
		}
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.key != key {
		return nil
	}
	c.items = apply(c.items, key)
	c.err = nil
	return nil
}

// close cancels in-flight work; later results are no-ops.
func (c *collection[T]) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.closed = true
	c.loading = false
}

// filterOut returns items without the elements matching drop, in a new slice.
func filterOut[T any](items []T, drop func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !drop(it) {
			out = append(out, it)
		}
	}
	return out
}

// appendCopy appends to a fresh slice so earlier snapshots stay intact.
func appendCopy[T any](items []T, add T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, add)
}

// ABOUTME: Undo coordinator tracking the single pending block delete.
// ABOUTME: Pending deletes expire after a fixed window and are offered to the host.

package undo

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultWindow is how long a delete stays undoable.
const DefaultWindow = 5 * time.Second

// Pending describes the delete currently offered for undo.
type Pending struct {
	PageID    uuid.UUID
	Count     int
	ExpiresAt time.Time
}

// Message is the host-facing prompt for the pending delete.
func (p Pending) Message() string {
	if p.Count == 1 {
		return "1 block deleted"
	}
	return fmt.Sprintf("%d blocks deleted", p.Count)
}

// Registrar is a host undo facility such as an undo menu or a shake gesture.
// Offer is called when a delete becomes undoable; invoking undo runs the same
// restore path as a direct undo request. Withdraw is called once the offer is
// no longer valid. Implementations must not call undo synchronously from Offer.
type Registrar interface {
	Offer(p Pending, undo func() bool)
	Withdraw()
}

// Timer is the subset of *time.Timer the coordinator needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

type Coordinator struct {
	mu        sync.Mutex
	window    time.Duration
	afterFunc AfterFunc
	now       func() time.Time
	registrar Registrar

	pending   *Snapshot
	expiresAt time.Time
	gen       uint64
	timer     Timer
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithWindow sets how long a delete stays undoable.
func WithWindow(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.window = d
		}
	}
}

// WithAfterFunc replaces time.AfterFunc, mainly for tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *Coordinator) {
		c.afterFunc = fn
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// WithRegistrar hooks a host undo facility.
func WithRegistrar(r Registrar) Option {
	return func(c *Coordinator) {
		c.registrar = r
	}
}

func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		window: DefaultWindow,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) Window() time.Duration {
	return c.window
}

// SetRegistrar swaps the host undo facility. Passing nil detaches it.
func (c *Coordinator) SetRegistrar(r Registrar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registrar = r
}

// Capture makes snap the pending delete, replacing any earlier one, and
// starts its expiry window. undo is handed to the registrar as the action
// that restores it.
func (c *Coordinator) Capture(snap Snapshot, undo func() bool) Pending {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.pending = &snap
	c.expiresAt = c.now().Add(c.window)
	p := Pending{PageID: snap.PageID, Count: snap.Len(), ExpiresAt: c.expiresAt}
	c.timer = c.afterFunc(c.window, func() { c.expire(gen) })
	registrar := c.registrar
	c.mu.Unlock()

	if registrar != nil {
		registrar.Offer(p, undo)
	}
	return p
}

// Take consumes the pending delete. It reports false when nothing is
// pending, including after expiry.
func (c *Coordinator) Take() (Snapshot, bool) {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return Snapshot{}, false
	}
	snap := *c.pending
	c.clearLocked()
	registrar := c.registrar
	c.mu.Unlock()

	if registrar != nil {
		registrar.Withdraw()
	}
	return snap, true
}

// Pending reports the delete currently offered for undo.
func (c *Coordinator) Pending() (Pending, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return Pending{}, false
	}
	return Pending{PageID: c.pending.PageID, Count: c.pending.Len(), ExpiresAt: c.expiresAt}, true
}

// Discard drops the pending delete without restoring it.
func (c *Coordinator) Discard() {
	c.mu.Lock()
	had := c.pending != nil
	c.clearLocked()
	registrar := c.registrar
	c.mu.Unlock()

	if had && registrar != nil {
		registrar.Withdraw()
	}
}

func (c *Coordinator) expire(gen uint64) {
	c.mu.Lock()
	// A newer delete owns the pending slot; this timer is stale.
	if gen != c.gen || c.pending == nil {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.timer = nil
	registrar := c.registrar
	c.mu.Unlock()

	if registrar != nil {
		registrar.Withdraw()
	}
}

func (c *Coordinator) clearLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending = nil
	c.gen++
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package scrollstate tracks scroll position, direction, and whether
// the user is still actively scrolling.
//
// The [Tracker] is a two-state machine (scrolling, settled) with one
// timed transition. Every scroll event moves it to scrolling
// synchronously and restarts a quiet-period timer; the timer firing
// with no intervening event moves it to settled and notifies the
// caller. The timer comes from an injected [clock.Clock] so tests
// advance virtual time instead of sleeping.
package scrollstate

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bureau-foundation/vlist/lib/clock"
)

// DefaultSettleDelay is the quiet period after the last scroll event
// before the tracker reports settled.
const DefaultSettleDelay = 150 * time.Millisecond

// Direction is the sign of the most recent offset change.
type Direction int

const (
	// DirectionNone means no movement has been observed yet.
	DirectionNone Direction = iota
	// DirectionForward means the offset increased.
	DirectionForward
	// DirectionBackward means the offset decreased.
	DirectionBackward
)

// String returns "none", "forward", or "backward".
func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// State is a snapshot of the tracker.
type State struct {
	Offset    float64
	Direction Direction
	Settling  bool
}

// Options configures a Tracker.
type Options struct {
	// Clock schedules the settle timer. Defaults to clock.Real().
	Clock clock.Clock

	// SettleDelay is the quiet period. Defaults to DefaultSettleDelay.
	SettleDelay time.Duration

	// OnSettled is called with the settled state each time the quiet
	// period elapses. With the real clock it runs on the timer's
	// goroutine; hosts with an event loop forward it there (the
	// viewer sends a bubbletea message).
	OnSettled func(State)

	// Logger receives debug records for settle transitions. Nil
	// discards them.
	Logger *slog.Logger
}

// Tracker derives scroll direction and the settling flag from a stream
// of offsets. Safe for concurrent use: the settle timer may fire on
// another goroutine.
type Tracker struct {
	clock       clock.Clock
	settleDelay time.Duration
	onSettled   func(State)
	logger      *slog.Logger

	mu    sync.Mutex
	state State
	timer *clock.Timer

	// generation increments on every event. A timer callback only
	// settles the tracker if no event arrived after it was scheduled,
	// which covers a real timer that fired while OnScroll was
	// stopping it.
	generation uint64

	// gestureStart is when the current run of events began, for the
	// settle log record.
	gestureStart time.Time
}

// New creates a Tracker in the settled state at offset 0.
func New(options Options) *Tracker {
	tracker := &Tracker{
		clock:       options.Clock,
		settleDelay: options.SettleDelay,
		onSettled:   options.OnSettled,
		logger:      options.Logger,
	}
	if tracker.clock == nil {
		tracker.clock = clock.Real()
	}
	if tracker.settleDelay <= 0 {
		tracker.settleDelay = DefaultSettleDelay
	}
	if tracker.logger == nil {
		tracker.logger = slog.New(slog.DiscardHandler)
	}
	return tracker
}

// OnScroll records a new offset. Direction follows the sign of the
// change (an unchanged offset keeps the previous direction), Settling
// becomes true immediately, and the pending settle timer is replaced.
func (t *Tracker) OnScroll(offset float64) State {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case offset > t.state.Offset:
		t.state.Direction = DirectionForward
	case offset < t.state.Offset:
		t.state.Direction = DirectionBackward
	}
	t.state.Offset = offset
	if !t.state.Settling {
		t.gestureStart = t.clock.Now()
	}
	t.state.Settling = true

	if t.timer != nil {
		t.timer.Stop()
	}
	t.generation++
	generation := t.generation
	t.timer = t.clock.AfterFunc(t.settleDelay, func() {
		t.settle(generation)
	})

	return t.state
}

// settle is the timer callback.
func (t *Tracker) settle(generation uint64) {
	t.mu.Lock()
	if generation != t.generation || !t.state.Settling {
		t.mu.Unlock()
		return
	}
	t.state.Settling = false
	t.timer = nil
	settled := t.state
	gesture := t.clock.Now().Sub(t.gestureStart)
	t.mu.Unlock()

	t.logger.Debug("scroll settled",
		"offset", settled.Offset,
		"direction", settled.Direction.String(),
		"gesture", gesture,
	)
	if t.onSettled != nil {
		t.onSettled(settled)
	}
}

// State returns the current snapshot.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Stop cancels a pending settle timer without notifying. The tracker
// is left settled. Used when the list is torn down or its sequence is
// replaced.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.generation++
	t.state.Settling = false
}

// Reset stops the tracker and returns it to offset 0 with no
// direction.
func (t *Tracker) Reset() {
	t.Stop()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = State{}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scrollstate

import (
	"testing"
	"time"

	"github.com/bureau-foundation/vlist/lib/clock"
	"github.com/bureau-foundation/vlist/lib/testutil"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T) (*Tracker, *clock.FakeClock, *[]State) {
	t.Helper()
	fakeClock := clock.Fake(epoch)
	var settled []State
	tracker := New(Options{
		Clock: fakeClock,
		OnSettled: func(state State) {
			settled = append(settled, state)
		},
	})
	return tracker, fakeClock, &settled
}

func TestTrackerDirection(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	steps := []struct {
		offset float64
		want   Direction
	}{
		{100, DirectionForward},
		{250, DirectionForward},
		{250, DirectionForward}, // unchanged offset keeps direction
		{40, DirectionBackward},
		{40, DirectionBackward},
		{41, DirectionForward},
	}
	for _, step := range steps {
		state := tracker.OnScroll(step.offset)
		if state.Direction != step.want {
			t.Fatalf("OnScroll(%v) direction = %v, want %v", step.offset, state.Direction, step.want)
		}
		if state.Offset != step.offset {
			t.Fatalf("OnScroll(%v) offset = %v", step.offset, state.Offset)
		}
	}
}

func TestTrackerInitialState(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	if got := tracker.State(); got != (State{}) {
		t.Fatalf("initial State() = %+v, want zero", got)
	}
}

func TestTrackerSettlesAfterQuietPeriod(t *testing.T) {
	tracker, fakeClock, settled := newTestTracker(t)

	if state := tracker.OnScroll(10); !state.Settling {
		t.Fatal("OnScroll did not set Settling synchronously")
	}
	fakeClock.Advance(DefaultSettleDelay - time.Millisecond)
	if !tracker.State().Settling {
		t.Fatal("tracker settled before the quiet period elapsed")
	}
	fakeClock.Advance(time.Millisecond)
	if tracker.State().Settling {
		t.Fatal("tracker still settling after the quiet period")
	}
	if len(*settled) != 1 {
		t.Fatalf("OnSettled called %d times, want 1", len(*settled))
	}
	if got := (*settled)[0]; got.Offset != 10 || got.Settling || got.Direction != DirectionForward {
		t.Fatalf("settled state = %+v", got)
	}
}

func TestTrackerBurstDebounce(t *testing.T) {
	tracker, fakeClock, settled := newTestTracker(t)

	// Events 100ms apart never leave a 150ms gap.
	for event := 0; event < 20; event++ {
		tracker.OnScroll(float64(event * 30))
		fakeClock.Advance(100 * time.Millisecond)
		if !tracker.State().Settling {
			t.Fatalf("settled during burst after event %d", event)
		}
		if got := fakeClock.PendingCount(); got != 1 {
			t.Fatalf("PendingCount() = %d during burst, want 1", got)
		}
	}
	if len(*settled) != 0 {
		t.Fatalf("OnSettled called %d times during burst, want 0", len(*settled))
	}

	// 100ms already elapsed since the last event; 50ms more settles.
	fakeClock.Advance(49 * time.Millisecond)
	if !tracker.State().Settling {
		t.Fatal("settled before quiet period after last event")
	}
	fakeClock.Advance(time.Millisecond)
	if tracker.State().Settling {
		t.Fatal("not settled after quiet period")
	}
	if len(*settled) != 1 {
		t.Fatalf("OnSettled called %d times, want 1", len(*settled))
	}
}

func TestTrackerCustomDelay(t *testing.T) {
	fakeClock := clock.Fake(epoch)
	tracker := New(Options{Clock: fakeClock, SettleDelay: 40 * time.Millisecond})

	tracker.OnScroll(5)
	fakeClock.Advance(40 * time.Millisecond)
	if tracker.State().Settling {
		t.Fatal("custom settle delay not honored")
	}
}

func TestTrackerStaleFireIgnored(t *testing.T) {
	tracker, _, settled := newTestTracker(t)

	tracker.OnScroll(10)
	stale := tracker.generation
	tracker.OnScroll(20)

	// A real timer can fire after OnScroll lost the race to stop it.
	tracker.settle(stale)
	if !tracker.State().Settling {
		t.Fatal("stale timer fire settled the tracker")
	}
	if len(*settled) != 0 {
		t.Fatalf("stale fire notified %d times", len(*settled))
	}
}

func TestTrackerStop(t *testing.T) {
	tracker, fakeClock, settled := newTestTracker(t)

	tracker.OnScroll(10)
	tracker.Stop()
	if tracker.State().Settling {
		t.Fatal("Stop left the tracker settling")
	}
	if got := fakeClock.PendingCount(); got != 0 {
		t.Fatalf("PendingCount() after Stop = %d, want 0", got)
	}
	fakeClock.Advance(time.Second)
	if len(*settled) != 0 {
		t.Fatalf("OnSettled called %d times after Stop", len(*settled))
	}

	tracker.Reset()
	if got := tracker.State(); got != (State{}) {
		t.Fatalf("State() after Reset = %+v, want zero", got)
	}
}

func TestTrackerRealClock(t *testing.T) {
	done := make(chan State, 1)
	tracker := New(Options{
		SettleDelay: 5 * time.Millisecond,
		OnSettled:   func(state State) { done <- state },
	})
	tracker.OnScroll(3)
	state := testutil.RequireReceive(t, done, 5*time.Second, "real clock settling")
	if state.Settling || state.Offset != 3 {
		t.Fatalf("settled state = %+v", state)
	}
}

func TestDirectionString(t *testing.T) {
	if DirectionForward.String() != "forward" || DirectionBackward.String() != "backward" || DirectionNone.String() != "none" {
		t.Fatal("Direction.String mismatch")
	}
}

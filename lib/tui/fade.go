// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "time"

// FadeDuration is how long a freshly loaded row stays highlighted.
// Intensity starts at 1.0 and decays linearly to 0.0.
const FadeDuration = 2 * time.Second

// FadeTickInterval is the re-render interval while any row is fading.
const FadeTickInterval = 100 * time.Millisecond

// FadeTracker maps record IDs to the time they arrived, for the
// highlight that marks rows appended by a load.
type FadeTracker struct {
	ignitions map[int64]time.Time
}

// NewFadeTracker creates an empty tracker.
func NewFadeTracker() *FadeTracker {
	return &FadeTracker{ignitions: make(map[int64]time.Time)}
}

// Ignite starts (or restarts) the fade for id.
func (tracker *FadeTracker) Ignite(id int64, now time.Time) {
	tracker.ignitions[id] = now
}

// Intensity returns 1.0 at ignition decaying to 0.0 over FadeDuration.
// Returns 0.0 for ids never ignited or fully faded.
func (tracker *FadeTracker) Intensity(id int64, now time.Time) float64 {
	ignition, exists := tracker.ignitions[id]
	if !exists {
		return 0.0
	}
	elapsed := now.Sub(ignition)
	if elapsed >= FadeDuration {
		return 0.0
	}
	return 1.0 - float64(elapsed)/float64(FadeDuration)
}

// Active reports whether any row is still fading, i.e. whether the
// tick timer should keep running. Fully faded entries are dropped.
func (tracker *FadeTracker) Active(now time.Time) bool {
	active := false
	for id, ignition := range tracker.ignitions {
		if now.Sub(ignition) < FadeDuration {
			active = true
			continue
		}
		delete(tracker.ignitions, id)
	}
	return active
}

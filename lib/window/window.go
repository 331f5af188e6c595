// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package window computes which list items must be materialized for a
// given scroll position.
//
// [Compute] is pure: identical inputs against an unchanged height
// model always produce an identical [Window]. Window is comparable, so
// callers skip re-rendering with a plain == between the previous and
// the new window.
package window

import "github.com/bureau-foundation/vlist/lib/extent"

// Window is an inclusive range of item indices to materialize, plus
// the strictly visible sub-range before overscan was applied.
type Window struct {
	// Start and End bound the materialized items, overscan included.
	Start int
	End   int

	// VisibleStart and VisibleEnd bound the items intersecting the
	// viewport itself.
	VisibleStart int
	VisibleEnd   int
}

// Contains reports whether index is materialized.
func (w Window) Contains(index int) bool {
	return index >= w.Start && index <= w.End
}

// Len returns the number of materialized items.
func (w Window) Len() int {
	return w.End - w.Start + 1
}

// Compute returns the window for a viewport of containerExtent
// starting at scrollOffset, widened by overscan items on each side
// and clamped to [0, Len()-1]. Returns false when the model is empty
// or the container has no extent.
//
// The first visible item is the one containing scrollOffset. The walk
// forward stops at the first item whose end reaches the bottom of the
// viewport, so an item starting exactly at the bottom edge is not
// counted as visible.
func Compute(model extent.Model, scrollOffset, containerExtent float64, overscan int) (Window, bool) {
	count := model.Len()
	if count == 0 || !(containerExtent > 0) {
		return Window{}, false
	}
	if !(scrollOffset > 0) {
		scrollOffset = 0
	}
	if overscan < 0 {
		overscan = 0
	}

	first := model.IndexAtOffset(scrollOffset)
	last := first
	bottom := scrollOffset + containerExtent
	reached := model.OffsetOf(first) + model.HeightOf(first)
	for reached < bottom && last < count-1 {
		last++
		reached += model.HeightOf(last)
	}

	return Window{
		Start:        max(0, first-overscan),
		End:          min(count-1, last+overscan),
		VisibleStart: first,
		VisibleEnd:   last,
	}, true
}

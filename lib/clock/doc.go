// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the injectable time source behind the scroll
// settle timer.
//
// Components that schedule work in the future accept a Clock instead
// of calling time.AfterFunc directly. In production, Real() provides
// the standard library behavior. In tests, Fake() provides a clock
// that stands still until Advance is called, so a debounce window can
// be crossed (or not) deterministically:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	tracker := scrollstate.New(scrollstate.Options{Clock: c})
//	tracker.OnScroll(120)
//	c.Advance(149 * time.Millisecond) // still settling
//	c.Advance(time.Millisecond)       // settle timer fires
//
// Only the operations the list needs are abstracted: Now and
// AfterFunc. A Timer returned by AfterFunc can only be stopped; the
// scroll tracker stops its previous timer on every event so at
// most one timer is pending at any time.
package clock

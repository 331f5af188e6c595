// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package infiniteload decides when a list should fetch its next page
// and guarantees that at most one fetch is in flight.
//
// The [Controller] watches scroll progress: once the bottom of the
// viewport passes a threshold fraction of the total extent, and the
// source still has more items, and no load is outstanding, it marks
// itself loading and hands back a [Pending] load. The caller runs the
// pending load wherever asynchronous work belongs (a goroutine, a
// bubbletea command) and feeds the [Outcome] back through
// [Controller.Complete] on its own event loop:
//
//	if pending, ok := controller.Evaluate(progress); ok {
//	    go func() { results <- pending.Run(ctx) }()
//	}
//	...
//	controller.Complete(<-results)
//
// Failures are not retried internally. A failed load clears the
// loading flag and leaves HasMore unchanged, so the next qualifying
// Evaluate retries. A load that never completes withholds further
// loads indefinitely; loaders that need a deadline apply one to the
// context they receive.
package infiniteload

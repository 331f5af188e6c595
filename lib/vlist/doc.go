// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package vlist renders long, growing sequences by materializing only
// the items near the viewport.
//
// A [List] composes the height model ([extent]), the window
// calculator ([window]), the scroll state tracker ([scrollstate]), the
// infinite load controller ([infiniteload]) and the navigator
// ([navigate]) over a [Source] of items of any type. The host drives
// it from a single event loop:
//
//	update := list.Scroll(offset)
//	if update.Load != nil {
//	    go func() { outcomes <- update.Load.Run(ctx) }()
//	}
//	if update.Changed {
//	    rows := vlist.Render(list, renderRow)
//	    ...
//	}
//
// Load outcomes come back through [List.Complete] on the same loop.
// Measured heights come back through [List.Report]. List itself is not
// safe for concurrent use; [SliceSource] is, so loaders may append to
// it from their own goroutine.
//
// [extent]: github.com/bureau-foundation/vlist/lib/extent
// [window]: github.com/bureau-foundation/vlist/lib/window
// [scrollstate]: github.com/bureau-foundation/vlist/lib/scrollstate
// [infiniteload]: github.com/bureau-foundation/vlist/lib/infiniteload
// [navigate]: github.com/bureau-foundation/vlist/lib/navigate
package vlist

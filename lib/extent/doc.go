// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package extent resolves the size of list items along the scroll axis
// and maps between item indices and scroll offsets.
//
// Two models implement [Model]:
//
//   - [Fixed]: every item has the same height. All lookups are O(1)
//     arithmetic and nothing is cached.
//   - [Variable]: items have per-index heights. Unmeasured items use an
//     estimate; renderers report real heights through
//     [Model.SetMeasured] once an item has been drawn. A cumulative
//     offset table (offset[i] = sum of heights before i) backs
//     [Model.OffsetOf] and the binary search in [Model.IndexAtOffset].
//
// The offset table is maintained lazily. A measurement at index i
// invalidates every offset after i; the table is re-extended from the
// first invalid entry only when a lookup needs it. The total extent is
// a running sum patched on every measurement and append, so reading it
// never walks the table.
//
// Models are owned by a single list and are not safe for concurrent
// use. The list's length only grows ([Model.Grow]); replacing the
// sequence wholesale calls [Model.Reset].
package extent

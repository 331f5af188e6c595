// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vlist

import "sync"

// Source is an indexable, possibly growing sequence of items. Item
// returns false for an index whose item is not available yet; the
// renderer then receives a placeholder.
type Source[T any] interface {
	Len() int
	Item(index int) (T, bool)
}

// SliceSource is an append-only in-memory Source. Safe for concurrent
// use.
type SliceSource[T any] struct {
	mu    sync.RWMutex
	items []T
}

// NewSliceSource returns a SliceSource holding items.
func NewSliceSource[T any](items ...T) *SliceSource[T] {
	return &SliceSource[T]{items: items}
}

// Len returns the number of items.
func (s *SliceSource[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Item returns the item at index, or false if index is out of range.
func (s *SliceSource[T]) Item(index int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.items) {
		var zero T
		return zero, false
	}
	return s.items[index], true
}

// Append adds items to the end and returns the new length.
func (s *SliceSource[T]) Append(items ...T) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
	return len(s.items)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extent

import "fmt"

// Fixed is a Model in which every item has the same height.
type Fixed struct {
	height float64
	length int
}

// NewFixed creates a fixed-height model with the given initial length.
func NewFixed(height float64, length int) (*Fixed, error) {
	if !Valid(height) {
		return nil, fmt.Errorf("item height %v: %w", height, ErrInvalidExtent)
	}
	if length < 0 {
		return nil, fmt.Errorf("negative length %d", length)
	}
	return &Fixed{height: height, length: length}, nil
}

// Len returns the number of items.
func (f *Fixed) Len() int { return f.length }

// HeightOf returns the fixed height for every index.
func (f *Fixed) HeightOf(int) float64 { return f.height }

// OffsetOf returns index * height, with index clamped into range.
func (f *Fixed) OffsetOf(index int) float64 {
	return float64(clamp(index, f.length)) * f.height
}

// IndexAtOffset divides offset by the item height.
func (f *Fixed) IndexAtOffset(offset float64) int {
	if f.length == 0 || !(offset > 0) {
		return 0
	}
	quotient := offset / f.height
	if quotient >= float64(f.length) {
		return f.length - 1
	}
	return int(quotient)
}

// TotalExtent returns height * length.
func (f *Fixed) TotalExtent() float64 {
	return f.height * float64(f.length)
}

// SetMeasured validates the report and otherwise ignores it: a fixed
// model has no per-item cache.
func (f *Fixed) SetMeasured(index int, height float64) error {
	if index < 0 || index >= f.length {
		return fmt.Errorf("measure index %d of %d: %w", index, f.length, ErrIndexOutOfRange)
	}
	if !Valid(height) {
		return fmt.Errorf("measure index %d height %v: %w", index, height, ErrInvalidExtent)
	}
	return nil
}

// Grow extends the length to n.
func (f *Fixed) Grow(n int) error {
	if n < f.length {
		return fmt.Errorf("grow from %d to %d: %w", f.length, n, ErrShrink)
	}
	f.length = n
	return nil
}

// Reset sets the length to n.
func (f *Fixed) Reset(n int) {
	if n < 0 {
		n = 0
	}
	f.length = n
}

var _ Model = (*Fixed)(nil)

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extent

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidExtent is returned for a zero, negative, NaN or
	// infinite height. A model never stores such a value: it would
	// break the monotonic offset table.
	ErrInvalidExtent = errors.New("extent must be positive and finite")

	// ErrIndexOutOfRange is returned by SetMeasured for an index
	// outside the known length.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrShrink is returned by Grow when the new length is smaller
	// than the current one. Items are only ever appended.
	ErrShrink = errors.New("length may only grow")
)

// Model maps item indices to heights and scroll offsets.
type Model interface {
	// Len returns the number of items currently known.
	Len() int

	// HeightOf returns the measured height of index if one has been
	// reported, otherwise its estimate. Always positive. Indices are
	// clamped to [0, Len()-1].
	HeightOf(index int) float64

	// OffsetOf returns the scroll offset at which index begins: the
	// sum of the heights of every item before it. OffsetOf(0) is 0.
	// Indices are clamped like HeightOf.
	OffsetOf(index int) float64

	// IndexAtOffset returns the index of the item whose extent
	// contains offset. Negative offsets return 0; offsets at or past
	// the end return the last index. Returns 0 when the model is
	// empty.
	IndexAtOffset(offset float64) int

	// TotalExtent returns the sum of all item heights.
	TotalExtent() float64

	// SetMeasured records an authoritative height for index. Invalid
	// heights are rejected with ErrInvalidExtent and the previous
	// value stays in effect.
	SetMeasured(index int, height float64) error

	// Grow extends the known length to n. Returns ErrShrink if n is
	// smaller than the current length.
	Grow(n int) error

	// Reset discards every measurement and sets the length to n. Used
	// when the item sequence is replaced rather than appended to.
	Reset(n int)
}

// Options selects and configures a model. A positive ItemHeight with
// no Estimate selects [Fixed]; otherwise [Variable] is used with
// Estimate and DefaultEstimate.
type Options struct {
	// ItemHeight is the constant height of every item in fixed mode.
	// Zero selects variable mode.
	ItemHeight float64

	// Estimate optionally returns an estimated height for an index
	// that has not been measured yet. Selects variable mode.
	Estimate func(index int) float64

	// DefaultEstimate is the variable-mode height used for unmeasured
	// items when Estimate is nil or returns an invalid height.
	DefaultEstimate float64

	// Length is the initial number of items.
	Length int
}

// New builds the model described by options.
func New(options Options) (Model, error) {
	if options.Length < 0 {
		return nil, fmt.Errorf("negative length %d", options.Length)
	}
	if options.ItemHeight != 0 && !Valid(options.ItemHeight) {
		return nil, fmt.Errorf("item height %v: %w", options.ItemHeight, ErrInvalidExtent)
	}
	if options.Estimate == nil && options.ItemHeight != 0 {
		fixed, err := NewFixed(options.ItemHeight, options.Length)
		if err != nil {
			return nil, err
		}
		return fixed, nil
	}
	variable, err := NewVariable(VariableOptions{
		Estimate:        options.Estimate,
		DefaultEstimate: options.DefaultEstimate,
		Length:          options.Length,
	})
	if err != nil {
		return nil, err
	}
	return variable, nil
}

// Valid reports whether height is usable as an item extent.
func Valid(height float64) bool {
	return height > 0 && !math.IsInf(height, 1)
}

// clamp bounds index to [0, length-1]. For an empty model it returns 0.
func clamp(index, length int) int {
	if index >= length {
		index = length - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

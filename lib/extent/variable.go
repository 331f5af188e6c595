// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package extent

import (
	"fmt"
	"sort"
)

// VariableOptions configures a Variable model.
type VariableOptions struct {
	// Estimate returns the height to assume for an unmeasured index.
	// It must be deterministic: the running total and the offset
	// table both assume an unmeasured index keeps its estimate. May
	// be nil.
	Estimate func(index int) float64

	// DefaultEstimate is used when Estimate is nil or returns an
	// invalid height. Must be positive.
	DefaultEstimate float64

	// Length is the initial number of items.
	Length int
}

// Variable is a Model with per-index heights. Measured heights live in
// a sparse cache; everything else is estimated.
type Variable struct {
	estimate        func(index int) float64
	defaultEstimate float64

	length   int
	measured map[int]float64

	// offsets[i] is the start of item i. Entries offsets[0..valid]
	// are correct; anything after valid is stale and gets rebuilt on
	// demand. offsets has length+1 entries once extended to the end,
	// the last one being the end of the final item.
	offsets []float64
	valid   int

	// total is the running sum of every item's height.
	total float64
}

// NewVariable creates a variable-height model.
func NewVariable(options VariableOptions) (*Variable, error) {
	if !Valid(options.DefaultEstimate) {
		return nil, fmt.Errorf("default estimate %v: %w", options.DefaultEstimate, ErrInvalidExtent)
	}
	if options.Length < 0 {
		return nil, fmt.Errorf("negative length %d", options.Length)
	}
	model := &Variable{
		estimate:        options.Estimate,
		defaultEstimate: options.DefaultEstimate,
	}
	model.Reset(options.Length)
	return model, nil
}

// Len returns the number of items.
func (v *Variable) Len() int { return v.length }

// HeightOf returns the measured height of index, or its estimate.
func (v *Variable) HeightOf(index int) float64 {
	index = clamp(index, v.length)
	if height, ok := v.measured[index]; ok {
		return height
	}
	return v.estimateOf(index)
}

// Measured returns the recorded measurement for index, if any.
func (v *Variable) Measured(index int) (float64, bool) {
	height, ok := v.measured[index]
	return height, ok
}

func (v *Variable) estimateOf(index int) float64 {
	if v.estimate != nil {
		if height := v.estimate(index); Valid(height) {
			return height
		}
	}
	return v.defaultEstimate
}

// OffsetOf returns the start of index from the cumulative table,
// extending the table up to index if needed.
func (v *Variable) OffsetOf(index int) float64 {
	index = clamp(index, v.length)
	v.extendTo(index)
	return v.offsets[index]
}

// IndexAtOffset binary-searches the offset table for the item that
// contains offset. The table is only extended as far as offset
// requires, so a lookup near the top of a long list stays cheap even
// after a measurement invalidated the tail.
func (v *Variable) IndexAtOffset(offset float64) int {
	if v.length == 0 || !(offset > 0) {
		return 0
	}
	for v.valid < v.length && v.offsets[v.valid] <= offset {
		v.extendTo(v.valid + 1)
	}
	// Items 0..valid-1 have known ends. Find the first one ending
	// after offset.
	index := sort.Search(v.valid, func(i int) bool {
		return v.offsets[i+1] > offset
	})
	if index >= v.length {
		return v.length - 1
	}
	return index
}

// TotalExtent returns the running total of all heights.
func (v *Variable) TotalExtent() float64 { return v.total }

// SetMeasured records height for index, patches the running total by
// the difference from the previous height, and invalidates every
// offset after index.
func (v *Variable) SetMeasured(index int, height float64) error {
	if index < 0 || index >= v.length {
		return fmt.Errorf("measure index %d of %d: %w", index, v.length, ErrIndexOutOfRange)
	}
	if !Valid(height) {
		return fmt.Errorf("measure index %d height %v: %w", index, height, ErrInvalidExtent)
	}
	previous := v.HeightOf(index)
	if previous == height {
		if _, ok := v.measured[index]; ok {
			return nil
		}
	}
	v.measured[index] = height
	v.total += height - previous
	if index < v.valid {
		v.valid = index
	}
	return nil
}

// Grow appends estimated items up to length n.
func (v *Variable) Grow(n int) error {
	if n < v.length {
		return fmt.Errorf("grow from %d to %d: %w", v.length, n, ErrShrink)
	}
	for index := v.length; index < n; index++ {
		v.total += v.estimateOf(index)
	}
	v.length = n
	v.offsets = growOffsets(v.offsets, n+1)
	return nil
}

// Reset discards all measurements and offsets.
func (v *Variable) Reset(n int) {
	if n < 0 {
		n = 0
	}
	v.length = 0
	v.total = 0
	v.measured = make(map[int]float64)
	v.offsets = make([]float64, 1, n+1)
	v.valid = 0
	// Grow cannot fail from an empty model.
	_ = v.Grow(n)
}

// extendTo rebuilds offsets up to and including index.
func (v *Variable) extendTo(index int) {
	for ; v.valid < index; v.valid++ {
		v.offsets[v.valid+1] = v.offsets[v.valid] + v.HeightOf(v.valid)
	}
}

// growOffsets extends the table to size entries, keeping existing
// values. New entries are stale until extendTo reaches them.
func growOffsets(offsets []float64, size int) []float64 {
	if size <= len(offsets) {
		return offsets
	}
	if size <= cap(offsets) {
		return offsets[:size]
	}
	grown := make([]float64, size, size+size/2)
	copy(grown, offsets)
	return grown
}

var _ Model = (*Variable)(nil)

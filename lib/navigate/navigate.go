// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package navigate converts "show item i" requests into scroll
// offsets and issues them to the host scroll surface.
package navigate

import (
	"fmt"

	"github.com/bureau-foundation/vlist/lib/extent"
)

// Align selects where the target item lands in the viewport.
type Align int

const (
	// AlignStart puts the item's leading edge at the top.
	AlignStart Align = iota

	// AlignCenter centers the item in the viewport.
	AlignCenter

	// AlignEnd puts the item's trailing edge at the bottom.
	AlignEnd

	// AlignAuto leaves the offset unchanged when the item is fully
	// visible, otherwise scrolls the minimum distance to reveal it.
	AlignAuto
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	case AlignAuto:
		return "auto"
	default:
		return fmt.Sprintf("Align(%d)", int(a))
	}
}

// ParseAlign is the inverse of Align.String.
func ParseAlign(name string) (Align, error) {
	switch name {
	case "start":
		return AlignStart, nil
	case "center":
		return AlignCenter, nil
	case "end":
		return AlignEnd, nil
	case "auto":
		return AlignAuto, nil
	default:
		return 0, fmt.Errorf("unknown alignment %q (want start, center, end, or auto)", name)
	}
}

// Scroller is the host scroll surface.
type Scroller interface {
	ScrollTo(offset float64)
}

// Positioner is implemented by scrollers that can report their
// current offset. AlignAuto uses it; without it the current offset is
// taken as zero.
type Positioner interface {
	Offset() float64
}

// ScrollerFunc adapts a function to the Scroller interface.
type ScrollerFunc func(offset float64)

// ScrollTo calls f.
func (f ScrollerFunc) ScrollTo(offset float64) { f(offset) }

// Navigator computes targets over a height model. It never modifies
// the model.
type Navigator struct {
	model     extent.Model
	container float64
	scroller  Scroller
}

// New creates a Navigator. scroller may be nil when only Target is
// used.
func New(model extent.Model, containerExtent float64, scroller Scroller) *Navigator {
	return &Navigator{model: model, container: containerExtent, scroller: scroller}
}

// SetContainer updates the viewport extent after a resize.
func (n *Navigator) SetContainer(containerExtent float64) {
	n.container = containerExtent
}

// Target returns the scroll offset that shows index with the given
// alignment. AlignAuto is evaluated against a current offset of zero;
// use TargetFrom when the current offset is known.
func (n *Navigator) Target(index int, align Align) float64 {
	return n.TargetFrom(index, align, 0)
}

// TargetFrom returns the scroll offset that shows index with the given
// alignment, starting from the current offset. The index is clamped
// into the known length (the sequence may still be growing) and the
// result is clamped to the scrollable range.
func (n *Navigator) TargetFrom(index int, align Align, current float64) float64 {
	length := n.model.Len()
	if length == 0 {
		return 0
	}
	index = max(0, min(index, length-1))

	top := n.model.OffsetOf(index)
	height := n.model.HeightOf(index)

	var target float64
	switch align {
	case AlignCenter:
		target = top - (n.container-height)/2
	case AlignEnd:
		target = top + height - n.container
	case AlignAuto:
		switch {
		case top < current || height >= n.container:
			target = top
		case top+height > current+n.container:
			target = top + height - n.container
		default:
			target = current
		}
	default:
		target = top
	}
	return n.clamp(target)
}

func (n *Navigator) clamp(offset float64) float64 {
	limit := max(0, n.model.TotalExtent()-n.container)
	if offset > limit {
		offset = limit
	}
	if !(offset > 0) {
		return 0
	}
	return offset
}

// ScrollToIndex issues exactly one scroll to the target for index.
// It returns the offset issued.
func (n *Navigator) ScrollToIndex(index int, align Align) float64 {
	current := 0.0
	if positioner, ok := n.scroller.(Positioner); ok {
		current = positioner.Offset()
	}
	target := n.TargetFrom(index, align, current)
	if n.scroller != nil {
		n.scroller.ScrollTo(target)
	}
	return target
}

// ScrollToTop is ScrollToIndex(0, AlignStart).
func (n *Navigator) ScrollToTop() float64 {
	return n.ScrollToIndex(0, AlignStart)
}

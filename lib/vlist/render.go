// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vlist

// Style positions one materialized item.
type Style struct {
	Index int

	// Top is the item's offset from the start of the list. Subtract
	// List.Offset for its position in the viewport.
	Top float64

	// Height is the measured height, or the estimate when unmeasured.
	Height float64

	// Pending is true when the source has no item for Index yet; the
	// item passed to the renderer is then the zero value.
	Pending bool
}

// RenderFunc turns one item into the host's display type D.
type RenderFunc[T, D any] func(item T, index int, style Style) D

// Render calls render once for every index in the current window, in
// order, and returns the results. Returns nil when the window is
// empty.
func Render[T, D any](list *List[T], render RenderFunc[T, D]) []D {
	if list.empty {
		return nil
	}
	w := list.window
	rendered := make([]D, 0, w.Len())
	for index := w.Start; index <= w.End; index++ {
		item, ok := list.source.Item(index)
		style := Style{
			Index:   index,
			Top:     list.model.OffsetOf(index),
			Height:  list.model.HeightOf(index),
			Pending: !ok,
		}
		rendered = append(rendered, render(item, index, style))
	}
	return rendered
}

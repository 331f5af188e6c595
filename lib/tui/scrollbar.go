// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar produces a single-column scrollbar of the given
// height for content of totalExtent viewed through a container of
// visibleExtent at scrollOffset. Extents are in the list's units, not
// rows.
//
// When content fits the thumb spans the entire height. The thumb uses
// the loading color while a page is being fetched, so the bar doubles
// as a progress hint at the bottom of a growing list.
func RenderScrollbar(theme Theme, height int, totalExtent, visibleExtent, scrollOffset float64, loading bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.FaintText
	if loading {
		thumbColor = theme.StatusLoading
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	lines := make([]string, height)

	if totalExtent <= visibleExtent || totalExtent <= 0 {
		for index := range lines {
			lines[index] = thumbStyle.Render("┃")
		}
		return strings.Join(lines, "\n")
	}

	// Thumb size: proportional to visible/total, minimum 1 row.
	thumbSize := max(1, int(float64(height)*visibleExtent/totalExtent))

	// Thumb position: proportional to offset within the scrollable range.
	scrollableRange := totalExtent - visibleExtent
	trackRange := height - thumbSize
	thumbOffset := 0
	if trackRange > 0 {
		thumbOffset = int(scrollOffset / scrollableRange * float64(trackRange))
	}
	thumbOffset = max(0, min(thumbOffset, height-thumbSize))

	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

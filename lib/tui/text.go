// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// FitWidth truncates or pads s to exactly width terminal cells,
// ignoring ANSI escape sequences when measuring. Truncated text ends in
// an ellipsis.
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	visible := ansi.StringWidth(s)
	if visible > width {
		s = ansi.Truncate(s, width, "…")
		visible = ansi.StringWidth(s)
	}
	if visible < width {
		s += strings.Repeat(" ", width-visible)
	}
	return s
}

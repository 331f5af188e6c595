// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal rendering pieces of the vlist
// viewer: the color theme, a proportional scrollbar, ANSI-aware width
// fitting, and the fade tracker that highlights freshly loaded rows.
// Built on lipgloss and charmbracelet/x/ansi.
package tui

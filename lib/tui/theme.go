// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the viewer. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Placeholder rows for items the source has not produced yet.
	PendingText lipgloss.Color

	// Status line indicators.
	StatusLoading   lipgloss.Color
	StatusFailed    lipgloss.Color
	StatusExhausted lipgloss.Color
	StatusSettling  lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// FreshAccent tints rows appended by the most recent load.
	FreshAccent lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PendingText: lipgloss.Color("240"),

	StatusLoading:   lipgloss.Color("220"), // yellow/amber
	StatusFailed:    lipgloss.Color("196"), // red
	StatusExhausted: lipgloss.Color("114"), // green
	StatusSettling:  lipgloss.Color("75"),  // blue

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	FreshAccent: lipgloss.Color("58"), // dark amber background tint
}

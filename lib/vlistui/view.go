// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vlistui

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/vlist/lib/record"
	"github.com/bureau-foundation/vlist/lib/tui"
	"github.com/bureau-foundation/vlist/lib/vlist"
)

// placedRow is one materialized record cut into terminal lines,
// positioned relative to the top of the viewport.
type placedRow struct {
	top   int
	lines []string
}

// View renders the header, the visible rows with a scrollbar, and the
// status line.
func (model Model) View() string {
	if model.width <= 0 || model.height <= 0 {
		return ""
	}
	bodyHeight := model.bodyHeight()
	contentWidth := max(0, model.width-1)

	body := model.renderBody(bodyHeight, contentWidth)
	scrollbar := tui.RenderScrollbar(model.theme, bodyHeight,
		model.list.TotalExtent(), model.list.Container(), model.list.Offset(),
		model.list.LoadState().Loading)

	sections := []string{model.renderHeader()}
	if bodyHeight > 0 {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, body, scrollbar))
	}
	sections = append(sections, model.renderStatus())
	return strings.Join(sections, "\n")
}

func (model Model) renderHeader() string {
	style := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	title := model.title
	if title == "" {
		title = "vlist"
	}
	summary := fmt.Sprintf("%d records", model.list.Len())
	if window, ok := model.list.Window(); ok {
		summary = fmt.Sprintf("%d–%d of %d records", window.VisibleStart, window.VisibleEnd, model.list.Len())
	}
	position := fmt.Sprintf("offset %.0f/%.0f", model.list.Offset(), model.list.MaxOffset())

	line := style.Render(title) + "  " + faint.Render(summary+"  ·  "+position)
	return tui.FitWidth(line, model.width)
}

// renderBody draws every materialized record onto a canvas of
// bodyHeight lines. Overscan rows outside the viewport are clipped.
func (model Model) renderBody(bodyHeight, contentWidth int) string {
	canvas := make([]string, bodyHeight)
	offset := model.list.Offset()
	now := model.now()

	rows := vlist.Render(model.list, func(item record.Record, index int, style vlist.Style) placedRow {
		height := max(1, int(math.Round(style.Height)))
		top := int(math.Floor(style.Top - offset))
		if style.Pending {
			return placedRow{top: top, lines: model.pendingLines(index, height)}
		}
		return placedRow{top: top, lines: model.recordLines(item, height, model.fade.Intensity(item.ID, now))}
	})

	for _, row := range rows {
		for line, text := range row.lines {
			y := row.top + line
			if y >= 0 && y < bodyHeight {
				canvas[y] = text
			}
		}
	}

	pad := lipgloss.NewStyle().Width(contentWidth)
	for index, line := range canvas {
		canvas[index] = pad.Render(tui.FitWidth(line, contentWidth))
	}
	return strings.Join(canvas, "\n")
}

// recordLines renders a record as its title line and body lines,
// padded or cut to height. Freshly loaded records get an accent
// background until they fade.
func (model Model) recordLines(item record.Record, height int, intensity float64) []string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.NormalText)
	if intensity > 0.25 {
		titleStyle = titleStyle.Background(model.theme.FreshAccent)
	}
	bodyStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	lines := []string{titleStyle.Render(fmt.Sprintf("#%-6d %s", item.ID, item.Title))}
	if item.Body != "" {
		for _, text := range strings.Split(item.Body, "\n") {
			lines = append(lines, bodyStyle.Render("        "+text))
		}
	}
	return fitLines(lines, height)
}

func (model Model) pendingLines(index, height int) []string {
	style := lipgloss.NewStyle().Foreground(model.theme.PendingText)
	return fitLines([]string{style.Render(fmt.Sprintf("  … row %d", index))}, height)
}

func fitLines(lines []string, height int) []string {
	if len(lines) > height {
		return lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// renderStatus shows, by priority: the jump prompt, a recent log
// record, then the load and scroll state, followed by key help.
func (model Model) renderStatus() string {
	status := model.statusText()
	help := lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(model.helpText())
	if status == "" {
		return tui.FitWidth(help, model.width)
	}
	return tui.FitWidth(status+"  "+help, model.width)
}

func (model Model) statusText() string {
	colored := func(color lipgloss.Color, text string) string {
		return lipgloss.NewStyle().Foreground(color).Render(text)
	}

	if model.jumping {
		return colored(model.theme.HeaderForeground,
			fmt.Sprintf("jump to index: %s▏ (align %s, esc cancels)", model.jumpInput, model.align))
	}
	if model.logMessage != nil {
		color := model.theme.StatusLoading
		if model.logMessage.Level >= slog.LevelError {
			color = model.theme.StatusFailed
		}
		return colored(color, model.logMessage.Summary)
	}

	loads := model.list.LoadState()
	switch {
	case loads.Loading:
		return colored(model.theme.StatusLoading, "loading…")
	case model.loadErr != nil:
		return colored(model.theme.StatusFailed, fmt.Sprintf("load failed: %v (r to retry)", model.loadErr))
	case model.list.ScrollState().Settling:
		return colored(model.theme.StatusSettling, "scrolling")
	case !loads.HasMore:
		return colored(model.theme.StatusExhausted, "end of list")
	}
	return ""
}

func (model Model) helpText() string {
	var parts []string
	for _, binding := range model.keys.helpBindings() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

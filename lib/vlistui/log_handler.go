// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vlistui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// logRecordMsg delivers a slog record to the model for display in
// the status bar.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg clears the log message from the status bar unless
// a newer one replaced it.
type logRecordFadeMsg struct {
	sequence int
}

// logRecordFadeDelay is how long log messages stay visible in the
// status bar.
const logRecordFadeDelay = 5 * time.Second

// LogHandler is a slog.Handler that routes records through a Relay
// into the status bar. Records below the configured level are
// dropped. The alt-screen owns stderr, so this is how background
// warnings such as failed loads become visible.
//
// All handlers derived via WithAttrs/WithGroup share the same relay.
type LogHandler struct {
	level  slog.Level
	relay  *Relay
	attrs  []slog.Attr
	groups []string
}

// NewLogHandler creates a handler that delivers records at or above
// level through relay.
func NewLogHandler(relay *Relay, level slog.Level) *LogHandler {
	return &LogHandler{level: level, relay: relay}
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record as "message (key=value, ...)" and sends
// it through the relay.
func (handler *LogHandler) Handle(_ context.Context, record slog.Record) error {
	handler.relay.Send(logRecordMsg{
		Summary: handler.summarize(record),
		Level:   record.Level,
	})
	return nil
}

func (handler *LogHandler) summarize(record slog.Record) string {
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}

	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
		return true
	})

	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// WithAttrs returns a new handler with the given attributes appended.
func (handler *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{
		level:  handler.level,
		relay:  handler.relay,
		attrs:  append(slices.Clone(handler.attrs), attrs...),
		groups: slices.Clone(handler.groups),
	}
}

// WithGroup returns a new handler with the given group name appended.
func (handler *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{
		level:  handler.level,
		relay:  handler.relay,
		attrs:  slices.Clone(handler.attrs),
		groups: append(slices.Clone(handler.groups), name),
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package vlistui is a bubbletea model that displays a
// vlist.List of records in a terminal.
//
// The model owns no scrolling logic of its own. Key presses and mouse
// wheel events become List.Scroll, ScrollBy, ScrollToIndex, and
// Resize calls; each returned vlist.Update decides what happens next:
//
//   - a Load in the update is run as a tea.Cmd, and its outcome comes
//     back as a message that is applied with List.Complete on the
//     event loop;
//   - in variable-height mode every materialized record is measured
//     (its line count) and reported, then the window is refreshed so
//     the corrected offsets take effect before the next frame.
//
// Settle notifications and background log records arrive from other
// goroutines. Both go through a [Relay], which forwards messages into
// the running tea.Program once [Relay.SetProgram] has been called.
package vlistui

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vlistui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/vlist/lib/scrollstate"
)

// SettledMsg reports that scrolling came to rest.
type SettledMsg struct {
	State scrollstate.State
}

// Relay forwards messages from other goroutines into a tea.Program.
// Messages sent before SetProgram are dropped. Safe for concurrent
// use.
type Relay struct {
	program atomic.Pointer[tea.Program]
}

// SetProgram sets the program that receives messages.
func (relay *Relay) SetProgram(program *tea.Program) {
	relay.program.Store(program)
}

// Send delivers message to the program, if one is set.
func (relay *Relay) Send(message tea.Msg) {
	if program := relay.program.Load(); program != nil {
		program.Send(message)
	}
}

// OnSettled has the signature of vlist.Options.OnSettled and sends a
// SettledMsg.
func (relay *Relay) OnSettled(state scrollstate.State) {
	relay.Send(SettledMsg{State: state})
}

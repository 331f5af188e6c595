// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vlistui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/vlist/lib/extent"
	"github.com/bureau-foundation/vlist/lib/infiniteload"
	"github.com/bureau-foundation/vlist/lib/navigate"
	"github.com/bureau-foundation/vlist/lib/record"
	"github.com/bureau-foundation/vlist/lib/tui"
	"github.com/bureau-foundation/vlist/lib/vlist"
)

// wheelStep is the number of rows one mouse wheel notch scrolls.
const wheelStep = 3

// chromeHeight is the header line plus the status line.
const chromeHeight = 2

// maxMeasurePasses bounds the measure-then-refresh loop. Each pass
// can shift the window onto records that were never measured.
const maxMeasurePasses = 4

// alignCycle is the order the Align key steps through.
var alignCycle = []navigate.Align{
	navigate.AlignStart, navigate.AlignCenter, navigate.AlignEnd, navigate.AlignAuto,
}

// loadDoneMsg carries a finished load back to the event loop.
type loadDoneMsg struct {
	outcome infiniteload.Outcome
}

// fadeTickMsg re-renders fading rows.
type fadeTickMsg struct{}

// Options configures a Model. The zero value uses DefaultTheme,
// DefaultKeyMap, the real time, and context.Background for loads.
type Options struct {
	// Title is shown in the header.
	Title string

	Theme tui.Theme
	Keys  *KeyMap

	// Context is passed to every load.
	Context context.Context

	// Now reads the time for row fading.
	Now func() time.Time
}

// Model is the bubbletea model for the list viewer.
type Model struct {
	list     *vlist.List[record.Record]
	variable bool
	measured map[int]struct{}

	title string
	theme tui.Theme
	keys  KeyMap
	ctx   context.Context
	now   func() time.Time
	tick  func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

	fade        *tui.FadeTracker
	fadeRunning bool

	width  int
	height int

	// loadErr is the error of the most recent load, cleared by the
	// next successful one.
	loadErr error

	align     navigate.Align
	jumping   bool
	jumpInput string

	logMessage  *logRecordMsg
	logSequence int
}

// NewModel creates a model over list. The list's container extent is
// replaced by the terminal height on the first tea.WindowSizeMsg.
func NewModel(list *vlist.List[record.Record], options Options) Model {
	if options.Theme == (tui.Theme{}) {
		options.Theme = tui.DefaultTheme
	}
	keys := DefaultKeyMap
	if options.Keys != nil {
		keys = *options.Keys
	}
	if options.Context == nil {
		options.Context = context.Background()
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	_, variable := list.Model().(*extent.Variable)
	return Model{
		list:     list,
		variable: variable,
		measured: make(map[int]struct{}),
		title:    options.Title,
		theme:    options.Theme,
		keys:     keys,
		ctx:      options.Context,
		now:      options.Now,
		tick:     tea.Tick,
		fade:     tui.NewFadeTracker(),
		align:    navigate.AlignStart,
	}
}

// Init requests the first page when the source starts empty or short.
func (model Model) Init() tea.Cmd {
	return model.apply(model.list.Refresh())
}

// Update handles a message.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if model.jumping {
			return model.handleJumpKeys(message)
		}
		return model.handleKeys(message)

	case tea.MouseMsg:
		if message.Action != tea.MouseActionPress {
			return model, nil
		}
		switch message.Button {
		case tea.MouseButtonWheelUp:
			return model, model.apply(model.list.ScrollBy(-wheelStep))
		case tea.MouseButtonWheelDown:
			return model, model.apply(model.list.ScrollBy(wheelStep))
		}
		return model, nil

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, model.apply(model.list.Resize(float64(model.bodyHeight())))

	case loadDoneMsg:
		return model.handleLoadDone(message)

	case SettledMsg:
		// Nothing to do but re-render without the scrolling indicator.
		return model, nil

	case fadeTickMsg:
		if model.fade.Active(model.now()) {
			return model, model.scheduleFadeTick()
		}
		model.fadeRunning = false
		return model, nil

	case logRecordMsg:
		model.logSequence++
		model.logMessage = &message
		sequence := model.logSequence
		return model, model.tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{sequence: sequence}
		})

	case logRecordFadeMsg:
		if message.sequence == model.logSequence {
			model.logMessage = nil
		}
		return model, nil
	}
	return model, nil
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := max(1, model.list.Container()-1)
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Up):
		return model, model.apply(model.list.ScrollBy(-1))
	case key.Matches(message, model.keys.Down):
		return model, model.apply(model.list.ScrollBy(1))
	case key.Matches(message, model.keys.PageUp):
		return model, model.apply(model.list.ScrollBy(-page))
	case key.Matches(message, model.keys.PageDown):
		return model, model.apply(model.list.ScrollBy(page))
	case key.Matches(message, model.keys.Home):
		return model, model.apply(model.list.ScrollToTop())
	case key.Matches(message, model.keys.End):
		return model, model.apply(model.list.Scroll(model.list.MaxOffset()))
	case key.Matches(message, model.keys.Jump):
		model.jumping = true
		model.jumpInput = ""
		return model, nil
	case key.Matches(message, model.keys.Align):
		model.align = nextAlign(model.align)
		return model, nil
	case key.Matches(message, model.keys.Retry):
		return model, model.apply(model.list.Refresh())
	}
	return model, nil
}

func (model Model) handleJumpKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		model.jumping = false
		return model, nil
	case tea.KeyEnter:
		model.jumping = false
		index, err := strconv.Atoi(model.jumpInput)
		if err != nil {
			return model, nil
		}
		return model, model.apply(model.list.ScrollToIndex(index, model.align))
	case tea.KeyBackspace:
		if len(model.jumpInput) > 0 {
			model.jumpInput = model.jumpInput[:len(model.jumpInput)-1]
		}
		return model, nil
	case tea.KeyRunes:
		if key.Matches(message, model.keys.Align) {
			model.align = nextAlign(model.align)
			return model, nil
		}
		for _, character := range message.Runes {
			if character >= '0' && character <= '9' && len(model.jumpInput) < 12 {
				model.jumpInput += string(character)
			}
		}
		return model, nil
	}
	return model, nil
}

func (model Model) handleLoadDone(message loadDoneMsg) (tea.Model, tea.Cmd) {
	before := model.list.Len()
	update, err := model.list.Complete(message.outcome)
	if err != nil {
		// Stale. If a Replace abandoned this load, update may carry
		// the first load for the new source.
		return model, model.apply(update)
	}
	if message.outcome.Err != nil {
		model.loadErr = message.outcome.Err
		return model, model.apply(update)
	}
	model.loadErr = nil

	now := model.now()
	source := model.list.Source()
	for index := before; index < model.list.Len(); index++ {
		if item, ok := source.Item(index); ok {
			model.fade.Ignite(item.ID, now)
		}
	}

	cmd := model.apply(update)
	if !model.fadeRunning && model.fade.Active(now) {
		model.fadeRunning = true
		cmd = tea.Batch(cmd, model.scheduleFadeTick())
	}
	return model, cmd
}

// apply turns a list update into commands: the load it started, if
// any, plus whatever loads the post-measurement refresh starts.
func (model Model) apply(update vlist.Update) tea.Cmd {
	cmds := []tea.Cmd{model.loadCmd(update.Load)}
	for range maxMeasurePasses {
		if !model.measure() {
			break
		}
		cmds = append(cmds, model.loadCmd(model.list.Refresh().Load))
	}
	return tea.Batch(cmds...)
}

// measure reports the line count of every materialized record not yet
// measured. Returns whether anything was reported.
func (model Model) measure() bool {
	if !model.variable {
		return false
	}
	type measurement struct {
		index int
		lines int
	}
	pending := vlist.Render(model.list, func(item record.Record, index int, style vlist.Style) measurement {
		if style.Pending {
			return measurement{index: index}
		}
		if _, done := model.measured[index]; done {
			return measurement{index: index}
		}
		return measurement{index: index, lines: item.Lines()}
	})

	reported := false
	for _, entry := range pending {
		if entry.lines == 0 {
			continue
		}
		model.measured[entry.index] = struct{}{}
		if err := model.list.Report(entry.index, float64(entry.lines)); err == nil {
			reported = true
		}
	}
	return reported
}

func (model Model) loadCmd(pending *infiniteload.Pending) tea.Cmd {
	if pending == nil {
		return nil
	}
	ctx := model.ctx
	return func() tea.Msg {
		return loadDoneMsg{outcome: pending.Run(ctx)}
	}
}

func (model Model) scheduleFadeTick() tea.Cmd {
	return model.tick(tui.FadeTickInterval, func(time.Time) tea.Msg {
		return fadeTickMsg{}
	})
}

func (model Model) bodyHeight() int {
	return BodyHeight(model.height)
}

// BodyHeight is the number of list rows a terminal of the given height
// shows below the header and above the status line.
func BodyHeight(terminalHeight int) int {
	return max(0, terminalHeight-chromeHeight)
}

func nextAlign(current navigate.Align) navigate.Align {
	for index, align := range alignCycle {
		if align == current {
			return alignCycle[(index+1)%len(alignCycle)]
		}
	}
	return navigate.AlignStart
}

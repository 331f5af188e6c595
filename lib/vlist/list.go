// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vlist

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/bureau-foundation/vlist/lib/clock"
	"github.com/bureau-foundation/vlist/lib/extent"
	"github.com/bureau-foundation/vlist/lib/infiniteload"
	"github.com/bureau-foundation/vlist/lib/navigate"
	"github.com/bureau-foundation/vlist/lib/scrollstate"
	"github.com/bureau-foundation/vlist/lib/window"
)

// DefaultOverscan is the number of items materialized beyond each
// edge of the viewport.
const DefaultOverscan = 5

// ErrInvalidOptions wraps every construction-time configuration error.
var ErrInvalidOptions = errors.New("invalid list options")

// Options configures a List. Use DefaultOptions as a starting point:
// zero values are taken literally where zero is meaningful (no
// overscan).
type Options struct {
	// ItemHeight is the constant item extent. Zero selects variable
	// heights driven by Estimate, EstimatedItemHeight and measurement.
	ItemHeight float64

	// Estimate optionally estimates the extent of an unmeasured item.
	Estimate func(index int) float64

	// EstimatedItemHeight is the fallback estimate in variable mode.
	EstimatedItemHeight float64

	// ContainerExtent is the viewport extent.
	ContainerExtent float64

	// OverscanCount is the number of extra items on each side.
	OverscanCount int

	// ThresholdFraction is the scroll fraction that triggers a load.
	// Zero selects infiniteload.DefaultThreshold.
	ThresholdFraction float64

	// SettleDelay is the scroll quiet period. Zero selects
	// scrollstate.DefaultSettleDelay.
	SettleDelay time.Duration

	// Loader fetches further items into the source. Nil disables
	// infinite loading.
	Loader infiniteload.Loader

	// Host, when set, receives programmatic scrolls from
	// ScrollToIndex and ScrollToTop instead of the list scrolling
	// itself. The host reports the resulting position through Scroll.
	Host navigate.Scroller

	// Clock drives the settle timer. Defaults to the real clock.
	Clock clock.Clock

	// OnSettled is called when scrolling settles. See
	// scrollstate.Options.OnSettled for the goroutine it runs on.
	OnSettled func(scrollstate.State)

	// Logger receives debug and load records. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns options with the documented defaults for a
// fixed-height list of height 1. ContainerExtent has no default and
// must be set before New.
func DefaultOptions() Options {
	return Options{
		ItemHeight:          1,
		EstimatedItemHeight: 1,
		OverscanCount:       DefaultOverscan,
		ThresholdFraction:   infiniteload.DefaultThreshold,
		SettleDelay:         scrollstate.DefaultSettleDelay,
	}
}

// Update reports the effect of a scroll, resize, or load completion.
type Update struct {
	// Window is the materialized range. Meaningless when Empty.
	Window window.Window

	// Empty is true when nothing is materialized: no items or no
	// container extent.
	Empty bool

	// Changed is true when Window or Empty differs from the previous
	// update, i.e. the host must re-render.
	Changed bool

	// Scroll is the tracker state after the event.
	Scroll scrollstate.State

	// Load is the load to run when the event crossed the load
	// threshold. The host runs it off the event loop and passes the
	// outcome to Complete.
	Load *infiniteload.Pending
}

// List is a windowed view over a Source. Not safe for concurrent use.
type List[T any] struct {
	source    Source[T]
	model     extent.Model
	tracker   *scrollstate.Tracker
	loads     *infiniteload.Controller
	navigator *navigate.Navigator
	host      navigate.Scroller
	logger    *slog.Logger

	container float64
	overscan  int
	offset    float64

	window window.Window
	empty  bool
}

// New builds a List over source. The initial window is computed but
// the load threshold is not evaluated; call Refresh to request the
// first page of an empty source.
func New[T any](source Source[T], options Options) (*List[T], error) {
	if source == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidOptions)
	}
	if !(options.ContainerExtent > 0) || math.IsInf(options.ContainerExtent, 0) {
		return nil, fmt.Errorf("%w: container extent must be positive, got %v", ErrInvalidOptions, options.ContainerExtent)
	}
	if options.OverscanCount < 0 {
		return nil, fmt.Errorf("%w: negative overscan %d", ErrInvalidOptions, options.OverscanCount)
	}

	model, err := extent.New(extent.Options{
		ItemHeight:      options.ItemHeight,
		Estimate:        options.Estimate,
		DefaultEstimate: options.EstimatedItemHeight,
		Length:          source.Len(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	list := &List[T]{
		source:    source,
		model:     model,
		host:      options.Host,
		logger:    logger,
		container: options.ContainerExtent,
		overscan:  options.OverscanCount,
		empty:     true,
	}
	list.tracker = scrollstate.New(scrollstate.Options{
		Clock:       options.Clock,
		SettleDelay: options.SettleDelay,
		OnSettled:   options.OnSettled,
		Logger:      logger,
	})
	if options.Loader != nil {
		list.loads, err = infiniteload.New(infiniteload.Options{
			Loader:    options.Loader,
			Threshold: options.ThresholdFraction,
			Logger:    logger,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
		}
	}
	list.navigator = navigate.New(model, options.ContainerExtent, nil)
	list.window, list.empty = list.compute()
	return list, nil
}

// Scroll records a scroll to offset and returns the new window. The
// offset is clamped to [0, MaxOffset()].
func (l *List[T]) Scroll(offset float64) Update {
	l.sync()
	l.offset = l.clamp(offset)
	state := l.tracker.OnScroll(l.offset)
	update := l.recompute(true)
	update.Scroll = state
	return update
}

// Refresh recomputes the window at the current offset, picking up
// source growth and measurements, and evaluates the load threshold
// again. It does not count as a scroll event.
func (l *List[T]) Refresh() Update {
	l.sync()
	l.offset = l.clamp(l.offset)
	update := l.recompute(true)
	update.Scroll = l.tracker.State()
	return update
}

// Report records the measured extent of the item at index, as
// reported by its renderer. The window is not recomputed; call Refresh
// once a batch of measurements is in.
func (l *List[T]) Report(index int, measured float64) error {
	l.sync()
	if err := l.model.SetMeasured(index, measured); err != nil {
		l.logger.Debug("measurement rejected", "index", index, "extent", measured, "error", err)
		return err
	}
	return nil
}

// Complete applies a load outcome and refreshes. After a success the
// threshold is evaluated again, so a page too short to fill the
// viewport is followed by another load. After a failure it is not: the
// retry waits for the next scroll event. A stale outcome is returned
// as an error and otherwise ignored, except that the return of a load
// abandoned by Replace frees the loader: the threshold is evaluated
// again and the Update may carry the next Load alongside the
// infiniteload.ErrAbandonedOutcome error.
func (l *List[T]) Complete(outcome infiniteload.Outcome) (Update, error) {
	if l.loads == nil {
		return l.current(), infiniteload.ErrStaleOutcome
	}
	if err := l.loads.Complete(outcome); err != nil {
		if errors.Is(err, infiniteload.ErrAbandonedOutcome) {
			return l.Refresh(), err
		}
		return l.current(), err
	}
	l.sync()
	l.offset = l.clamp(l.offset)
	update := l.recompute(outcome.Err == nil)
	update.Scroll = l.tracker.State()
	return update, nil
}

// Resize changes the container extent.
func (l *List[T]) Resize(containerExtent float64) Update {
	if containerExtent < 0 {
		containerExtent = 0
	}
	l.container = containerExtent
	l.navigator.SetContainer(containerExtent)
	return l.Refresh()
}

// ScrollToIndex scrolls so index is shown with the given alignment.
// With a Host the scroll is issued there and the current state is
// returned; the host reports the new position through Scroll.
func (l *List[T]) ScrollToIndex(index int, align navigate.Align) Update {
	l.sync()
	target := l.navigator.TargetFrom(index, align, l.offset)
	if l.host != nil {
		l.host.ScrollTo(target)
		return l.current()
	}
	return l.Scroll(target)
}

// ScrollToTop is ScrollToIndex(0, navigate.AlignStart).
func (l *List[T]) ScrollToTop() Update {
	return l.ScrollToIndex(0, navigate.AlignStart)
}

// ScrollBy scrolls relative to the current offset.
func (l *List[T]) ScrollBy(delta float64) Update {
	return l.Scroll(l.offset + delta)
}

// Replace swaps in a new source. Measurements, scroll position and
// load state are reset. A load in flight for the old source completes
// as abandoned, and no new load starts before it does.
func (l *List[T]) Replace(source Source[T]) Update {
	l.source = source
	l.reset(source.Len())
	update := l.recompute(true)
	update.Changed = true
	update.Scroll = l.tracker.State()
	return update
}

// Close stops the settle timer.
func (l *List[T]) Close() {
	l.tracker.Stop()
}

// Source returns the source the list renders.
func (l *List[T]) Source() Source[T] { return l.source }

// Offset returns the current scroll offset.
func (l *List[T]) Offset() float64 { return l.offset }

// Container returns the viewport extent.
func (l *List[T]) Container() float64 { return l.container }

// Window returns the current window and whether one exists.
func (l *List[T]) Window() (window.Window, bool) { return l.window, !l.empty }

// Len returns the number of items known to the list.
func (l *List[T]) Len() int { return l.model.Len() }

// TotalExtent returns the estimated total extent of all items.
func (l *List[T]) TotalExtent() float64 { return l.model.TotalExtent() }

// MaxOffset returns the largest valid scroll offset.
func (l *List[T]) MaxOffset() float64 {
	return max(0, l.model.TotalExtent()-l.container)
}

// ScrollState returns the tracker state.
func (l *List[T]) ScrollState() scrollstate.State { return l.tracker.State() }

// LoadState returns the load state. Without a loader the list reports
// no more items.
func (l *List[T]) LoadState() infiniteload.State {
	if l.loads == nil {
		return infiniteload.State{}
	}
	return l.loads.State()
}

// LoadStats returns load counters.
func (l *List[T]) LoadStats() infiniteload.Stats {
	if l.loads == nil {
		return infiniteload.Stats{}
	}
	return l.loads.Stats()
}

// Model exposes the height model for read-only consumers such as a
// scrollbar or an external navigator.
func (l *List[T]) Model() extent.Model { return l.model }

// reset discards measurements, scroll position, tracker state and load
// state, leaving a model of length n.
func (l *List[T]) reset(n int) {
	l.model.Reset(n)
	l.tracker.Reset()
	if l.loads != nil {
		l.loads.Reset(true)
	}
	l.offset = 0
}

// sync brings the model length in line with the source. A source that
// shrank was replaced behind the list's back and is handled like
// Replace.
func (l *List[T]) sync() {
	length := l.source.Len()
	known := l.model.Len()
	switch {
	case length > known:
		if err := l.model.Grow(length); err != nil {
			l.logger.Error("growing height model", "from", known, "to", length, "error", err)
		}
	case length < known:
		l.logger.Warn("source shrank, resetting list", "from", known, "to", length)
		l.reset(length)
	}
}

func (l *List[T]) clamp(offset float64) float64 {
	limit := l.MaxOffset()
	if offset > limit {
		offset = limit
	}
	if !(offset > 0) {
		return 0
	}
	return offset
}

func (l *List[T]) compute() (window.Window, bool) {
	w, ok := window.Compute(l.model, l.offset, l.container, l.overscan)
	return w, !ok
}

// recompute updates the stored window and, if evaluate is set, checks
// the load threshold.
func (l *List[T]) recompute(evaluate bool) Update {
	w, empty := l.compute()
	update := Update{
		Window:  w,
		Empty:   empty,
		Changed: w != l.window || empty != l.empty,
	}
	l.window, l.empty = w, empty

	if evaluate && l.loads != nil {
		progress := infiniteload.Progress{
			Offset:    l.offset,
			Container: l.container,
			Total:     l.model.TotalExtent(),
		}
		if pending, ok := l.loads.Evaluate(progress); ok {
			update.Load = pending
		}
	}
	return update
}

// current reports the stored state without evaluating anything.
func (l *List[T]) current() Update {
	return Update{
		Window: l.window,
		Empty:  l.empty,
		Scroll: l.tracker.State(),
	}
}

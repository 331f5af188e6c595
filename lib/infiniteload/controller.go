// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package infiniteload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
)

// DefaultThreshold is the fraction of the total extent the bottom of
// the viewport must reach before the next page is requested.
const DefaultThreshold = 0.8

var (
	// ErrInvalidThreshold is returned by New for a threshold outside
	// (0, 1].
	ErrInvalidThreshold = errors.New("threshold fraction must be in (0, 1]")

	// ErrNoLoader is returned by New when Options.Loader is nil.
	ErrNoLoader = errors.New("no loader configured")

	// ErrStaleOutcome is returned by Complete for an outcome that
	// does not belong to the load currently in flight: a duplicate
	// completion, or one from before a Reset.
	ErrStaleOutcome = errors.New("outcome does not match the in-flight load")

	// ErrAbandonedOutcome is returned by Complete for the outcome of a
	// load that was in flight during a Reset. The outcome is discarded
	// but the loader is free again, so the caller should evaluate the
	// threshold anew. It wraps ErrStaleOutcome.
	ErrAbandonedOutcome = fmt.Errorf("%w: load abandoned by reset", ErrStaleOutcome)
)

// Result is what a Loader reports after appending a page.
type Result struct {
	// Appended is the number of items added to the source.
	Appended int

	// HasMore is false once the source is exhausted.
	HasMore bool
}

// Loader fetches the next page and appends it to the list's source.
// LoadMore is never called again while a previous call is
// outstanding.
type Loader interface {
	LoadMore(ctx context.Context) (Result, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (Result, error)

// LoadMore calls f.
func (f LoaderFunc) LoadMore(ctx context.Context) (Result, error) { return f(ctx) }

// Progress describes how far through the list the viewport is.
type Progress struct {
	Offset    float64
	Container float64
	Total     float64
}

// Fraction returns (Offset + Container) / Total. An empty list (a
// non-positive total) counts as fully scrolled so its first page is
// requested.
func (p Progress) Fraction() float64 {
	if !(p.Total > 0) {
		return 1
	}
	return (p.Offset + p.Container) / p.Total
}

// State is the controller's load state.
type State struct {
	HasMore bool
	Loading bool
}

// Stats counts loads for status displays.
type Stats struct {
	Started   int
	Failed    int
	Completed int
}

// Options configures a Controller.
type Options struct {
	// Loader fetches pages. Required.
	Loader Loader

	// Threshold is the trigger fraction in (0, 1]. Zero selects
	// DefaultThreshold.
	Threshold float64

	// Logger receives load lifecycle records. Nil discards them.
	Logger *slog.Logger
}

// Controller triggers one load per threshold crossing and never more
// than one at a time. Safe for concurrent use.
type Controller struct {
	loader    Loader
	threshold float64
	logger    *slog.Logger

	mu    sync.Mutex
	state State
	stats Stats

	// sequence identifies the in-flight load. Outcomes carry the
	// sequence of the load that produced them.
	sequence uint64

	// abandoned is the sequence of a load that was in flight during a
	// Reset and has not returned yet, or zero. It keeps the loader
	// counted as busy.
	abandoned uint64
}

// New creates a Controller that starts with HasMore true.
func New(options Options) (*Controller, error) {
	if options.Loader == nil {
		return nil, ErrNoLoader
	}
	threshold := options.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if !(threshold > 0 && threshold <= 1) || math.IsNaN(threshold) {
		return nil, fmt.Errorf("threshold %v: %w", options.Threshold, ErrInvalidThreshold)
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		loader:    options.Loader,
		threshold: threshold,
		logger:    logger,
		state:     State{HasMore: true},
	}, nil
}

// Threshold returns the configured trigger fraction.
func (c *Controller) Threshold() float64 { return c.threshold }

// Evaluate checks progress against the threshold. When it is reached,
// the source has more items, and nothing is loading, the controller
// becomes loading and returns the load to run. Otherwise it returns
// false and changes nothing.
func (c *Controller) Evaluate(progress Progress) (*Pending, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.HasMore || c.state.Loading {
		return nil, false
	}
	fraction := progress.Fraction()
	if fraction < c.threshold {
		return nil, false
	}

	c.state.Loading = true
	c.sequence++
	c.stats.Started++
	c.logger.Debug("load more triggered",
		"sequence", c.sequence,
		"fraction", fraction,
		"threshold", c.threshold,
	)
	return &Pending{loader: c.loader, sequence: c.sequence}, true
}

// Complete applies the outcome of the in-flight load. On success
// HasMore takes the loader's value; on failure it is left alone. In
// both cases the controller stops loading. Returns ErrStaleOutcome if
// outcome is not from the in-flight load.
func (c *Controller) Complete(outcome Outcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.abandoned != 0 && outcome.sequence == c.abandoned {
		c.abandoned = 0
		c.state.Loading = false
		c.logger.Debug("abandoned load returned", "sequence", outcome.sequence)
		return fmt.Errorf("completing load %d: %w", outcome.sequence, ErrAbandonedOutcome)
	}
	if !c.state.Loading || c.abandoned != 0 || outcome.sequence != c.sequence {
		return fmt.Errorf("completing load %d (in flight: %d, loading: %t): %w",
			outcome.sequence, c.sequence, c.state.Loading, ErrStaleOutcome)
	}
	c.state.Loading = false

	if outcome.Err != nil {
		c.stats.Failed++
		c.logger.Warn("load more failed",
			"sequence", outcome.sequence,
			"error", outcome.Err,
		)
		return nil
	}

	c.stats.Completed++
	c.state.HasMore = outcome.Result.HasMore
	c.logger.Debug("load more completed",
		"sequence", outcome.sequence,
		"appended", outcome.Result.Appended,
		"has_more", outcome.Result.HasMore,
	)
	return nil
}

// Start evaluates progress and, if a load is due, runs it on a new
// goroutine. When the loader returns, done (if non-nil) is called with
// the outcome before the controller is completed, so the caller can
// apply appended items before another load becomes possible. Returns
// whether a load was started.
func (c *Controller) Start(ctx context.Context, progress Progress, done func(Outcome)) bool {
	pending, ok := c.Evaluate(progress)
	if !ok {
		return false
	}
	go func() {
		outcome := pending.Run(ctx)
		if done != nil {
			done(outcome)
		}
		if err := c.Complete(outcome); err != nil && !errors.Is(err, ErrAbandonedOutcome) {
			c.logger.Error("load completion rejected", "error", err)
		}
	}()
	return true
}

// State returns the current load state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stats returns load counters.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Reset abandons any in-flight load and sets HasMore. Used when the
// list's sequence is replaced. The loader may still be running the
// abandoned call, so the controller stays loading until that outcome
// is passed to Complete, which rejects it with ErrAbandonedOutcome.
func (c *Controller) Reset(hasMore bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Loading && c.abandoned == 0 {
		c.abandoned = c.sequence
	}
	c.sequence++
	c.state = State{HasMore: hasMore, Loading: c.abandoned != 0}
}

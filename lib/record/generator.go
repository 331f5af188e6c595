// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bureau-foundation/vlist/lib/clock"
	"github.com/bureau-foundation/vlist/lib/infiniteload"
	"github.com/bureau-foundation/vlist/lib/vlist"
)

// ErrSimulatedFailure is returned by Generator.LoadMore when a page
// load is chosen to fail.
var ErrSimulatedFailure = errors.New("simulated load failure")

// GeneratorOptions configures a Generator.
type GeneratorOptions struct {
	// Count is the total number of records the generator produces.
	Count int

	// PageSize is the number of records per load.
	PageSize int

	// Latency delays every load, measured on Clock.
	Latency time.Duration

	// FailureRate is the probability in [0, 1] that a load fails
	// without producing records.
	FailureRate float64

	// Seed fixes the failure sequence.
	Seed uint64

	// Clock measures Latency. Defaults to the real clock.
	Clock clock.Clock
}

// Generator is an infinite-load collaborator producing Generate(1),
// Generate(2), ... page by page into an in-memory source.
type Generator struct {
	items *vlist.SliceSource[Record]
	clock clock.Clock

	count       int
	pageSize    int
	latency     time.Duration
	failureRate float64

	mu     sync.Mutex
	random *rand.Rand
	next   int64
}

// NewGenerator creates a generator that has produced nothing yet.
func NewGenerator(options GeneratorOptions) (*Generator, error) {
	if options.Count < 0 {
		return nil, fmt.Errorf("generator count must not be negative; got %d", options.Count)
	}
	if options.PageSize <= 0 {
		return nil, fmt.Errorf("generator page size must be positive; got %d", options.PageSize)
	}
	if !(options.FailureRate >= 0 && options.FailureRate <= 1) {
		return nil, fmt.Errorf("generator failure rate must be in [0, 1]; got %v", options.FailureRate)
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	return &Generator{
		items:       vlist.NewSliceSource[Record](),
		clock:       options.Clock,
		count:       options.Count,
		pageSize:    options.PageSize,
		latency:     options.Latency,
		failureRate: options.FailureRate,
		random:      rand.New(rand.NewPCG(options.Seed, 0x67656e)),
		next:        1,
	}, nil
}

// Items returns the source the generator appends to.
func (g *Generator) Items() *vlist.SliceSource[Record] { return g.items }

// LoadMore waits out the configured latency, then either fails or
// appends the next page.
func (g *Generator) LoadMore(ctx context.Context) (infiniteload.Result, error) {
	if err := g.wait(ctx); err != nil {
		return infiniteload.Result{HasMore: true}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failureRate > 0 && g.random.Float64() < g.failureRate {
		return infiniteload.Result{HasMore: true}, ErrSimulatedFailure
	}

	remaining := int64(g.count) - (g.next - 1)
	size := min(int64(g.pageSize), max(remaining, 0))
	page := make([]Record, size)
	for i := range page {
		page[i] = Generate(g.next + int64(i))
	}
	g.next += size
	g.items.Append(page...)

	return infiniteload.Result{
		Appended: len(page),
		HasMore:  g.next-1 < int64(g.count),
	}, nil
}

func (g *Generator) wait(ctx context.Context) error {
	if g.latency <= 0 {
		return ctx.Err()
	}
	elapsed := make(chan struct{})
	timer := g.clock.AfterFunc(g.latency, func() { close(elapsed) })
	select {
	case <-elapsed:
		return nil
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	}
}

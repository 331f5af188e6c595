// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package infiniteload

import (
	"context"
	"fmt"
	"sync"
)

// Pending is a load the controller has committed to. Run invokes the
// loader exactly once; further calls return the first outcome.
type Pending struct {
	loader   Loader
	sequence uint64

	once    sync.Once
	outcome Outcome
}

// Run calls the loader and returns its outcome. A panicking loader
// yields a failed outcome.
func (p *Pending) Run(ctx context.Context) Outcome {
	p.once.Do(func() {
		p.outcome = Outcome{sequence: p.sequence}
		defer func() {
			if recovered := recover(); recovered != nil {
				p.outcome.Err = fmt.Errorf("loader panicked: %v", recovered)
			}
		}()
		p.outcome.Result, p.outcome.Err = p.loader.LoadMore(ctx)
	})
	return p.outcome
}

// Outcome is the settled result of a Pending load.
type Outcome struct {
	sequence uint64

	Result Result
	Err    error
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bureau-foundation/vlist/internal/cli"
	"github.com/bureau-foundation/vlist/lib/config"
	"github.com/bureau-foundation/vlist/lib/infiniteload"
	"github.com/bureau-foundation/vlist/lib/pagefile"
	"github.com/bureau-foundation/vlist/lib/record"
	"github.com/bureau-foundation/vlist/lib/sqlsource"
	"github.com/bureau-foundation/vlist/lib/vlist"
)

// recordSource pairs the items a list renders with the loader that
// appends to them.
type recordSource struct {
	title  string
	items  vlist.Source[record.Record]
	loader infiniteload.Loader
	close  func() error
}

func openSource(cfg *config.Config, logger *slog.Logger) (*recordSource, error) {
	switch cfg.Source.Kind {
	case config.SourceGenerated:
		generator, err := record.NewGenerator(record.GeneratorOptions{
			Count:       cfg.Source.Count,
			PageSize:    cfg.PageSize,
			Latency:     time.Duration(cfg.Source.Latency),
			FailureRate: cfg.Source.FailureRate,
			Seed:        uint64(time.Now().UnixNano()),
		})
		if err != nil {
			return nil, cli.Validation("%w", err)
		}
		return &recordSource{
			title:  fmt.Sprintf("generated (%d records)", cfg.Source.Count),
			items:  generator.Items(),
			loader: generator,
			close:  func() error { return nil },
		}, nil

	case config.SourcePageFile:
		if err := requireFile(cfg.Source.Path); err != nil {
			return nil, err
		}
		reader, err := pagefile.Open(cfg.Source.Path, pagefile.Options{
			PageSize: cfg.PageSize,
			Logger:   logger.With("component", "pagefile"),
		})
		if err != nil {
			return nil, cli.Validation("opening page file: %w", err)
		}
		return &recordSource{
			title:  filepath.Base(cfg.Source.Path),
			items:  reader.Source(),
			loader: reader,
			close:  reader.Close,
		}, nil

	case config.SourceSQLite:
		if err := requireFile(cfg.Source.Path); err != nil {
			return nil, err
		}
		source, err := sqlsource.Open(sqlsource.Options{
			Path:     cfg.Source.Path,
			PageSize: cfg.PageSize,
			ReadOnly: true,
			Logger:   logger.With("component", "sqlsource"),
		})
		if err != nil {
			return nil, cli.Transient("opening database: %w", err)
		}
		return &recordSource{
			title:  filepath.Base(cfg.Source.Path),
			items:  source.Items(),
			loader: source,
			close:  source.Close,
		}, nil
	}
	return nil, cli.Validation("unknown source kind %q", cfg.Source.Kind)
}

func requireFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cli.NotFound("%s does not exist", path).
				WithHint(fmt.Sprintf("Create it with: vlist-seed --out %s", path))
		}
		return cli.Internal("%w", err)
	}
	return nil
}

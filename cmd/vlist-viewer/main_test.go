// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/vlist/internal/cli"
	"github.com/bureau-foundation/vlist/lib/config"
	"github.com/bureau-foundation/vlist/lib/pagefile"
	"github.com/bureau-foundation/vlist/lib/record"
	"github.com/bureau-foundation/vlist/lib/sqlsource"
	"github.com/bureau-foundation/vlist/lib/vlist"
	"github.com/bureau-foundation/vlist/lib/vlistui"
)

var discard = slog.New(slog.DiscardHandler)

func writePageFile(t *testing.T, path string, count int) {
	t.Helper()
	writer, err := pagefile.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for id := int64(1); id <= int64(count); id++ {
		if err := writer.Write(record.Generate(id)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func writeDatabase(t *testing.T, path string, count int) {
	t.Helper()
	source, err := sqlsource.Open(sqlsource.Options{Path: path})
	if err != nil {
		t.Fatalf("sqlsource.Open: %v", err)
	}
	records := make([]record.Record, count)
	for index := range records {
		records[index] = record.Generate(int64(index + 1))
	}
	if err := source.Insert(context.Background(), records); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := source.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenSource(t *testing.T) {
	directory := t.TempDir()
	pagePath := filepath.Join(directory, "records.cbor.zst")
	writePageFile(t, pagePath, 30)
	databasePath := filepath.Join(directory, "records.db")
	writeDatabase(t, databasePath, 30)

	tests := []struct {
		name   string
		source config.SourceConfig
	}{
		{"generated", config.SourceConfig{Kind: config.SourceGenerated, Count: 30}},
		{"pagefile", config.SourceConfig{Kind: config.SourcePageFile, Path: pagePath}},
		{"sqlite", config.SourceConfig{Kind: config.SourceSQLite, Path: databasePath}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.PageSize = 20
			cfg.Source = test.source

			source, err := openSource(cfg, discard)
			if err != nil {
				t.Fatalf("openSource: %v", err)
			}
			defer source.close()

			first, err := source.loader.LoadMore(context.Background())
			if err != nil {
				t.Fatalf("first LoadMore: %v", err)
			}
			if first.Appended != 20 || !first.HasMore {
				t.Errorf("first page = %+v, want 20 with more", first)
			}
			second, err := source.loader.LoadMore(context.Background())
			if err != nil {
				t.Fatalf("second LoadMore: %v", err)
			}
			if second.Appended != 10 || second.HasMore {
				t.Errorf("second page = %+v, want 10 and done", second)
			}

			if source.items.Len() != 30 {
				t.Fatalf("Len = %d, want 30", source.items.Len())
			}
			last, _ := source.items.Item(29)
			if last != record.Generate(30) {
				t.Errorf("last record = %+v, want Generate(30)", last)
			}
		})
	}
}

func TestOpenSourceMissingFile(t *testing.T) {
	for _, kind := range []string{config.SourcePageFile, config.SourceSQLite} {
		t.Run(kind, func(t *testing.T) {
			cfg := config.Default()
			cfg.Source = config.SourceConfig{Kind: kind, Path: filepath.Join(t.TempDir(), "missing.cbor")}

			_, err := openSource(cfg, discard)
			var toolErr *cli.ToolError
			if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryNotFound {
				t.Fatalf("err = %v, want a not-found ToolError", err)
			}
			if toolErr.Hint == "" {
				t.Error("not-found error has no hint")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig without a path: %v", err)
	}
	if cfg.Source.Kind != config.SourceGenerated {
		t.Errorf("default source = %q", cfg.Source.Kind)
	}

	_, err = loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryNotFound {
		t.Errorf("missing file: err = %v, want not-found", err)
	}

	path := filepath.Join(t.TempDir(), "vlist.yaml")
	if err := os.WriteFile(path, []byte("page_size: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvironmentVariable, path)
	cfg, err = loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig from environment: %v", err)
	}
	if cfg.PageSize != 7 {
		t.Errorf("PageSize = %d, want 7 from %s", cfg.PageSize, path)
	}
}

func TestInitialContainerFallsBackOffTerminal(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "not-a-terminal"))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	if got := initialContainer(int(file.Fd()), 24); got != 24 {
		t.Errorf("initialContainer on a regular file = %v, want the fallback 24", got)
	}

	cfg := config.Default()
	options := cfg.ListOptions()
	options.ContainerExtent = initialContainer(int(file.Fd()), cfg.ContainerExtent)
	if _, err := vlist.New[record.Record](vlist.NewSliceSource[record.Record](), options); err != nil {
		t.Errorf("vlist.New with the default config: %v", err)
	}
}

func TestFlagsOverrideOnlyWhenSet(t *testing.T) {
	var options flags
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.IntVar(&options.pageSize, "page-size", 0, "")
	flagSet.DurationVar(&options.latency, "latency", 0, "")
	flagSet.IntVar(&options.count, "count", 0, "")
	flagSet.StringVar(&options.sourceKind, "source", "", "")
	if err := flagSet.Parse([]string{"--page-size", "12", "--latency", "250ms"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg := config.Default()
	options.apply(flagSet, cfg)

	if cfg.PageSize != 12 {
		t.Errorf("PageSize = %d, want 12", cfg.PageSize)
	}
	if time.Duration(cfg.Source.Latency) != 250*time.Millisecond {
		t.Errorf("Latency = %v, want 250ms", time.Duration(cfg.Source.Latency))
	}
	if cfg.Source.Count != config.Default().Source.Count {
		t.Errorf("unset --count overrode Count: %d", cfg.Source.Count)
	}
	if cfg.Source.Kind != config.SourceGenerated {
		t.Errorf("unset --source overrode Kind: %q", cfg.Source.Kind)
	}
}

func TestNewLoggerWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.log")
	logger, closeLog, err := newLogger(&vlistui.Relay{}, config.LogConfig{Level: "debug", Output: path})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Debug("page decoded", "records", 20)
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Error("debug record not written to the log file")
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// vlist-viewer is a terminal UI that scrolls through a list of records
// too long to render at once. Only the rows near the viewport are
// materialized, and further pages are fetched as the viewport nears
// the end of what has been loaded.
//
// Records come from one of three sources:
//
// Generated (default): synthetic records produced on demand, with a
// configurable per-page latency and failure rate for exercising the
// loading and retry paths.
//
// Page file: a CBOR record stream written by vlist-seed, optionally
// lz4- or zstd-compressed, decoded one page at a time.
//
// SQLite: a records table written by vlist-seed, read with keyset
// pagination.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/vlist/internal/cli"
	"github.com/bureau-foundation/vlist/lib/config"
	"github.com/bureau-foundation/vlist/lib/record"
	"github.com/bureau-foundation/vlist/lib/version"
	"github.com/bureau-foundation/vlist/lib/vlist"
	"github.com/bureau-foundation/vlist/lib/vlistui"
)

func main() {
	if err := run(); err != nil {
		os.Exit(cli.Exit(err))
	}
}

// flags holds command-line overrides. Each is applied only when the
// flag was given, so unset flags leave the config file's value alone.
type flags struct {
	configPath  string
	sourceKind  string
	sourcePath  string
	count       int
	pageSize    int
	latency     time.Duration
	failureRate float64
	itemHeight  float64
	logOutput   string
	logLevel    string
}

func run() error {
	var options flags

	flagSet := pflag.NewFlagSet("vlist-viewer", pflag.ContinueOnError)
	flagSet.StringVar(&options.configPath, "config", "", "path to a YAML or JSONC config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&options.sourceKind, "source", "", "record source: generated, pagefile, or sqlite")
	flagSet.StringVar(&options.sourcePath, "path", "", "page file or SQLite database to read")
	flagSet.IntVar(&options.count, "count", 0, "number of generated records")
	flagSet.IntVar(&options.pageSize, "page-size", 0, "records fetched per load")
	flagSet.DurationVar(&options.latency, "latency", 0, "simulated latency per generated page")
	flagSet.Float64Var(&options.failureRate, "failure-rate", 0, "probability that a generated page load fails")
	flagSet.Float64Var(&options.itemHeight, "item-height", 0, "fixed row height in lines; 0 measures each record")
	flagSet.StringVar(&options.logOutput, "log-output", "", "write JSON log records to this file (in addition to the status bar)")
	flagSet.StringVar(&options.logLevel, "log-level", "", "log file level: debug, info, warn, or error")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("vlist-viewer")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return cli.Validation("%w", err).WithHint("Run vlist-viewer --help for usage.")
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(options.configPath)
	if err != nil {
		return err
	}
	options.apply(flagSet, cfg)
	if err := cfg.Validate(); err != nil {
		return cli.Validation("invalid configuration:\n%w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := &vlistui.Relay{}
	logger, closeLog, err := newLogger(relay, cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	source, err := openSource(cfg, logger)
	if err != nil {
		return err
	}
	defer source.close()

	listOptions := cfg.ListOptions()
	listOptions.ContainerExtent = initialContainer(int(os.Stdout.Fd()), cfg.ContainerExtent)
	listOptions.Loader = source.loader
	listOptions.OnSettled = relay.OnSettled
	listOptions.Logger = logger.With("component", "list")

	list, err := vlist.New[record.Record](source.items, listOptions)
	if err != nil {
		return cli.Validation("%w", err)
	}
	defer list.Close()

	model := vlistui.NewModel(list, vlistui.Options{
		Title:   source.title,
		Context: ctx,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	relay.SetProgram(program)

	logger.Info("viewer started",
		"source", cfg.Source.Kind,
		"item_height", cfg.ItemHeight,
		"page_size", cfg.PageSize,
	)
	_, err = program.Run()
	return err
}

// initialContainer returns the list body height of the terminal on fd,
// or fallback when fd is not a terminal or too small to show a row.
// The model resizes the list on every tea.WindowSizeMsg after this.
func initialContainer(fd int, fallback float64) float64 {
	if !term.IsTerminal(fd) {
		return fallback
	}
	_, height, err := term.GetSize(fd)
	if err != nil {
		return fallback
	}
	if body := vlistui.BodyHeight(height); body > 0 {
		return float64(body)
	}
	return fallback
}

// loadConfig reads the explicit path, else $VLIST_CONFIG, else uses
// the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv(config.EnvironmentVariable)
	}
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cli.NotFound("config file %s does not exist", path)
		}
		return nil, cli.Validation("loading config: %w", err)
	}
	return cfg, nil
}

func (options flags) apply(flagSet *pflag.FlagSet, cfg *config.Config) {
	if flagSet.Changed("source") {
		cfg.Source.Kind = options.sourceKind
	}
	if flagSet.Changed("path") {
		cfg.Source.Path = options.sourcePath
	}
	if flagSet.Changed("count") {
		cfg.Source.Count = options.count
	}
	if flagSet.Changed("page-size") {
		cfg.PageSize = options.pageSize
	}
	if flagSet.Changed("latency") {
		cfg.Source.Latency = config.Duration(options.latency)
	}
	if flagSet.Changed("failure-rate") {
		cfg.Source.FailureRate = options.failureRate
	}
	if flagSet.Changed("item-height") {
		cfg.ItemHeight = options.itemHeight
	}
	if flagSet.Changed("log-output") {
		cfg.Log.Output = options.logOutput
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = options.logLevel
	}
}

// newLogger routes warnings to the status bar and, with an output
// file configured, every record at the configured level to that file.
// Stderr belongs to the alt-screen, so nothing is written there.
func newLogger(relay *vlistui.Relay, logConfig config.LogConfig) (*slog.Logger, func() error, error) {
	statusHandler := vlistui.NewLogHandler(relay, slog.LevelWarn)
	if logConfig.Output == "" {
		return slog.New(statusHandler), func() error { return nil }, nil
	}

	level, err := cli.ParseLevel(logConfig.Level)
	if err != nil {
		return nil, nil, cli.Validation("%w", err)
	}
	fileHandler, closeFile, err := cli.OpenFileLogHandler(logConfig.Output, level)
	if err != nil {
		return nil, nil, cli.Validation("cannot open log file %s: %w", logConfig.Output, err)
	}
	return slog.New(cli.FanoutHandler{statusHandler, fileHandler}), closeFile, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `vlist viewer: scroll through large record lists in the terminal.

Rows are rendered only near the viewport. When the viewport passes
the configured fraction of the loaded records, the next page is
fetched in the background; the status line shows loading, failures,
and the end of the list.

Usage:
  vlist-viewer [flags]

Examples:
  # Browse 10000 generated records
  vlist-viewer

  # Slow, flaky pages, to watch loading and retry
  vlist-viewer --latency 800ms --failure-rate 0.3

  # Variable-height rows from a compressed page file
  vlist-viewer --source pagefile --path records.cbor.zst --item-height 0

  # Records from SQLite, with a debug log
  vlist-viewer --source sqlite --path records.db --log-output viewer.log --log-level debug

Keys:
  j/k, arrows    scroll one line       C-d/C-u, pgdn/pgup  scroll one page
  g/G            top / bottom          :                   jump to index
  a              cycle jump alignment  r                   retry a failed load
  q              quit

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

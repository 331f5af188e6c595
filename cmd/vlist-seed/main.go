// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// vlist-seed writes synthetic records for vlist-viewer to read, and
// dumps existing record files for inspection.
//
// The output format follows the file extension: .cbor, .cbor.lz4 and
// .cbor.zst produce a page file (a CBOR sequence, optionally
// compressed); .db, .sqlite and .sqlite3 produce a SQLite database
// with a records table.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/vlist/internal/cli"
	"github.com/bureau-foundation/vlist/lib/codec"
	"github.com/bureau-foundation/vlist/lib/pagefile"
	"github.com/bureau-foundation/vlist/lib/record"
	"github.com/bureau-foundation/vlist/lib/sqlsource"
	"github.com/bureau-foundation/vlist/lib/version"
)

// insertBatch is the number of rows per SQLite transaction.
const insertBatch = 1000

func main() {
	if err := run(); err != nil {
		os.Exit(cli.Exit(err))
	}
}

func run() error {
	var (
		outPath  string
		dumpPath string
		count    int
		firstID  int64
		limit    int
		asJSON   bool
		logLevel string
	)

	flagSet := pflag.NewFlagSet("vlist-seed", pflag.ContinueOnError)
	flagSet.StringVar(&outPath, "out", "", "file to write: .cbor, .cbor.lz4, .cbor.zst, .db, .sqlite, or .sqlite3")
	flagSet.IntVar(&count, "count", 10000, "number of records to write")
	flagSet.Int64Var(&firstID, "first-id", 1, "id of the first record")
	flagSet.StringVar(&dumpPath, "dump", "", "print the first records of an existing file instead of writing")
	flagSet.IntVar(&limit, "limit", 5, "records printed by --dump")
	flagSet.BoolVar(&asJSON, "json", false, "print --dump output as JSON instead of CBOR diagnostic notation")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, or error")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("vlist-seed")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return cli.Validation("%w", err).WithHint("Run vlist-seed --help for usage.")
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}

	level, err := cli.ParseLevel(logLevel)
	if err != nil {
		return cli.Validation("%w", err)
	}
	logger := cli.NewCommandLogger(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case dumpPath != "" && outPath != "":
		return cli.Validation("--out and --dump are mutually exclusive")
	case dumpPath != "":
		if limit <= 0 {
			return cli.Validation("--limit must be positive; got %d", limit)
		}
		return dump(ctx, os.Stdout, dumpPath, limit, asJSON)
	case outPath == "":
		return cli.Validation("missing required flag --out").
			WithHint("Pass --out records.cbor.zst for a page file or --out records.db for SQLite.")
	}

	if count < 0 {
		return cli.Validation("--count must not be negative; got %d", count)
	}
	if firstID < 1 {
		return cli.Validation("--first-id must be at least 1; got %d", firstID)
	}

	started := time.Now()
	if err := seed(ctx, logger, outPath, firstID, count); err != nil {
		return err
	}
	attrs := []any{"path", outPath, "records", count, "duration", time.Since(started).Round(time.Millisecond)}
	if info, err := os.Stat(outPath); err == nil {
		attrs = append(attrs, "bytes", info.Size())
	}
	logger.Info("seeded", attrs...)
	return nil
}

// isDatabase reports whether path names a SQLite database by its
// extension.
func isDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// seed writes count records with ids firstID, firstID+1, ... to path.
func seed(ctx context.Context, logger *slog.Logger, path string, firstID int64, count int) error {
	if isDatabase(path) {
		return seedDatabase(ctx, logger, path, firstID, count)
	}
	return seedPageFile(ctx, path, firstID, count)
}

func seedPageFile(ctx context.Context, path string, firstID int64, count int) (err error) {
	writer, err := pagefile.Create(path)
	if err != nil {
		return cli.Validation("%w", err).
			WithHint("Page files end in .cbor, .cbor.lz4, or .cbor.zst; databases in .db, .sqlite, or .sqlite3.")
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil && err == nil {
			err = cli.Internal("finishing %s: %w", path, closeErr)
		}
	}()

	for offset := range int64(count) {
		if offset%insertBatch == 0 {
			if err := ctx.Err(); err != nil {
				return cli.Transient("seeding interrupted after %d records: %w", offset, err)
			}
		}
		if err := writer.Write(record.Generate(firstID + offset)); err != nil {
			return cli.Internal("writing %s: %w", path, err)
		}
	}
	return nil
}

func seedDatabase(ctx context.Context, logger *slog.Logger, path string, firstID int64, count int) (err error) {
	source, err := sqlsource.Open(sqlsource.Options{
		Path:   path,
		Logger: logger.With("component", "sqlsource"),
	})
	if err != nil {
		return cli.Transient("opening %s: %w", path, err)
	}
	defer func() {
		if closeErr := source.Close(); closeErr != nil && err == nil {
			err = cli.Internal("closing %s: %w", path, closeErr)
		}
	}()

	batch := make([]record.Record, 0, insertBatch)
	for offset := range int64(count) {
		batch = append(batch, record.Generate(firstID+offset))
		if len(batch) == insertBatch || offset == int64(count)-1 {
			if err := source.Insert(ctx, batch); err != nil {
				return cli.Transient("inserting into %s: %w", path, err)
			}
			logger.Debug("batch inserted", "through_id", firstID+offset)
			batch = batch[:0]
		}
	}
	return nil
}

// dump prints the first limit records of path, one per line.
func dump(ctx context.Context, w io.Writer, path string, limit int, asJSON bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cli.NotFound("%s does not exist", path)
		}
		return cli.Internal("%w", err)
	}

	if isDatabase(path) {
		return dumpDatabase(ctx, w, path, limit)
	}
	if asJSON {
		return dumpPageFileJSON(w, path, limit)
	}
	return dumpPageFileDiagnostic(w, path, limit)
}

func dumpDatabase(ctx context.Context, w io.Writer, path string, limit int) error {
	source, err := sqlsource.Open(sqlsource.Options{Path: path, PageSize: limit, ReadOnly: true})
	if err != nil {
		return cli.Transient("opening %s: %w", path, err)
	}
	defer source.Close()

	if _, err := source.LoadMore(ctx); err != nil {
		return cli.Internal("reading %s: %w", path, err)
	}
	items := source.Items()
	records := make([]record.Record, 0, items.Len())
	for index := range items.Len() {
		item, _ := items.Item(index)
		records = append(records, item)
	}
	return cli.WriteJSON(w, records)
}

func dumpPageFileJSON(w io.Writer, path string, limit int) error {
	reader, err := pagefile.Open(path, pagefile.Options{})
	if err != nil {
		return cli.Validation("%w", err)
	}
	defer reader.Close()

	records, err := reader.Next(limit)
	if err != nil && !errors.Is(err, io.EOF) {
		return cli.Internal("reading %s: %w", path, err)
	}
	if records == nil {
		records = []record.Record{}
	}
	return cli.WriteJSON(w, records)
}

func dumpPageFileDiagnostic(w io.Writer, path string, limit int) error {
	stream, err := pagefile.OpenStream(path)
	if err != nil {
		return cli.Validation("%w", err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return cli.Internal("reading %s: %w", path, err)
	}
	for printed := 0; printed < limit && len(data) > 0; printed++ {
		notation, rest, err := codec.DiagnoseFirst(data)
		if err != nil {
			return cli.Internal("record %d of %s: %w", printed, path, err)
		}
		fmt.Fprintln(w, notation)
		data = rest
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `vlist seed: write synthetic records for vlist-viewer.

Records are deterministic: record N always has the same title and a
body of zero to four lines, so files written with the same --first-id
and --count are identical.

Usage:
  vlist-seed --out FILE [--count N] [--first-id ID]
  vlist-seed --dump FILE [--limit N] [--json]

Examples:
  # 100000 records in a zstd-compressed page file
  vlist-seed --out records.cbor.zst --count 100000

  # The same records in SQLite, then view them
  vlist-seed --out records.db --count 100000
  vlist-viewer --source sqlite --path records.db

  # Show the first three records of a page file
  vlist-seed --dump records.cbor.zst --limit 3

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

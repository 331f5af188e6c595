// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/vlist/internal/cli"
	"github.com/bureau-foundation/vlist/lib/record"
)

var discard = slog.New(slog.DiscardHandler)

func TestIsDatabase(t *testing.T) {
	tests := map[string]bool{
		"records.db":        true,
		"records.SQLITE":    true,
		"dir/x.sqlite3":     true,
		"records.cbor":      false,
		"records.cbor.zst":  false,
		"records.db.backup": false,
	}
	for path, want := range tests {
		if got := isDatabase(path); got != want {
			t.Errorf("isDatabase(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestSeedAndDumpJSON(t *testing.T) {
	for _, name := range []string{"records.cbor", "records.cbor.lz4", "records.cbor.zst", "records.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := seed(context.Background(), discard, path, 100, 2500); err != nil {
				t.Fatalf("seed: %v", err)
			}

			var output bytes.Buffer
			if err := dump(context.Background(), &output, path, 3, true); err != nil {
				t.Fatalf("dump: %v", err)
			}
			var records []record.Record
			if err := json.Unmarshal(output.Bytes(), &records); err != nil {
				t.Fatalf("dump output is not JSON: %v\n%s", err, output.String())
			}
			want := []record.Record{record.Generate(100), record.Generate(101), record.Generate(102)}
			if len(records) != len(want) {
				t.Fatalf("dumped %d records, want %d", len(records), len(want))
			}
			for index := range want {
				if records[index] != want[index] {
					t.Errorf("record %d = %+v, want %+v", index, records[index], want[index])
				}
			}
		})
	}
}

func TestDumpDiagnostic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.cbor.zst")
	if err := seed(context.Background(), discard, path, 1, 10); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var output bytes.Buffer
	if err := dump(context.Background(), &output, path, 2, false); err != nil {
		t.Fatalf("dump: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("dump printed %d lines, want 2:\n%s", len(lines), output.String())
	}
	if !strings.Contains(lines[0], `"Record 1"`) || !strings.Contains(lines[1], `"Record 2"`) {
		t.Errorf("diagnostic output does not show the titles:\n%s", output.String())
	}
}

func TestDumpMissingFile(t *testing.T) {
	err := dump(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "absent.db"), 1, true)
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryNotFound {
		t.Errorf("err = %v, want not-found", err)
	}
}

func TestSeedInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := seed(ctx, discard, filepath.Join(t.TempDir(), "records.cbor"), 1, 10)
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryTransient {
		t.Errorf("err = %v, want transient", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v does not wrap context.Canceled", err)
	}
}

func TestSeedRejectsUnknownExtension(t *testing.T) {
	err := seed(context.Background(), discard, filepath.Join(t.TempDir(), "records.txt"), 1, 1)
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryValidation {
		t.Errorf("err = %v, want validation", err)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pagefile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/vlist/lib/codec"
	"github.com/bureau-foundation/vlist/lib/record"
)

func writeRecords(t *testing.T, path string, count int) {
	t.Helper()
	writer, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for id := int64(1); id <= int64(count); id++ {
		if err := writer.Write(record.Generate(id)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if writer.Count() != count {
		t.Errorf("Count = %d, want %d", writer.Count(), count)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRoundTripEachCompression(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "records"+compression.Extension())
			writeRecords(t, path, 120)

			reader, err := Open(path, Options{PageSize: 50})
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer reader.Close()

			wantPages := []struct {
				appended int
				hasMore  bool
			}{
				{50, true},
				{50, true},
				{20, false},
			}
			for i, want := range wantPages {
				result, err := reader.LoadMore(context.Background())
				if err != nil {
					t.Fatalf("LoadMore page %d: %v", i, err)
				}
				if result.Appended != want.appended || result.HasMore != want.hasMore {
					t.Errorf("page %d = %+v, want appended %d hasMore %t",
						i, result, want.appended, want.hasMore)
				}
			}

			source := reader.Source()
			if source.Len() != 120 {
				t.Fatalf("source length = %d, want 120", source.Len())
			}
			for index := range 120 {
				got, _ := source.Item(index)
				if want := record.Generate(int64(index + 1)); got != want {
					t.Fatalf("record %d = %+v, want %+v", index, got, want)
				}
			}

			result, err := reader.LoadMore(context.Background())
			if err != nil || result.Appended != 0 || result.HasMore {
				t.Errorf("LoadMore after end = %+v, %v", result, err)
			}
		})
	}
}

func TestCompressionShrinksText(t *testing.T) {
	var plain, lz, zs bytes.Buffer
	for _, target := range []struct {
		buffer      *bytes.Buffer
		compression Compression
	}{
		{&plain, CompressionNone},
		{&lz, CompressionLZ4},
		{&zs, CompressionZstd},
	} {
		writer, err := NewWriter(target.buffer, target.compression)
		if err != nil {
			t.Fatalf("NewWriter(%s): %v", target.compression, err)
		}
		for id := int64(1); id <= 500; id++ {
			if err := writer.Write(record.Generate(id)); err != nil {
				t.Fatalf("Write: %v", err)
			}
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}
	if lz.Len() >= plain.Len() {
		t.Errorf("lz4 output %d bytes, not smaller than plain %d", lz.Len(), plain.Len())
	}
	if zs.Len() >= plain.Len() {
		t.Errorf("zstd output %d bytes, not smaller than plain %d", zs.Len(), plain.Len())
	}
}

func TestNextReportsEOF(t *testing.T) {
	var buffer bytes.Buffer
	writer, err := NewWriter(&buffer, CompressionNone)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for id := int64(1); id <= 3; id++ {
		writer.Write(record.Generate(id))
	}
	writer.Close()

	reader, err := NewReader(&buffer, CompressionNone, Options{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	records, err := reader.Next(10)
	if !errors.Is(err, io.EOF) {
		t.Errorf("Next error = %v, want io.EOF", err)
	}
	if len(records) != 3 {
		t.Errorf("Next returned %d records, want 3", len(records))
	}
	if _, err := reader.Next(10); !errors.Is(err, io.EOF) {
		t.Errorf("second Next error = %v, want io.EOF", err)
	}
}

func TestLoadMoreCorruptTail(t *testing.T) {
	var buffer bytes.Buffer
	writer, _ := NewWriter(&buffer, CompressionNone)
	for id := int64(1); id <= 4; id++ {
		writer.Write(record.Generate(id))
	}
	writer.Close()
	// A map header promising fields that never arrive.
	buffer.Write([]byte{0xa3})

	reader, err := NewReader(&buffer, CompressionNone, Options{PageSize: 10})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	result, err := reader.LoadMore(context.Background())
	if err == nil {
		t.Fatal("LoadMore succeeded on a truncated record")
	}
	if result.Appended != 4 || !result.HasMore {
		t.Errorf("result = %+v, want the 4 intact records appended and HasMore", result)
	}
	if reader.Source().Len() != 4 {
		t.Errorf("source length = %d, want 4", reader.Source().Len())
	}
}

func TestLoadMoreHonorsContext(t *testing.T) {
	var buffer bytes.Buffer
	writer, _ := NewWriter(&buffer, CompressionNone)
	writer.Write(record.Generate(1))
	writer.Close()

	reader, _ := NewReader(&buffer, CompressionNone, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := reader.LoadMore(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("LoadMore error = %v, want context.Canceled", err)
	}
}

func TestCompressionForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Compression
		wantErr bool
	}{
		{"a/records.cbor", CompressionNone, false},
		{"records.cbor.lz4", CompressionLZ4, false},
		{"records.cbor.zst", CompressionZstd, false},
		{"records.json", 0, true},
		{"records.lz4", 0, true},
	}
	for _, test := range tests {
		got, err := CompressionForPath(test.path)
		if (err != nil) != test.wantErr {
			t.Errorf("CompressionForPath(%q) error = %v, wantErr %t", test.path, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("CompressionForPath(%q) = %s, want %s", test.path, got, test.want)
		}
	}
}

func TestParseCompression(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		parsed, err := ParseCompression(compression.String())
		if err != nil || parsed != compression {
			t.Errorf("ParseCompression(%q) = %s, %v", compression.String(), parsed, err)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression(gzip) succeeded")
	}
}

func TestCreateRejectsUnknownExtension(t *testing.T) {
	if _, err := Create(filepath.Join(t.TempDir(), "records.txt")); err == nil {
		t.Error("Create accepted an unknown extension")
	}
}

func TestOpenStreamYieldsRawSequence(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "records"+compression.Extension())
			writeRecords(t, path, 3)

			stream, err := OpenStream(path)
			if err != nil {
				t.Fatalf("OpenStream: %v", err)
			}
			defer stream.Close()
			data, err := io.ReadAll(stream)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}

			items := 0
			for len(data) > 0 {
				_, rest, err := codec.DiagnoseFirst(data)
				if err != nil {
					t.Fatalf("DiagnoseFirst after %d items: %v", items, err)
				}
				data = rest
				items++
			}
			if items != 3 {
				t.Errorf("stream holds %d items, want 3", items)
			}
		})
	}
}

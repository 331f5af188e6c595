// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pagefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/vlist/lib/codec"
	"github.com/bureau-foundation/vlist/lib/record"
)

// Writer appends records to a page file.
type Writer struct {
	file       io.Closer
	compressor io.WriteCloser
	encoder    *codec.Encoder
	count      int
}

// Create creates (or truncates) the page file at path with the
// compression its extension names.
func Create(path string) (*Writer, error) {
	compression, err := CompressionForPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating page file: %w", err)
	}
	writer, err := NewWriter(file, compression)
	if err != nil {
		file.Close()
		return nil, err
	}
	writer.file = file
	return writer, nil
}

// NewWriter writes a page file to w. Close flushes the compression
// frame but leaves w open.
func NewWriter(w io.Writer, compression Compression) (*Writer, error) {
	framed, err := compressor(w, compression)
	if err != nil {
		return nil, err
	}
	return &Writer{
		compressor: framed,
		encoder:    codec.NewEncoder(framed),
	}, nil
}

// Write appends one record.
func (w *Writer) Write(r record.Record) error {
	if err := w.encoder.Encode(r); err != nil {
		return fmt.Errorf("encoding record %d: %w", r.ID, err)
	}
	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int { return w.count }

// Close flushes the compression frame and, for writers from Create,
// closes the file.
func (w *Writer) Close() error {
	err := w.compressor.Close()
	if w.file != nil {
		err = errors.Join(err, w.file.Close())
	}
	return err
}

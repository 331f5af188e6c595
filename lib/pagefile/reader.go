// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pagefile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/bureau-foundation/vlist/lib/codec"
	"github.com/bureau-foundation/vlist/lib/infiniteload"
	"github.com/bureau-foundation/vlist/lib/record"
	"github.com/bureau-foundation/vlist/lib/vlist"
)

// DefaultPageSize is the number of records LoadMore decodes when
// Options.PageSize is zero.
const DefaultPageSize = 50

// Options configures a Reader.
type Options struct {
	// PageSize is the number of records appended per LoadMore.
	PageSize int

	// Logger receives page records. Nil discards them.
	Logger *slog.Logger
}

// Reader decodes a page file incrementally into a SliceSource.
type Reader struct {
	file    io.Closer
	release func()
	decoder *codec.Decoder
	source  *vlist.SliceSource[record.Record]

	pageSize int
	logger   *slog.Logger

	mu   sync.Mutex
	done bool
}

// Open opens the page file at path with the compression its extension
// names.
func Open(path string, options Options) (*Reader, error) {
	compression, err := CompressionForPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page file: %w", err)
	}
	reader, err := NewReader(file, compression, options)
	if err != nil {
		file.Close()
		return nil, err
	}
	reader.file = file
	return reader, nil
}

// NewReader reads a page file from r. Close releases decompression
// state but leaves r open.
func NewReader(r io.Reader, compression Compression, options Options) (*Reader, error) {
	unframed, release, err := decompressor(r, compression)
	if err != nil {
		return nil, err
	}
	pageSize := options.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reader{
		release:  release,
		decoder:  codec.NewDecoder(unframed),
		source:   vlist.NewSliceSource[record.Record](),
		pageSize: pageSize,
		logger:   logger,
	}, nil
}

// Source returns the source LoadMore appends to.
func (r *Reader) Source() *vlist.SliceSource[record.Record] { return r.source }

// Next decodes up to limit records. It returns io.EOF, together with
// any records decoded before the end, once the file is exhausted.
func (r *Reader) Next(limit int) ([]record.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextLocked(context.Background(), limit)
}

func (r *Reader) nextLocked(ctx context.Context, limit int) ([]record.Record, error) {
	if r.done {
		return nil, io.EOF
	}
	page := make([]record.Record, 0, limit)
	for len(page) < limit {
		if err := ctx.Err(); err != nil {
			return page, err
		}
		var next record.Record
		if err := r.decoder.Decode(&next); err != nil {
			if errors.Is(err, io.EOF) {
				r.done = true
				return page, io.EOF
			}
			return page, fmt.Errorf("decoding record %d: %w", r.source.Len()+len(page), err)
		}
		page = append(page, next)
	}
	return page, nil
}

// LoadMore appends the next page to Source. Records decoded before an
// error are still appended, so a retry continues where the failure
// left off.
func (r *Reader) LoadMore(ctx context.Context) (infiniteload.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	page, err := r.nextLocked(ctx, r.pageSize)
	length := r.source.Append(page...)
	r.logger.Debug("page decoded", "records", len(page), "total", length, "done", r.done)

	if err != nil && !errors.Is(err, io.EOF) {
		return infiniteload.Result{Appended: len(page), HasMore: true}, err
	}
	return infiniteload.Result{Appended: len(page), HasMore: !r.done}, nil
}

// Close releases the decoder and, for readers from Open, the file.
func (r *Reader) Close() error {
	r.release()
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

var _ infiniteload.Loader = (*Reader)(nil)

// OpenStream opens the page file at path and returns its decompressed
// CBOR sequence, for tools that inspect the raw encoding.
func OpenStream(path string) (io.ReadCloser, error) {
	compression, err := CompressionForPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page file: %w", err)
	}
	reader, release, err := decompressor(file, compression)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &stream{Reader: reader, release: release, file: file}, nil
}

type stream struct {
	io.Reader
	release func()
	file    *os.File
}

func (s *stream) Close() error {
	s.release()
	return s.file.Close()
}

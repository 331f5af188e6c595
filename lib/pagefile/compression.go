// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pagefile

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the frame wrapped around the CBOR sequence.
type Compression uint8

const (
	// CompressionNone writes the CBOR sequence as is.
	CompressionNone Compression = iota

	// CompressionLZ4 wraps the sequence in an LZ4 frame. Fast default
	// when the file is read more often than it is written.
	CompressionLZ4

	// CompressionZstd wraps the sequence in a zstd frame at the
	// default level. Better ratios for text-heavy records.
	CompressionZstd
)

// String returns the human-readable name of a compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Extension returns the file suffix for the compression.
func (c Compression) Extension() string {
	switch c {
	case CompressionLZ4:
		return ".cbor.lz4"
	case CompressionZstd:
		return ".cbor.zst"
	default:
		return ".cbor"
	}
}

// ParseCompression parses a compression from its String form.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q (want none, lz4, or zstd)", name)
	}
}

// CompressionForPath picks the compression from a page file name.
func CompressionForPath(path string) (Compression, error) {
	switch {
	case strings.HasSuffix(path, ".cbor.lz4"):
		return CompressionLZ4, nil
	case strings.HasSuffix(path, ".cbor.zst"):
		return CompressionZstd, nil
	case strings.HasSuffix(path, ".cbor"):
		return CompressionNone, nil
	default:
		return 0, fmt.Errorf("page file %s: unrecognized extension (want .cbor, .cbor.lz4, or .cbor.zst)", path)
	}
}

// compressor returns a writer that frames data written to it onto w.
// Closing it flushes the frame but does not close w.
func compressor(w io.Writer, compression Compression) (io.WriteCloser, error) {
	switch compression {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionZstd:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return encoder, nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}

// decompressor returns a reader over the unframed sequence and a
// function releasing its resources.
func decompressor(r io.Reader, compression Compression) (io.Reader, func(), error) {
	switch compression {
	case CompressionNone:
		return r, func() {}, nil
	case CompressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	case CompressionZstd:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd reader: %w", err)
		}
		return decoder, decoder.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported compression: %s", compression)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pagefile stores records as a CBOR sequence and serves them
// back to a list one page at a time.
//
// A page file is a stream of deterministically encoded
// [record.Record] values with no header or index, optionally wrapped in
// an LZ4 or zstd frame. The compression is chosen by file extension:
//
//	records.cbor      uncompressed
//	records.cbor.lz4  LZ4 frame (fast, moderate ratio)
//	records.cbor.zst  zstd frame (slower, better ratio for text)
//
// [Reader] implements infiniteload.Loader: each LoadMore decodes the
// next page of records and appends it to the reader's
// vlist.SliceSource, so a list scrolls through a file far larger than
// what it has decoded.
package pagefile

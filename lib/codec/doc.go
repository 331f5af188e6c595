// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration shared by
// every vlist package that persists records.
//
// Page files are CBOR sequences (RFC 8742): one encoded record after
// another with no framing. The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2), so the same records always produce the
// same bytes and page files can be compared byte for byte.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(record)
//	err = codec.Unmarshal(data, &record)
//
// For page files and other streams:
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// Record types use `cbor` struct tags with short keys. Types that are
// also printed as JSON by the CLI use `json` tags instead, which
// fxamacker/cbor reads as a fallback. Never use both on one field.
package codec

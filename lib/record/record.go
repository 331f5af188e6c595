// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package record defines the item type shown by the vlist binaries,
// a deterministic generator for synthetic records, and Generator, an
// infinite-load collaborator that serves them with simulated latency
// and failures.
package record

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Record is one list item. The json tags name the fields in both the
// CLI's JSON output and page files (CBOR reads them as a fallback).
type Record struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// Lines returns the number of terminal lines the record occupies
// unwrapped: the title plus each body line.
func (r Record) Lines() int {
	if r.Body == "" {
		return 1
	}
	return 2 + strings.Count(r.Body, "\n")
}

var words = strings.Fields(`
	alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo
	lima mike november oscar papa quebec romeo sierra tango uniform victor
	whiskey xray yankee zulu`)

// Generate returns the synthetic record for id. The same id always
// yields the same record, with a body of zero to four lines.
func Generate(id int64) Record {
	random := rand.New(rand.NewPCG(uint64(id), 0x766c697374))
	lineCount := random.IntN(5)
	lines := make([]string, lineCount)
	for i := range lines {
		wordCount := 3 + random.IntN(8)
		line := make([]string, wordCount)
		for j := range line {
			line[j] = words[random.IntN(len(words))]
		}
		lines[i] = strings.Join(line, " ")
	}
	return Record{
		ID:    id,
		Title: fmt.Sprintf("Record %d", id),
		Body:  strings.Join(lines, "\n"),
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"strings"
	"testing"
)

func TestLines(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"", 1},
		{"one", 2},
		{"one\ntwo", 3},
		{"one\ntwo\nthree", 4},
	}
	for _, test := range tests {
		if got := (Record{Title: "t", Body: test.body}).Lines(); got != test.want {
			t.Errorf("Lines() for body %q = %d, want %d", test.body, got, test.want)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for id := int64(1); id <= 100; id++ {
		first := Generate(id)
		second := Generate(id)
		if first != second {
			t.Fatalf("Generate(%d) not deterministic: %+v vs %+v", id, first, second)
		}
		if first.ID != id {
			t.Errorf("Generate(%d).ID = %d", id, first.ID)
		}
		if lines := first.Lines(); lines < 1 || lines > 5 {
			t.Errorf("Generate(%d) has %d lines, want 1 to 5", id, lines)
		}
	}
}

func TestGenerateVaries(t *testing.T) {
	heights := make(map[int]bool)
	for id := int64(1); id <= 200; id++ {
		heights[Generate(id).Lines()] = true
	}
	if len(heights) < 3 {
		t.Errorf("generated records have only %d distinct heights", len(heights))
	}
	if !strings.Contains(Generate(7).Title, "7") {
		t.Errorf("title %q does not contain the id", Generate(7).Title)
	}
}

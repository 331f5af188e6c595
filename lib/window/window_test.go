// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package window

import (
	"math/rand/v2"
	"testing"

	"github.com/bureau-foundation/vlist/lib/extent"
)

func fixedModel(t *testing.T, height float64, length int) *extent.Fixed {
	t.Helper()
	model, err := extent.NewFixed(height, length)
	if err != nil {
		t.Fatalf("NewFixed: %v", err)
	}
	return model
}

func variableModel(t *testing.T, defaultEstimate float64, length int) *extent.Variable {
	t.Helper()
	model, err := extent.NewVariable(extent.VariableOptions{DefaultEstimate: defaultEstimate, Length: length})
	if err != nil {
		t.Fatalf("NewVariable: %v", err)
	}
	return model
}

func TestComputeFixedAtTop(t *testing.T) {
	// 1,000 items of height 80 in a 600 viewport with overscan 5.
	model := fixedModel(t, 80, 1000)
	got, ok := Compute(model, 0, 600, 5)
	if !ok {
		t.Fatal("Compute returned no window")
	}
	want := Window{Start: 0, End: 12, VisibleStart: 0, VisibleEnd: 7}
	if got != want {
		t.Fatalf("Compute() = %+v, want %+v", got, want)
	}
}

func TestComputeTable(t *testing.T) {
	tests := []struct {
		name      string
		height    float64
		length    int
		offset    float64
		container float64
		overscan  int
		want      Window
	}{
		{
			name:   "middle",
			height: 10, length: 100, offset: 205, container: 50, overscan: 2,
			want: Window{Start: 18, End: 27, VisibleStart: 20, VisibleEnd: 25},
		},
		{
			name:   "aligned bottom edge excludes next item",
			height: 10, length: 100, offset: 200, container: 50, overscan: 0,
			want: Window{Start: 20, End: 24, VisibleStart: 20, VisibleEnd: 24},
		},
		{
			name:   "overscan clamped at end",
			height: 10, length: 30, offset: 260, container: 50, overscan: 5,
			want: Window{Start: 21, End: 29, VisibleStart: 26, VisibleEnd: 29},
		},
		{
			name:   "scrolled past end",
			height: 10, length: 30, offset: 10000, container: 50, overscan: 1,
			want: Window{Start: 28, End: 29, VisibleStart: 29, VisibleEnd: 29},
		},
		{
			name:   "negative offset and overscan",
			height: 10, length: 30, offset: -40, container: 25, overscan: -3,
			want: Window{Start: 0, End: 2, VisibleStart: 0, VisibleEnd: 2},
		},
		{
			name:   "fewer items than viewport",
			height: 10, length: 3, offset: 0, container: 500, overscan: 5,
			want: Window{Start: 0, End: 2, VisibleStart: 0, VisibleEnd: 2},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			model := fixedModel(t, test.height, test.length)
			got, ok := Compute(model, test.offset, test.container, test.overscan)
			if !ok {
				t.Fatal("Compute returned no window")
			}
			if got != test.want {
				t.Fatalf("Compute() = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestComputeEmpty(t *testing.T) {
	if _, ok := Compute(fixedModel(t, 80, 0), 0, 600, 5); ok {
		t.Error("Compute on empty model returned a window")
	}
	if _, ok := Compute(fixedModel(t, 80, 10), 0, 0, 5); ok {
		t.Error("Compute with zero container returned a window")
	}
}

func TestComputeVariableOutlier(t *testing.T) {
	model := variableModel(t, 100, 40)
	if err := model.SetMeasured(3, 500); err != nil {
		t.Fatalf("SetMeasured: %v", err)
	}

	// Item 3 spans [300, 800). A viewport starting exactly there
	// covers item 3 and items 4..5 after it.
	got, ok := Compute(model, 300, 700, 0)
	if !ok {
		t.Fatal("Compute returned no window")
	}
	want := Window{Start: 3, End: 5, VisibleStart: 3, VisibleEnd: 5}
	if got != want {
		t.Fatalf("Compute() = %+v, want %+v", got, want)
	}

	got, _ = Compute(model, 750, 100, 0)
	want = Window{Start: 3, End: 4, VisibleStart: 3, VisibleEnd: 4}
	if got != want {
		t.Fatalf("Compute() across outlier end = %+v, want %+v", got, want)
	}
}

func TestComputeIncludesEveryVisibleItem(t *testing.T) {
	random := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 300; round++ {
		model := variableModel(t, float64(1+random.IntN(30)), 1+random.IntN(400))
		for measure := 0; measure < 50; measure++ {
			if err := model.SetMeasured(random.IntN(model.Len()), float64(1+random.IntN(120))); err != nil {
				t.Fatalf("SetMeasured: %v", err)
			}
		}
		offset := float64(random.IntN(int(model.TotalExtent()) + 50))
		container := float64(1 + random.IntN(600))
		overscan := random.IntN(4)

		window, ok := Compute(model, offset, container, overscan)
		if !ok {
			t.Fatalf("round %d: Compute returned no window", round)
		}
		if window.Start > window.End {
			t.Fatalf("round %d: Start %d > End %d", round, window.Start, window.End)
		}

		viewportEnd := offset + container
		for index := 0; index < model.Len(); index++ {
			start := model.OffsetOf(index)
			end := start + model.HeightOf(index)
			intersects := start < viewportEnd && end > offset
			if intersects && !window.Contains(index) {
				t.Fatalf("round %d: visible index %d [%v,%v) missing from %+v (offset %v, container %v)",
					round, index, start, end, window, offset, container)
			}
			inVisible := index >= window.VisibleStart && index <= window.VisibleEnd
			if inVisible && !intersects && offset < model.TotalExtent() {
				t.Fatalf("round %d: index %d [%v,%v) counted visible but outside viewport [%v,%v)",
					round, index, start, end, offset, viewportEnd)
			}
		}
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	model := variableModel(t, 37, 500)
	for index := 0; index < 500; index += 7 {
		if err := model.SetMeasured(index, float64(10+index%50)); err != nil {
			t.Fatalf("SetMeasured: %v", err)
		}
	}
	first, _ := Compute(model, 4321, 640, 5)
	second, _ := Compute(model, 4321, 640, 5)
	if first != second {
		t.Fatalf("Compute not idempotent: %+v then %+v", first, second)
	}
}

func TestWindowHelpers(t *testing.T) {
	window := Window{Start: 4, End: 9, VisibleStart: 5, VisibleEnd: 8}
	if got := window.Len(); got != 6 {
		t.Errorf("Len() = %d, want 6", got)
	}
	if !window.Contains(4) || !window.Contains(9) || window.Contains(3) || window.Contains(10) {
		t.Errorf("Contains boundaries wrong for %+v", window)
	}
}

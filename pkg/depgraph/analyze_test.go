package depgraph

import (
	"maps"
	"slices"
	"testing"
)

func TestAnalyzeCounts(t *testing.T) {
	r := &Result{
		Root: "root",
		Graph: map[string][]string{
			"root": {"a", "b"},
			"a":    {"c"},
			"b":    {},
			"c":    {},
		},
		Depths: map[string]int{"root": 0, "a": 1, "b": 1, "c": 2},
	}

	stats := Analyze(r)

	if stats.Packages != 4 {
		t.Errorf("Packages = %d, want 4", stats.Packages)
	}
	if stats.Edges != 3 {
		t.Errorf("Edges = %d, want 3", stats.Edges)
	}
	if stats.Leaves != 2 {
		t.Errorf("Leaves = %d, want 2", stats.Leaves)
	}
	wantDepths := map[int]int{0: 1, 1: 2, 2: 1}
	if !maps.Equal(stats.DepthCounts, wantDepths) {
		t.Errorf("DepthCounts = %v, want %v", stats.DepthCounts, wantDepths)
	}
	if len(stats.Cycles) != 0 {
		t.Errorf("Cycles = %v, want none", stats.Cycles)
	}
}

func TestAnalyzeEmptyDependencyListIsLeaf(t *testing.T) {
	r := &Result{
		Root:   "solo",
		Graph:  map[string][]string{"solo": {}},
		Depths: map[string]int{"solo": 0},
	}

	stats := Analyze(r)
	if stats.Leaves != 1 {
		t.Errorf("Leaves = %d, want 1 (failed or dependency-free packages count)", stats.Leaves)
	}
}

func TestAnalyzeDirectCycle(t *testing.T) {
	r := &Result{
		Root:   "A",
		Graph:  map[string][]string{"A": {"B"}, "B": {"A"}},
		Depths: map[string]int{"A": 0, "B": 1},
	}

	stats := Analyze(r)

	want := [][]string{{"A", "B", "A"}}
	if !equalCycles(stats.Cycles, want) {
		t.Errorf("Cycles = %v, want %v", stats.Cycles, want)
	}
}

func TestAnalyzeSelfLoop(t *testing.T) {
	r := &Result{
		Root:   "X",
		Graph:  map[string][]string{"X": {"X"}},
		Depths: map[string]int{"X": 0},
	}

	stats := Analyze(r)

	want := [][]string{{"X", "X"}}
	if !equalCycles(stats.Cycles, want) {
		t.Errorf("Cycles = %v, want %v", stats.Cycles, want)
	}
}

func TestAnalyzeIgnoresUnfetchedDependencies(t *testing.T) {
	// b points back at root but was never fetched, so it cannot close a cycle.
	r := &Result{
		Root:   "root",
		Graph:  map[string][]string{"root": {"b"}},
		Depths: map[string]int{"root": 0},
	}

	stats := Analyze(r)
	if len(stats.Cycles) != 0 {
		t.Errorf("Cycles = %v, want none (b has no graph entry)", stats.Cycles)
	}
}

func TestAnalyzeCyclesAreClosed(t *testing.T) {
	r := &Result{
		Root: "a",
		Graph: map[string][]string{
			"a": {"b"},
			"b": {"c"},
			"c": {"a"},
		},
		Depths: map[string]int{"a": 0, "b": 1, "c": 2},
	}

	stats := Analyze(r)

	if len(stats.Cycles) != 1 {
		t.Fatalf("len(Cycles) = %d, want 1", len(stats.Cycles))
	}
	cycle := stats.Cycles[0]
	if cycle[0] != cycle[len(cycle)-1] {
		t.Errorf("cycle %v not closed (first != last)", cycle)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	graph := map[string][]string{
		"a": {"b"},
		"b": {"a"},
		"x": {"y"},
		"y": {"x"},
	}
	r := &Result{Root: "a", Graph: graph, Depths: map[string]int{"a": 0, "b": 1, "x": 1, "y": 2}}

	first := Analyze(r).Cycles
	for range 5 {
		if again := Analyze(r).Cycles; !equalCycles(first, again) {
			t.Fatalf("cycle enumeration not deterministic: %v vs %v", first, again)
		}
	}
}

func equalCycles(a, b [][]string) bool {
	return slices.EqualFunc(a, b, slices.Equal)
}

package depgraph

import (
	"maps"
	"slices"
)

// Stats summarizes a finished build.
type Stats struct {
	Packages    int         // Packages with a graph entry
	Edges       int         // Total declared dependency edges
	Leaves      int         // Packages with no direct dependencies
	DepthCounts map[int]int // Discovery depth -> package count
	Cycles      [][]string  // Dependency cycles, each closed (first == last)
}

// Analyze computes summary statistics over a build result.
func Analyze(r *Result) Stats {
	s := Stats{
		Packages:    len(r.Graph),
		Edges:       r.EdgeCount(),
		DepthCounts: make(map[int]int),
	}
	for _, deps := range r.Graph {
		if len(deps) == 0 {
			s.Leaves++
		}
	}
	for _, depth := range r.Depths {
		s.DepthCounts[depth]++
	}
	s.Cycles = findCycles(r.Graph)
	return s
}

// findCycles enumerates dependency cycles by depth-first search carrying the
// current path. Only names present as graph keys are traversed; a dependency
// that was never fetched cannot participate. A node fully explored from one
// path is never re-explored from another, which can under-report cycles
// reachable via multiple routes. Roots are scanned in sorted order so the
// reported cycle list is deterministic.
func findCycles(graph map[string][]string) [][]string {
	var cycles [][]string
	visited := make(map[string]bool)

	var dfs func(node string, path []string)
	dfs = func(node string, path []string) {
		if i := slices.Index(path, node); i >= 0 {
			cycles = append(cycles, append(slices.Clone(path[i:]), node))
			return
		}
		if visited[node] {
			return
		}
		visited[node] = true
		path = append(path, node)

		for _, dep := range graph[node] {
			if _, ok := graph[dep]; ok {
				dfs(dep, slices.Clone(path))
			}
		}
	}

	for _, node := range slices.Sorted(maps.Keys(graph)) {
		dfs(node, nil)
	}
	return cycles
}

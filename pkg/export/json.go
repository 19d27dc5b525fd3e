// Package export serializes built dependency graphs: a node-link JSON
// format for downstream tooling and Graphviz DOT with optional SVG/PNG
// rendering.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/avollmer/depvis/pkg/depgraph"
)

type graphDoc struct {
	Root  string `json:"root"`
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID    string `json:"id"`
	Depth int    `json:"depth"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes a build result as node-link JSON and writes it to w.
// Nodes are emitted in sorted order and edges follow each node's stored
// dependency order, so the output is deterministic for a given result.
func WriteJSON(r *depgraph.Result, w io.Writer) error {
	doc := graphDoc{Root: r.Root}

	for _, name := range slices.Sorted(maps.Keys(r.Graph)) {
		doc.Nodes = append(doc.Nodes, node{ID: name, Depth: r.Depths[name]})
		for _, dep := range r.Graph[name] {
			doc.Edges = append(doc.Edges, edge{From: name, To: dep})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a build result to a JSON file at path.
func ExportJSON(r *depgraph.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(r, f)
}

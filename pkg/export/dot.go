package export

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/avollmer/depvis/pkg/depgraph"
)

// ToDOT converts a build result to Graphviz DOT format. The root node is
// highlighted; dependencies that were discovered but never fetched (depth
// boundary) appear as plain nodes with no outgoing edges. Output order is
// deterministic: nodes sorted by name, edges in stored dependency order.
func ToDOT(r *depgraph.Result) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, name := range slices.Sorted(maps.Keys(r.Graph)) {
		if name == r.Root {
			fmt.Fprintf(&buf, "  %q [fillcolor=lightblue];\n", name)
			continue
		}
		fmt.Fprintf(&buf, "  %q;\n", name)
	}

	buf.WriteString("\n")
	for _, name := range slices.Sorted(maps.Keys(r.Graph)) {
		for _, dep := range r.Graph[name] {
			fmt.Fprintf(&buf, "  %q -> %q;\n", name, dep)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

package depgraph

import "context"

// builder holds the state of one build invocation. It is created fresh by
// Build and never shared, so concurrent builds against the same Source are
// safe.
type builder struct {
	src  Source
	opts Options

	graph   map[string][]string
	depths  map[string]int
	visited map[string]bool
	queue   []workItem
}

type workItem struct {
	name  string
	depth int
}

// Build crawls the dependency graph breadth-first from root.
//
// The traversal keeps a FIFO queue of (package, depth) pairs. Each dequeued
// package is fetched exactly once; its extracted dependency list is stored
// in the result graph, and dependencies not yet seen are enqueued one level
// deeper. Packages at MaxDepth still get their dependency list stored but
// contribute no further work, so depth-boundary nodes may name dependencies
// that were never themselves fetched.
//
// The MaxPackages cap gates admission only: once the visited set reaches the
// cap no new packages are enqueued, but everything already queued is still
// drained. Every enqueued package therefore ends up with a graph entry, and
// the final package count can exceed the cap by the queue length at the
// moment the cap was crossed.
//
// A failed fetch records an empty dependency list and the crawl continues.
// Context cancellation is the one exception: the crawl stops immediately and
// Build returns ctx.Err(), so an interrupted run is never mistaken for a
// complete graph.
func Build(ctx context.Context, src Source, root string, opts Options) (*Result, error) {
	b := &builder{
		src:     src,
		opts:    opts.WithDefaults(),
		graph:   make(map[string][]string),
		depths:  map[string]int{root: 0},
		visited: map[string]bool{root: true},
		queue:   []workItem{{name: root, depth: 0}},
	}
	if err := b.run(ctx); err != nil {
		return nil, err
	}
	return &Result{Root: root, Graph: b.graph, Depths: b.depths}, nil
}

func (b *builder) run(ctx context.Context) error {
	processed := 0
	for len(b.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		item := b.queue[0]
		b.queue = b.queue[1:]
		processed++

		b.opts.Logger("[%d] fetching %s (depth %d)", processed, item.name, item.depth)
		if err := b.step(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// step fetches one package and stores its dependency list. Enqueueing is
// skipped at the depth boundary and once the package cap is reached. A fetch
// that failed because the context was cancelled aborts the build instead of
// being recorded as an empty entry.
func (b *builder) step(ctx context.Context, item workItem) error {
	rec, err := b.src.Fetch(ctx, item.name)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.opts.Logger("fetch failed: %s: %v", item.name, err)
		b.graph[item.name] = []string{}
		return nil
	}

	deps := Extract(rec, b.opts.Version, b.opts.Filter)
	b.graph[item.name] = deps

	if item.depth >= b.opts.MaxDepth {
		return nil
	}
	for _, dep := range deps {
		if b.visited[dep] || len(b.visited) >= b.opts.MaxPackages {
			continue
		}
		b.visited[dep] = true
		b.depths[dep] = item.depth + 1
		b.queue = append(b.queue, workItem{name: dep, depth: item.depth + 1})
	}
	return nil
}

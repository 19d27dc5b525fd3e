// Package depgraph builds and inspects transitive dependency graphs.
//
// The package crawls an implicit remote graph breadth-first: starting from a
// root package name it fetches metadata through a [Source], extracts direct
// dependency names with [Extract], and expands outward until the configured
// depth and package limits are reached. The finished [Result] is consumed by
// [RenderTree] for terminal display and [Analyze] for summary statistics.
//
// Fetch failures are never fatal to a build. A package whose metadata cannot
// be retrieved is recorded with an empty dependency list and the traversal
// continues, so a single broken package cannot abort a multi-hundred-node
// crawl. Cancelling the build's context is different: the crawl stops and
// [Build] reports the cancellation rather than passing off a partial graph
// as complete.
package depgraph

import "context"

const (
	DefaultMaxDepth    = 4   // Default maximum traversal depth from the root
	DefaultMaxPackages = 300 // Default cap on discovered packages per build
)

// Source retrieves raw package metadata from a registry or fixture.
type Source interface {
	// Fetch returns the metadata record for the named package, or an error
	// if the package is unknown or the source is unreachable.
	Fetch(ctx context.Context, name string) (*Record, error)
}

// Record is a package's raw registry metadata. The JSON tags follow the npm
// registry document format so both the HTTP client and fixture files decode
// directly into it.
type Record struct {
	Name     string             `json:"name"`
	DistTags DistTags           `json:"dist-tags"`
	Versions map[string]Version `json:"versions"`
}

// DistTags holds the registry's named version pointers.
type DistTags struct {
	Latest string `json:"latest"`
}

// Version declares a single published version's dependencies, split into the
// four kinds npm distinguishes. Only the map keys (dependency names) are
// ever interpreted; the version-constraint values are carried but unused.
type Version struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// Options configures a single build.
type Options struct {
	MaxDepth    int                  // Maximum depth to expand (default: 4)
	MaxPackages int                  // Maximum packages to discover (default: 300)
	Version     string               // Target version spec: "latest" or exact (default: "latest")
	Filter      string               // Exclude dependencies containing this substring (case-insensitive)
	Logger      func(string, ...any) // Progress/error callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxPackages <= 0 {
		opts.MaxPackages = DefaultMaxPackages
	}
	if opts.Version == "" {
		opts.Version = "latest"
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Result is a finished dependency graph. Graph and Depths share the same key
// set: every package that was ever enqueued during the build has an entry in
// both, even if its metadata could not be fetched.
type Result struct {
	Root   string              // Package the build started from
	Graph  map[string][]string // Package -> sorted direct dependency names
	Depths map[string]int      // Package -> depth at first discovery (root = 0)
}

// EdgeCount returns the total number of dependency edges in the graph.
func (r *Result) EdgeCount() int {
	n := 0
	for _, deps := range r.Graph {
		n += len(deps)
	}
	return n
}

// PackageCount returns the number of packages with a graph entry.
func (r *Result) PackageCount() int { return len(r.Graph) }

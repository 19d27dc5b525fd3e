package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/avollmer/depvis/pkg/depgraph"
)

// Fixture serves package records from a local JSON file instead of the
// network. The file maps package names to registry-style records:
//
//	{
//	  "A": {"dist-tags": {"latest": "1.0.0"},
//	        "versions": {"1.0.0": {"dependencies": {"B": "^1.0.0"}}}},
//	  "B": {...}
//	}
//
// Packages absent from the file resolve to a synthetic single-version record
// with no dependencies, so fixture graphs always terminate cleanly at their
// edges. It implements [depgraph.Source].
type Fixture struct {
	path string

	once    sync.Once
	records map[string]*depgraph.Record
	loadErr error
}

// NewFixture creates a Fixture backed by the JSON file at path.
// The file is read lazily on the first Fetch.
func NewFixture(path string) *Fixture {
	return &Fixture{path: path}
}

// Fetch returns the record for name from the fixture file. A missing or
// malformed file fails every fetch; an unknown package name does not.
func (f *Fixture) Fetch(_ context.Context, name string) (*depgraph.Record, error) {
	f.once.Do(f.load)
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if rec, ok := f.records[name]; ok {
		return rec, nil
	}
	return syntheticRecord(name), nil
}

func (f *Fixture) load() {
	data, err := os.ReadFile(f.path)
	if err != nil {
		f.loadErr = fmt.Errorf("read fixture %s: %w", f.path, err)
		return
	}
	if err := json.Unmarshal(data, &f.records); err != nil {
		f.loadErr = fmt.Errorf("parse fixture %s: %w", f.path, err)
	}
}

// syntheticRecord fabricates an empty-dependency record for packages the
// fixture doesn't define.
func syntheticRecord(name string) *depgraph.Record {
	return &depgraph.Record{
		Name:     name,
		DistTags: depgraph.DistTags{Latest: "1.0.0"},
		Versions: map[string]depgraph.Version{"1.0.0": {}},
	}
}

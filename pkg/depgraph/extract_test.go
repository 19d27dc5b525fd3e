package depgraph

import (
	"slices"
	"testing"
)

func TestExtractLatest(t *testing.T) {
	r := &Record{
		DistTags: DistTags{Latest: "2.1.0"},
		Versions: map[string]Version{
			"1.0.0": {Dependencies: map[string]string{"old": "*"}},
			"2.1.0": {Dependencies: map[string]string{"fresh": "*"}},
		},
	}

	got := Extract(r, "latest", "")
	if !slices.Equal(got, []string{"fresh"}) {
		t.Errorf("Extract() = %v, want [fresh]", got)
	}
}

func TestExtractExactVersion(t *testing.T) {
	r := &Record{
		DistTags: DistTags{Latest: "2.0.0"},
		Versions: map[string]Version{
			"1.0.0": {Dependencies: map[string]string{"legacy": "*"}},
			"2.0.0": {Dependencies: map[string]string{"modern": "*"}},
		},
	}

	got := Extract(r, "1.0.0", "")
	if !slices.Equal(got, []string{"legacy"}) {
		t.Errorf("Extract() = %v, want [legacy]", got)
	}
}

func TestExtractMissingVersionFallsBack(t *testing.T) {
	r := &Record{
		DistTags: DistTags{Latest: "9.9.9"},
		Versions: map[string]Version{
			"3.0.0": {Dependencies: map[string]string{"c-dep": "*"}},
			"1.0.0": {Dependencies: map[string]string{"a-dep": "*"}},
		},
	}

	// Neither the requested version nor the latest tag exists; the first
	// available version in sorted key order is used.
	got := Extract(r, "5.0.0", "")
	if !slices.Equal(got, []string{"a-dep"}) {
		t.Errorf("Extract() = %v, want [a-dep] (from version 1.0.0)", got)
	}
}

func TestExtractNoVersions(t *testing.T) {
	r := &Record{Name: "empty"}

	got := Extract(r, "latest", "")
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty", got)
	}
}

func TestExtractUnionsAllDependencyKinds(t *testing.T) {
	r := &Record{
		DistTags: DistTags{Latest: "1.0.0"},
		Versions: map[string]Version{
			"1.0.0": {
				Dependencies:         map[string]string{"runtime": "*", "shared": "*"},
				DevDependencies:      map[string]string{"devtool": "*", "shared": "*"},
				PeerDependencies:     map[string]string{"peer": "*"},
				OptionalDependencies: map[string]string{"optional": "*"},
			},
		},
	}

	got := Extract(r, "latest", "")
	want := []string{"devtool", "optional", "peer", "runtime", "shared"}
	if !slices.Equal(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractSortedAndDeduplicated(t *testing.T) {
	r := &Record{
		DistTags: DistTags{Latest: "1.0.0"},
		Versions: map[string]Version{
			"1.0.0": {
				Dependencies:    map[string]string{"zebra": "*", "alpha": "*"},
				DevDependencies: map[string]string{"zebra": "*", "middle": "*"},
			},
		},
	}

	got := Extract(r, "latest", "")
	if !slices.IsSorted(got) {
		t.Errorf("Extract() = %v, want sorted output", got)
	}
	want := []string{"alpha", "middle", "zebra"}
	if !slices.Equal(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractFilterExcludes(t *testing.T) {
	r := &Record{
		DistTags: DistTags{Latest: "1.0.0"},
		Versions: map[string]Version{
			"1.0.0": {Dependencies: map[string]string{
				"babel-core":  "*",
				"Babel-Xyz":   "*",
				"lodash":      "*",
				"react-babel": "*",
			}},
		},
	}

	got := Extract(r, "latest", "BABEL")
	if !slices.Equal(got, []string{"lodash"}) {
		t.Errorf("Extract() = %v, want [lodash] (filter excludes, case-insensitively)", got)
	}
}

func TestExtractEmptyFilterKeepsAll(t *testing.T) {
	r := rec("a", "b")

	got := Extract(r, "latest", "")
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Extract() = %v, want [a b]", got)
	}
}

func TestExtractIdempotent(t *testing.T) {
	r := &Record{
		DistTags: DistTags{Latest: "1.0.0"},
		Versions: map[string]Version{
			"1.0.0": {
				Dependencies:    map[string]string{"x": "*", "y": "*"},
				DevDependencies: map[string]string{"z": "*"},
			},
		},
	}

	first := Extract(r, "latest", "y")
	second := Extract(r, "latest", "y")
	if !slices.Equal(first, second) {
		t.Errorf("Extract() not idempotent: %v then %v", first, second)
	}
}

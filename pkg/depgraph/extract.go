package depgraph

import (
	"maps"
	"slices"
	"strings"
)

// Extract returns the sorted, deduplicated direct dependency names declared
// by one version of a package.
//
// The target version is resolved from the selection spec: "latest" follows
// the record's dist-tags pointer, anything else is used verbatim as a
// version key. If the resolved version is missing from the record, the
// first available version (in sorted key order, for determinism) is used
// instead; a record with no versions at all yields an empty list. Extraction
// never fails.
//
// Dependency names are collected from all four declaration kinds (runtime,
// development, peer, optional) and collapsed across kinds. A non-empty
// filter substring excludes every name containing it, case-insensitively.
func Extract(rec *Record, version, filter string) []string {
	target := version
	if target == "latest" {
		target = rec.DistTags.Latest
	}

	v, ok := rec.Versions[target]
	if !ok {
		keys := slices.Sorted(maps.Keys(rec.Versions))
		if len(keys) == 0 {
			return []string{}
		}
		v = rec.Versions[keys[0]]
	}

	set := make(map[string]bool)
	for _, kind := range []map[string]string{
		v.Dependencies,
		v.DevDependencies,
		v.PeerDependencies,
		v.OptionalDependencies,
	} {
		for name := range kind {
			set[name] = true
		}
	}

	if filter != "" {
		needle := strings.ToLower(filter)
		maps.DeleteFunc(set, func(name string, _ bool) bool {
			return strings.Contains(strings.ToLower(name), needle)
		})
	}

	return slices.Sorted(maps.Keys(set))
}

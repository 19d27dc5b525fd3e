package depgraph

import "maps"

// connector glyphs for the indented tree.
const (
	branchMid  = "├── "
	branchEnd  = "└── "
	indentMid  = "│   "
	indentLast = "    "
	cycleMark  = " [cycle]"
)

// frame is one pending node of the rendering walk. path holds the ancestors
// of this node on its branch; it is shared between siblings and never
// mutated after creation.
type frame struct {
	name   string
	prefix string
	last   bool
	path   map[string]bool
}

// RenderTree renders the graph as an indented ASCII tree rooted at r.Root.
//
// The walk is depth-first with an explicit stack, so adversarially deep
// graphs cannot exhaust the call stack. Each branch carries its own ancestor
// set, independent of the visited bookkeeping used during the build: a node
// that reappears on its own branch is rendered once with a cycle marker and
// not expanded, while the same node may still render fully on a different
// branch. Packages without a graph entry (for example, discovered at the
// depth boundary but never fetched) render as leaves.
func RenderTree(r *Result) []string {
	lines := []string{r.Root}

	rootPath := map[string]bool{r.Root: true}
	stack := pushChildren(nil, r.Graph[r.Root], "", rootPath)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		connector, childPrefix := branchMid, f.prefix+indentMid
		if f.last {
			connector, childPrefix = branchEnd, f.prefix+indentLast
		}

		if f.path[f.name] {
			lines = append(lines, f.prefix+connector+f.name+cycleMark)
			continue
		}
		lines = append(lines, f.prefix+connector+f.name)

		deps := r.Graph[f.name]
		if len(deps) == 0 {
			continue
		}
		branch := make(map[string]bool, len(f.path)+1)
		maps.Copy(branch, f.path)
		branch[f.name] = true
		stack = pushChildren(stack, deps, childPrefix, branch)
	}
	return lines
}

// pushChildren pushes deps in reverse so the stack pops them in stored
// order, with the final dependency flagged as the branch end.
func pushChildren(stack []frame, deps []string, prefix string, path map[string]bool) []frame {
	for i := len(deps) - 1; i >= 0; i-- {
		stack = append(stack, frame{
			name:   deps[i],
			prefix: prefix,
			last:   i == len(deps)-1,
			path:   path,
		})
	}
	return stack
}

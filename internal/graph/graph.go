// Package graph builds the dependency graph over a file's shared definitions
// and orders them so dependencies come before dependents.
package graph

import (
	"regexp"
	"sort"

	"inlay/internal/scanner"
)

// Graph records, for each named definition, which other named definitions its
// raw text references. Edges come from whole-word text search, so the graph
// may contain cycles; every traversal guards with a visited set.
type Graph struct {
	deps  map[string]map[string]struct{}
	index map[string]int // name -> declaration order
	order []string       // names in declaration order
}

// Build scans every definition's text for whole-word occurrences of every
// other definition's name and records an edge for each hit. Self-edges are
// excluded.
func Build(defs []scanner.Decl) *Graph {
	g := &Graph{
		deps:  make(map[string]map[string]struct{}, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		g.index[d.Name] = d.Order
		g.order = append(g.order, d.Name)
		g.deps[d.Name] = make(map[string]struct{})
	}
	for _, d := range defs {
		for _, other := range defs {
			if other.Name == d.Name {
				continue
			}
			if Mentions(d.Text, other.Name) {
				g.deps[d.Name][other.Name] = struct{}{}
			}
		}
	}
	return g
}

// Mentions reports whether text contains name as a whole word.
func Mentions(text, name string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	return re.MatchString(text)
}

// Direct returns the direct dependencies of name in declaration order.
func (g *Graph) Direct(name string) []string {
	return g.sortedDeps(name)
}

// TransitiveClosure walks breadth-first from the seed names following
// dependency edges. The result includes the seeds themselves; callers remove
// them as needed. The visited set guarantees termination on cyclic graphs.
func (g *Graph) TransitiveClosure(seeds ...string) map[string]struct{} {
	visited := make(map[string]struct{}, len(seeds))
	queue := append([]string(nil), seeds...)
	for _, s := range seeds {
		visited[s] = struct{}{}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dep := range g.deps[cur] {
			if _, seen := visited[dep]; seen {
				continue
			}
			visited[dep] = struct{}{}
			queue = append(queue, dep)
		}
	}
	return visited
}

// Sorted returns every definition name in topological order: a name that
// transitively depends on another is emitted after it. Depth-first traversal
// in declaration order keeps the result deterministic and breaks ties (and
// cycles) by declaration order.
func (g *Graph) Sorted() []string {
	seen := make(map[string]bool, len(g.order))
	out := make([]string, 0, len(g.order))

	var visit func(name string)
	visit = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		for _, dep := range g.sortedDeps(name) {
			visit(dep)
		}
		out = append(out, name)
	}

	for _, name := range g.order {
		visit(name)
	}
	return out
}

func (g *Graph) sortedDeps(name string) []string {
	deps := make([]string, 0, len(g.deps[name]))
	for d := range g.deps[name] {
		deps = append(deps, d)
	}
	sort.Slice(deps, func(i, j int) bool { return g.index[deps[i]] < g.index[deps[j]] })
	return deps
}

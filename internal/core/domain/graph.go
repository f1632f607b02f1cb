package domain

import "sort"

// Graph is the in-memory dependency graph over tracked file paths.
// Edges mean "depends on" (unit or header -> header). It keeps reverse
// edges alongside forward ones so dependent lookups are O(1).
//
// Header include cycles are legal in C/C++ (include guards), so every
// traversal is visited-set bounded and never assumes a DAG.
type Graph struct {
	kinds      map[string]FileKind
	deps       map[string]map[string]struct{}
	dependents map[string]map[string]struct{}
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		kinds:      make(map[string]FileKind),
		deps:       make(map[string]map[string]struct{}),
		dependents: make(map[string]map[string]struct{}),
	}
}

// AddNode registers a path with its kind. Adding an existing path updates
// the kind and keeps the edges.
func (g *Graph) AddNode(path string, kind FileKind) {
	g.kinds[path] = kind
}

// Contains reports whether the path is a node in the graph.
func (g *Graph) Contains(path string) bool {
	_, ok := g.kinds[path]
	return ok
}

// Kind returns the kind of a node, or false if the path is not tracked.
func (g *Graph) Kind(path string) (FileKind, bool) {
	k, ok := g.kinds[path]
	return k, ok
}

// SetEdges overwrites the outgoing edge set for path. Edge targets that are
// not yet nodes are added as headers; an include edge can only point at a
// header, and a target that later turns out to be missing is dropped on the
// next scan.
func (g *Graph) SetEdges(path string, deps []string) {
	if _, ok := g.kinds[path]; !ok {
		return
	}

	for dep := range g.deps[path] {
		delete(g.dependents[dep], path)
	}
	delete(g.deps, path)

	if len(deps) == 0 {
		return
	}
	out := make(map[string]struct{}, len(deps))
	for _, dep := range deps {
		if dep == path {
			continue
		}
		out[dep] = struct{}{}
		if _, ok := g.kinds[dep]; !ok {
			g.kinds[dep] = KindHeader
		}
		if g.dependents[dep] == nil {
			g.dependents[dep] = make(map[string]struct{})
		}
		g.dependents[dep][path] = struct{}{}
	}
	g.deps[path] = out
}

// RemoveNode drops the node and every edge touching it.
func (g *Graph) RemoveNode(path string) {
	for dep := range g.deps[path] {
		delete(g.dependents[dep], path)
	}
	for dependent := range g.dependents[path] {
		delete(g.deps[dependent], path)
	}
	delete(g.deps, path)
	delete(g.dependents, path)
	delete(g.kinds, path)
}

// Dependents returns all nodes with a direct edge into path, sorted.
func (g *Graph) Dependents(path string) []string {
	set := g.dependents[path]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Dependencies returns the direct outgoing edges of path, sorted.
func (g *Graph) Dependencies(path string) []string {
	set := g.deps[path]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Paths returns every node path, sorted.
func (g *Graph) Paths() []string {
	out := make([]string, 0, len(g.kinds))
	for p := range g.kinds {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.kinds)
}

// TransitiveUnits expands the seed set over reverse edges (breadth first,
// visited-set guarded) and returns every translation unit in the closure,
// including seed units themselves. A dirty header is a reason to recompile
// its dependents, never a compile target, so headers are visited but not
// returned. The result is sorted for deterministic reporting; dispatch
// order among the units carries no meaning.
func (g *Graph) TransitiveUnits(seed []string) []string {
	visited := make(map[string]bool, len(seed))
	queue := make([]string, 0, len(seed))
	for _, p := range seed {
		if _, ok := g.kinds[p]; !ok {
			continue
		}
		if !visited[p] {
			visited[p] = true
			queue = append(queue, p)
		}
	}

	var units []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if g.kinds[current] == KindUnit {
			units = append(units, current)
		}
		for dependent := range g.dependents[current] {
			if !visited[dependent] {
				visited[dependent] = true
				queue = append(queue, dependent)
			}
		}
	}

	sort.Strings(units)
	return units
}

// Package inherit derives inheritance relationships from extracted classes
// and computes inheritance depth with cycle protection.
package inherit

import (
	"fmt"

	"github.com/dominikbraun/graph"

	"github.com/mvp-joe/codescope/internal/extract"
)

// Analyzer holds the class graph for one extraction call. Parent names that
// resolve to no class in the set stay in the graph as opaque external
// vertices.
type Analyzer struct {
	classes map[string]bool
	parents map[string][]string
	order   []string
	graph   graph.Graph[string, string]
}

// New builds the analyzer from one call's class set.
func New(classes []extract.ClassInfo) *Analyzer {
	a := &Analyzer{
		classes: make(map[string]bool, len(classes)),
		parents: make(map[string][]string, len(classes)),
		graph:   graph.New(graph.StringHash, graph.Directed()),
	}

	for _, c := range classes {
		a.classes[c.Name] = true
		a.parents[c.Name] = c.Inheritance.Parents
		a.order = append(a.order, c.Name)
		_ = a.graph.AddVertex(c.Name)
	}
	for _, c := range classes {
		for _, p := range c.Inheritance.Parents {
			_ = a.graph.AddVertex(p)
			// self-edges and duplicates are rejected by the graph; the
			// depth computation guards cycles on its own
			_ = a.graph.AddEdge(c.Name, p)
		}
	}

	return a
}

// Relationships returns one inheritance edge per declared parent per class,
// in class declaration order.
func (a *Analyzer) Relationships() []extract.Relationship {
	rels := []extract.Relationship{}
	for _, name := range a.order {
		for _, p := range a.parents[name] {
			rels = append(rels, extract.Relationship{
				Type:        "inheritance",
				Source:      name,
				Target:      p,
				Description: fmt.Sprintf("%s inherits from %s", name, p),
			})
		}
	}
	return rels
}

// Depth computes the inheritance depth of one class: 1 when it has no
// resolvable parents, otherwise 1 + the deepest parent chain. A visited set
// guards cycles; revisiting a name on the current path scores that branch 0.
func (a *Analyzer) Depth(name string) int {
	adjacency, err := a.graph.AdjacencyMap()
	if err != nil {
		return 1
	}
	return a.depth(name, adjacency, map[string]bool{})
}

func (a *Analyzer) depth(name string, adjacency map[string]map[string]graph.Edge[string], visited map[string]bool) int {
	if visited[name] {
		return 0
	}
	visited[name] = true
	defer delete(visited, name)

	best := 0
	for parent := range adjacency[name] {
		if !a.classes[parent] {
			continue // unresolved external name
		}
		if d := a.depth(parent, adjacency, visited); d > best {
			best = d
		}
	}
	return 1 + best
}

// MaxDepth is the module-level statistic: the maximum depth over all
// classes, 0 when there are none.
func (a *Analyzer) MaxDepth() int {
	max := 0
	for _, name := range a.order {
		if d := a.Depth(name); d > max {
			max = d
		}
	}
	return max
}

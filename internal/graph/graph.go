// Package graph builds and analyzes the skill dependency graph. Edges come
// from body cross-references and from front matter pipeline after/before
// declarations. The graph is reporting-only; nothing here installs
// anything.
package graph

import (
	"sort"

	"github.com/slink-tools/slink/internal/skill"
)

// EdgeKind distinguishes where an edge was declared.
type EdgeKind int

const (
	// EdgeCrossRef comes from a <see ref="..."> body reference.
	EdgeCrossRef EdgeKind = iota

	// EdgePipeline comes from pipeline after/before front matter.
	EdgePipeline
)

// Edge is a directed dependency between two skills.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

// Graph is a skill dependency graph with analysis results.
type Graph struct {
	// Nodes are the skill names, sorted.
	Nodes []string

	// Edges are deduplicated directed edges.
	Edges []Edge

	// Clusters are strongly connected components with more than one
	// member (mutually referencing skill groups).
	Clusters [][]string

	// Roots have no incoming edges.
	Roots []string

	// Leaves have no outgoing edges.
	Leaves []string

	// Bridges are articulation points of the undirected projection:
	// skills whose removal disconnects part of the graph.
	Bridges []string

	index map[string]int
	out   [][]int
	in    [][]int
}

// Build constructs a graph over the given skills and cross-references.
// Referenced names with no discovered skill still become nodes, so
// dangling references stay visible.
func Build(skills []*skill.Skill, crossrefs map[string][]skill.CrossRef) *Graph {
	nodeSet := make(map[string]bool)
	for _, s := range skills {
		nodeSet[s.Name] = true
	}
	for source, refs := range crossrefs {
		nodeSet[source] = true
		for _, r := range refs {
			nodeSet[r.Target] = true
		}
	}

	g := &Graph{index: make(map[string]int, len(nodeSet))}
	for name := range nodeSet {
		g.Nodes = append(g.Nodes, name)
	}
	sort.Strings(g.Nodes)
	for i, name := range g.Nodes {
		g.index[name] = i
	}
	g.out = make([][]int, len(g.Nodes))
	g.in = make([][]int, len(g.Nodes))

	seen := make(map[[2]string]bool)
	addEdge := func(from, to string, kind EdgeKind) {
		fi, fok := g.index[from]
		ti, tok := g.index[to]
		if !fok || !tok || seen[[2]string{from, to}] {
			return
		}
		seen[[2]string{from, to}] = true
		g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: kind})
		g.out[fi] = append(g.out[fi], ti)
		g.in[ti] = append(g.in[ti], fi)
	}

	sources := make([]string, 0, len(crossrefs))
	for source := range crossrefs {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	for _, source := range sources {
		for _, r := range crossrefs[source] {
			addEdge(source, r.Target, EdgeCrossRef)
		}
	}

	for _, s := range skills {
		for _, stage := range s.Pipeline {
			// "after" means this skill depends on those skills.
			for _, dep := range stage.After {
				addEdge(s.Name, dep, EdgePipeline)
			}
			// "before" reverses the direction.
			for _, dep := range stage.Before {
				addEdge(dep, s.Name, EdgePipeline)
			}
		}
	}

	g.analyze()
	return g
}

func (g *Graph) analyze() {
	g.Clusters = g.stronglyConnected()
	for i, name := range g.Nodes {
		if len(g.in[i]) == 0 {
			g.Roots = append(g.Roots, name)
		}
		if len(g.out[i]) == 0 {
			g.Leaves = append(g.Leaves, name)
		}
	}
	g.Bridges = g.articulationPoints()
}

// Neighbors returns the outgoing edge targets of a skill, sorted.
func (g *Graph) Neighbors(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	targets := make([]string, 0, len(g.out[i]))
	for _, t := range g.out[i] {
		targets = append(targets, g.Nodes[t])
	}
	sort.Strings(targets)
	return targets
}

// stronglyConnected runs Tarjan's algorithm and keeps components with more
// than one member.
func (g *Graph) stronglyConnected() [][]string {
	n := len(g.Nodes)
	const unvisited = -1

	indices := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range indices {
		indices[i] = unvisited
	}

	var stack []int
	var clusters [][]string
	counter := 0

	var strongconnect func(v int)
	strongconnect = func(v int) {
		indices[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.out[v] {
			if indices[w] == unvisited {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] && indices[w] < lowlink[v] {
				lowlink[v] = indices[w]
			}
		}

		if lowlink[v] == indices[v] {
			var component []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				component = append(component, g.Nodes[w])
				if w == v {
					break
				}
			}
			if len(component) > 1 {
				sort.Strings(component)
				clusters = append(clusters, component)
			}
		}
	}

	for v := 0; v < n; v++ {
		if indices[v] == unvisited {
			strongconnect(v)
		}
	}

	sort.Slice(clusters, func(i, j int) bool { return clusters[i][0] < clusters[j][0] })
	return clusters
}

// articulationPoints finds cut vertices of the undirected projection.
func (g *Graph) articulationPoints() []string {
	n := len(g.Nodes)
	adj := make([][]int, n)
	seen := make(map[[2]int]bool)
	link := func(a, b int) {
		if a == b || seen[[2]int{a, b}] {
			return
		}
		seen[[2]int{a, b}] = true
		seen[[2]int{b, a}] = true
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	for i := range g.out {
		for _, j := range g.out[i] {
			link(i, j)
		}
	}

	const unvisited = -1
	disc := make([]int, n)
	low := make([]int, n)
	parent := make([]int, n)
	isCut := make([]bool, n)
	for i := range disc {
		disc[i] = unvisited
		parent[i] = -1
	}
	timer := 0

	var dfs func(u int)
	dfs = func(u int) {
		disc[u] = timer
		low[u] = timer
		timer++
		children := 0

		for _, v := range adj[u] {
			if disc[v] == unvisited {
				children++
				parent[v] = u
				dfs(v)
				if low[v] < low[u] {
					low[u] = low[v]
				}
				if parent[u] != -1 && low[v] >= disc[u] {
					isCut[u] = true
				}
			} else if v != parent[u] && disc[v] < low[u] {
				low[u] = disc[v]
			}
		}

		if parent[u] == -1 && children > 1 {
			isCut[u] = true
		}
	}

	for i := 0; i < n; i++ {
		if disc[i] == unvisited {
			dfs(i)
		}
	}

	var cuts []string
	for i, cut := range isCut {
		if cut {
			cuts = append(cuts, g.Nodes[i])
		}
	}
	sort.Strings(cuts)
	return cuts
}

// FilterTag restricts the graph to skills carrying the given tag.
func FilterTag(skills []*skill.Skill, crossrefs map[string][]skill.CrossRef, tag string) *Graph {
	keep := make(map[string]bool)
	var kept []*skill.Skill
	for _, s := range skills {
		for _, t := range s.Tags {
			if t == tag {
				keep[s.Name] = true
				kept = append(kept, s)
				break
			}
		}
	}
	return Build(kept, filterRefs(crossrefs, keep))
}

// FilterPipeline restricts the graph to skills participating in the named
// pipeline.
func FilterPipeline(skills []*skill.Skill, crossrefs map[string][]skill.CrossRef, pipeline string) *Graph {
	keep := make(map[string]bool)
	var kept []*skill.Skill
	for _, s := range skills {
		if _, ok := s.Pipeline[pipeline]; ok {
			keep[s.Name] = true
			kept = append(kept, s)
		}
	}
	return Build(kept, filterRefs(crossrefs, keep))
}

func filterRefs(crossrefs map[string][]skill.CrossRef, keep map[string]bool) map[string][]skill.CrossRef {
	out := make(map[string][]skill.CrossRef)
	for source, refs := range crossrefs {
		if !keep[source] {
			continue
		}
		var filtered []skill.CrossRef
		for _, r := range refs {
			if keep[r.Target] {
				filtered = append(filtered, r)
			}
		}
		if len(filtered) > 0 {
			out[source] = filtered
		}
	}
	return out
}

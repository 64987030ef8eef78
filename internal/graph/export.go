package graph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Text renders the graph as a human-readable adjacency list with an
// analysis summary.
func (g *Graph) Text() string {
	var b strings.Builder

	b.WriteString("# Skill Dependency Graph\n\n")
	fmt.Fprintf(&b, "Skills: %d\n", len(g.Nodes))
	fmt.Fprintf(&b, "Clusters: %d\n", len(g.Clusters))
	fmt.Fprintf(&b, "Roots: %d\n", len(g.Roots))
	fmt.Fprintf(&b, "Leaves: %d\n", len(g.Leaves))
	fmt.Fprintf(&b, "Bridges: %d\n\n", len(g.Bridges))

	b.WriteString("## Dependencies\n\n")
	for _, name := range g.Nodes {
		targets := g.Neighbors(name)
		if len(targets) == 0 {
			fmt.Fprintf(&b, "%s: (none)\n", name)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(targets, ", "))
		}
	}

	return b.String()
}

// DOT renders the graph in Graphviz DOT format. Roots, leaves, and bridges
// are color-coded; pipeline edges are dashed.
func (g *Graph) DOT() string {
	var b strings.Builder

	b.WriteString("digraph SkillGraph {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, name := range g.Nodes {
		color := "white"
		switch {
		case contains(g.Roots, name):
			color = "lightblue"
		case contains(g.Leaves, name):
			color = "lightgreen"
		case contains(g.Bridges, name):
			color = "orange"
		}
		fmt.Fprintf(&b, "  %q [fillcolor=%s, style=\"rounded,filled\"];\n", name, color)
	}

	b.WriteString("\n")
	for _, e := range g.Edges {
		style := ""
		if e.Kind == EdgePipeline {
			style = " [style=dashed, color=blue]"
		}
		fmt.Fprintf(&b, "  %q -> %q%s;\n", e.From, e.To, style)
	}

	b.WriteString("}\n")
	return b.String()
}

type jsonNode struct {
	ID       string `json:"id"`
	IsRoot   bool   `json:"is_root"`
	IsLeaf   bool   `json:"is_leaf"`
	IsBridge bool   `json:"is_bridge"`
}

type jsonEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

type jsonGraph struct {
	Nodes    []jsonNode `json:"nodes"`
	Edges    []jsonEdge `json:"edges"`
	Clusters [][]string `json:"clusters"`
}

// JSON renders the graph as a machine-readable document.
func (g *Graph) JSON() (string, error) {
	doc := jsonGraph{Clusters: g.Clusters}

	for _, name := range g.Nodes {
		doc.Nodes = append(doc.Nodes, jsonNode{
			ID:       name,
			IsRoot:   contains(g.Roots, name),
			IsLeaf:   contains(g.Leaves, name),
			IsBridge: contains(g.Bridges, name),
		})
	}
	for _, e := range g.Edges {
		kind := "crossref"
		if e.Kind == EdgePipeline {
			kind = "pipeline"
		}
		doc.Edges = append(doc.Edges, jsonEdge{Source: e.From, Target: e.To, Kind: kind})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Mermaid renders the graph as a Mermaid diagram. Pipeline edges use
// dotted arrows; nodes without edges get a standalone declaration so they
// still appear.
func (g *Graph) Mermaid() string {
	var b strings.Builder
	b.WriteString("graph LR\n")

	connected := make(map[string]bool)
	for _, e := range g.Edges {
		connected[e.From] = true
		connected[e.To] = true
	}
	for _, n := range g.Nodes {
		if !connected[n] {
			fmt.Fprintf(&b, "  %s[%s]\n", mermaidID(n), n)
		}
	}

	for _, e := range g.Edges {
		arrow := "-->"
		if e.Kind == EdgePipeline {
			arrow = "-.->"
		}
		fmt.Fprintf(&b, "  %s[%s] %s %s[%s]\n",
			mermaidID(e.From), e.From, arrow, mermaidID(e.To), e.To)
	}

	return b.String()
}

func mermaidID(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/slink-tools/slink/internal/graph"
	"github.com/slink-tools/slink/internal/skill"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// PipelineInfo summarizes one pipeline across the corpus.
type PipelineInfo struct {
	Name       string
	SkillCount int
	DepCount   int

	// HasGaps is set when an after/before constraint names a skill that
	// does not itself participate in the pipeline.
	HasGaps bool
}

// Pipelines aggregates every pipeline declared in any skill's front
// matter, sorted by name.
func Pipelines(skills []*skill.Skill) []PipelineInfo {
	members := make(map[string]map[string]bool)
	deps := make(map[string][]string)

	for _, s := range skills {
		for name, stage := range s.Pipeline {
			if members[name] == nil {
				members[name] = make(map[string]bool)
			}
			members[name][s.Name] = true
			deps[name] = append(deps[name], stage.After...)
			deps[name] = append(deps[name], stage.Before...)
		}
	}

	infos := make([]PipelineInfo, 0, len(members))
	for name, skillSet := range members {
		info := PipelineInfo{
			Name:       name,
			SkillCount: len(skillSet),
			DepCount:   len(deps[name]),
		}
		for _, dep := range deps[name] {
			if !skillSet[dep] {
				info.HasGaps = true
				break
			}
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// EdgeEntry is one row in the focused node's edge list.
type EdgeEntry struct {
	Name     string
	Kind     graph.EdgeKind
	Outgoing bool
}

// NodeEdges lists the edges touching a node, outgoing first, in the
// graph's stable edge order.
func NodeEdges(g *graph.Graph, name string) []EdgeEntry {
	var entries []EdgeEntry
	for _, e := range g.Edges {
		if e.From == name {
			entries = append(entries, EdgeEntry{Name: e.To, Kind: e.Kind, Outgoing: true})
		}
	}
	for _, e := range g.Edges {
		if e.To == name {
			entries = append(entries, EdgeEntry{Name: e.From, Kind: e.Kind, Outgoing: false})
		}
	}
	return entries
}

// NodeRoles names the analysis roles a node plays, comma separated, empty
// when it plays none.
func NodeRoles(g *graph.Graph, name string) string {
	var roles []string
	for _, n := range g.Roots {
		if n == name {
			roles = append(roles, "root")
		}
	}
	for _, n := range g.Leaves {
		if n == name {
			roles = append(roles, "leaf")
		}
	}
	for _, n := range g.Bridges {
		if n == name {
			roles = append(roles, "bridge")
		}
	}
	return strings.Join(roles, ", ")
}

// FormatEdge renders one edge list row with its direction arrow.
func FormatEdge(e EdgeEntry) string {
	arrow := "→"
	if !e.Outgoing {
		arrow = "←"
	}
	if e.Kind == graph.EdgePipeline {
		return fmt.Sprintf("%s %s (pipeline)", arrow, e.Name)
	}
	return fmt.Sprintf("%s %s", arrow, e.Name)
}

// FormatTrail renders the breadcrumb path of the focus navigation.
func FormatTrail(trail []string) string {
	return strings.Join(trail, " → ")
}

// FormatClusters renders mutually referencing skill groups, one per line.
func FormatClusters(clusters [][]string) string {
	if len(clusters) == 0 {
		return "No skill clusters."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Clusters (%d):\n", len(clusters))
	for i, members := range clusters {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, strings.Join(members, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatPipelines renders the per-pipeline summary.
func FormatPipelines(pipelines []PipelineInfo) string {
	if len(pipelines) == 0 {
		return "No pipelines declared."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Pipelines (%d):\n", len(pipelines))
	for _, p := range pipelines {
		fmt.Fprintf(&b, "  %s: %d skills, %d ordering constraints", p.Name, p.SkillCount, p.DepCount)
		if p.HasGaps {
			b.WriteString(" (gaps)")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatRecent renders the most recently modified skills.
func FormatRecent(names []string) string {
	if len(names) == 0 {
		return "No skills found."
	}
	var b strings.Builder
	b.WriteString("Recently changed:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatUnconnected renders skills with no cross-references in either
// direction.
func FormatUnconnected(names []string) string {
	return fmt.Sprintf("Unconnected: %s", strings.Join(names, ", "))
}

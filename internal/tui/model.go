// Package tui renders an interactive overview of the skill corpus: totals,
// health summary, dependency clusters, pipelines, recently modified skills,
// and a navigable graph explorer.
package tui

import (
	"os"
	"path/filepath"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/slink-tools/slink/internal/config"
	"github.com/slink-tools/slink/internal/graph"
	"github.com/slink-tools/slink/internal/health"
	"github.com/slink-tools/slink/internal/skill"
)

// Overview holds the data the dashboard displays. It is refreshed as a
// whole so a render never mixes stale and fresh numbers.
type Overview struct {
	TotalSkills  int
	TotalSources int
	TotalTargets int
	ErrorCount   int
	WarningCount int
	InfoCount    int
	Clusters     [][]string
	Pipelines    []PipelineInfo
	Unconnected  []string
	Recent       []string
	Graph        *graph.Graph
}

// viewKind selects which screen the dashboard shows.
type viewKind int

const (
	viewOverview viewKind = iota
	viewGraph
)

// Model is the bubbletea model for the dashboard. The graph explorer has
// two navigation modes: browse (trail empty, cursor walks all nodes) and
// focus (trail holds the breadcrumb path, edgeCursor walks the focused
// node's edges).
type Model struct {
	cfg      *config.Config
	overview Overview
	view     viewKind
	width    int
	height   int

	cursor     int
	edgeCursor int
	trail      []string

	titleStyle   lipgloss.Style
	labelStyle   lipgloss.Style
	valueStyle   lipgloss.Style
	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	okStyle      lipgloss.Style
	dimStyle     lipgloss.Style
	selectStyle  lipgloss.Style
}

// NewModel builds the dashboard model and takes an initial snapshot.
func NewModel(cfg *config.Config) Model {
	m := Model{
		cfg:          cfg,
		titleStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		labelStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		valueStyle:   lipgloss.NewStyle().Bold(true),
		errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		warningStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		okStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
		dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		selectStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
	}
	m.overview = Snapshot(cfg)
	return m
}

// Snapshot gathers everything the dashboard shows from the current state on
// disk.
func Snapshot(cfg *config.Config) Overview {
	skills := skill.DiscoverAll(cfg.Sources.Skills)
	findings := health.Check(cfg)
	g := graph.Build(skills, skill.AllRefs(skills))

	return Overview{
		TotalSkills:  len(skills),
		TotalSources: len(cfg.Sources.Skills),
		TotalTargets: len(cfg.Global.Targets),
		ErrorCount:   health.Count(findings, health.SeverityError),
		WarningCount: health.Count(findings, health.SeverityWarning),
		InfoCount:    health.Count(findings, health.SeverityInfo),
		Clusters:     g.Clusters,
		Pipelines:    Pipelines(skills),
		Unconnected:  unconnectedSkills(g),
		Recent:       recentSkills(skills, 10),
		Graph:        g,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.overview = Snapshot(m.cfg)
			m.cursor = 0
			m.edgeCursor = 0
			m.trail = nil
			return m, nil
		case "tab":
			if m.view == viewOverview {
				m.view = viewGraph
			} else {
				m.view = viewOverview
			}
			return m, nil
		case "esc":
			return m.escape()
		case "up", "k":
			return m.move(-1), nil
		case "down", "j":
			return m.move(1), nil
		case "enter":
			return m.enter(), nil
		case "backspace":
			return m.back(), nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// escape steps out one level: focus to browse, graph to overview, overview
// to quit.
func (m Model) escape() (tea.Model, tea.Cmd) {
	if m.view == viewGraph {
		if len(m.trail) > 0 {
			m.trail = nil
			m.edgeCursor = 0
			return m, nil
		}
		m.view = viewOverview
		return m, nil
	}
	return m, tea.Quit
}

func (m Model) move(delta int) Model {
	if m.view != viewGraph {
		return m
	}
	if len(m.trail) == 0 {
		m.cursor = clamp(m.cursor+delta, len(m.overview.Graph.Nodes))
		return m
	}
	edges := NodeEdges(m.overview.Graph, m.focused())
	m.edgeCursor = clamp(m.edgeCursor+delta, len(edges))
	return m
}

// enter focuses the selected node in browse mode and follows the selected
// edge in focus mode.
func (m Model) enter() Model {
	if m.view != viewGraph {
		return m
	}
	if len(m.trail) == 0 {
		if node := m.selected(); node != "" {
			m.trail = append(m.trail, node)
			m.edgeCursor = 0
		}
		return m
	}

	edges := NodeEdges(m.overview.Graph, m.focused())
	if m.edgeCursor < len(edges) {
		m.trail = append(m.trail, edges[m.edgeCursor].Name)
		m.edgeCursor = 0
	}
	return m
}

// back pops one breadcrumb, falling out of focus mode at the trail's root.
func (m Model) back() Model {
	if m.view != viewGraph || len(m.trail) == 0 {
		return m
	}
	if len(m.trail) > 1 {
		m.trail = m.trail[:len(m.trail)-1]
	} else {
		m.trail = nil
	}
	m.edgeCursor = 0
	return m
}

// selected returns the node under the browse cursor.
func (m Model) selected() string {
	nodes := m.overview.Graph.Nodes
	if m.cursor < len(nodes) {
		return nodes[m.cursor]
	}
	return ""
}

// focused returns the breadcrumb tail, or empty in browse mode.
func (m Model) focused() string {
	if len(m.trail) == 0 {
		return ""
	}
	return m.trail[len(m.trail)-1]
}

func clamp(v, length int) int {
	if length == 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= length {
		return length - 1
	}
	return v
}

func (m Model) View() string {
	if m.view == viewGraph {
		return m.graphView()
	}
	return m.overviewView()
}

func (m Model) overviewView() string {
	o := m.overview

	header := m.titleStyle.Render("slink overview") + "\n" +
		m.labelStyle.Render("Skills: ") + m.valueStyle.Render(itoa(o.TotalSkills)) +
		m.labelStyle.Render("  Sources: ") + m.valueStyle.Render(itoa(o.TotalSources)) +
		m.labelStyle.Render("  Targets: ") + m.valueStyle.Render(itoa(o.TotalTargets))

	healthLine := m.labelStyle.Render("Health: ") + m.renderHealth(o)

	body := FormatClusters(o.Clusters) + "\n" + FormatPipelines(o.Pipelines) + "\n" + FormatRecent(o.Recent)
	if len(o.Unconnected) > 0 {
		body += "\n" + m.dimStyle.Render(FormatUnconnected(o.Unconnected))
	}

	footer := m.dimStyle.Render("tab graph · r refresh · q quit")

	return header + "\n" + healthLine + "\n\n" + body + "\n" + footer
}

func (m Model) graphView() string {
	if len(m.trail) == 0 {
		return m.browseView()
	}
	return m.focusView()
}

func (m Model) browseView() string {
	g := m.overview.Graph

	s := m.titleStyle.Render("skill graph") + "\n\n"
	if len(g.Nodes) == 0 {
		s += m.dimStyle.Render("No skills found.") + "\n"
	}
	for i, node := range g.Nodes {
		line := "  " + node
		if roles := NodeRoles(g, node); roles != "" {
			line += " " + m.dimStyle.Render("("+roles+")")
		}
		if i == m.cursor {
			line = m.selectStyle.Render("❯") + line[1:]
		}
		s += line + "\n"
	}
	s += "\n" + m.dimStyle.Render("enter focus · tab overview · q quit")
	return s
}

func (m Model) focusView() string {
	g := m.overview.Graph
	current := m.focused()

	s := m.titleStyle.Render("skill graph") + "\n"
	s += m.labelStyle.Render("Trail: ") + FormatTrail(m.trail) + "\n\n"

	s += m.valueStyle.Render(current)
	if roles := NodeRoles(g, current); roles != "" {
		s += " " + m.dimStyle.Render("("+roles+")")
	}
	s += "\n"

	edges := NodeEdges(g, current)
	if len(edges) == 0 {
		s += m.dimStyle.Render("  no references in either direction") + "\n"
	}
	for i, e := range edges {
		line := "  " + FormatEdge(e)
		if i == m.edgeCursor {
			line = m.selectStyle.Render("❯") + line[1:]
		}
		s += line + "\n"
	}

	s += "\n" + m.dimStyle.Render("enter follow · backspace back · esc browse · q quit")
	return s
}

func (m Model) renderHealth(o Overview) string {
	if o.ErrorCount == 0 && o.WarningCount == 0 {
		return m.okStyle.Render("healthy")
	}
	out := ""
	if o.ErrorCount > 0 {
		out += m.errorStyle.Render(itoa(o.ErrorCount) + " errors")
	}
	if o.WarningCount > 0 {
		if out != "" {
			out += "  "
		}
		out += m.warningStyle.Render(itoa(o.WarningCount) + " warnings")
	}
	if o.InfoCount > 0 {
		out += m.dimStyle.Render("  " + itoa(o.InfoCount) + " notes")
	}
	return out
}

// Run launches the dashboard and blocks until the user quits.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// recentSkills returns up to limit skill names ordered by manifest mtime,
// newest first.
func recentSkills(skills []*skill.Skill, limit int) []string {
	type entry struct {
		name  string
		mtime int64
	}
	entries := make([]entry, 0, len(skills))
	for _, s := range skills {
		info, err := os.Stat(filepath.Join(s.Path, skill.ManifestName))
		if err != nil {
			continue
		}
		entries = append(entries, entry{s.Name, info.ModTime().UnixNano()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].mtime > entries[j].mtime })

	if len(entries) > limit {
		entries = entries[:limit]
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// unconnectedSkills returns nodes with no edges in either direction.
func unconnectedSkills(g *graph.Graph) []string {
	connected := make(map[string]bool)
	for _, e := range g.Edges {
		connected[e.From] = true
		connected[e.To] = true
	}
	var out []string
	for _, n := range g.Nodes {
		if !connected[n] {
			out = append(out, n)
		}
	}
	return out
}

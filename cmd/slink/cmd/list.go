package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slink-tools/slink/internal/config"
	"github.com/slink-tools/slink/internal/graph"
	"github.com/slink-tools/slink/internal/skill"
)

func runListMode(cmd *cobra.Command, cfg *config.Config) error {
	switch {
	case groups:
		return listGroups(cmd.OutOrStdout(), cfg)
	case listRefs != "":
		return listReferences(cmd.OutOrStdout(), cfg, listRefs)
	case listMiss:
		return listMissing(cmd.OutOrStdout(), cfg)
	default:
		return listDefault(cmd.OutOrStdout(), cfg)
	}
}

// listDefault enumerates sources and the per-scope skill declarations,
// marking entries no source resolves.
func listDefault(out io.Writer, cfg *config.Config) error {
	skills := skill.DiscoverAll(cfg.Sources.Skills)
	byName := skill.Map(skills)

	fmt.Fprintln(out, cyan("--- Sources ---"))
	for _, source := range cfg.Sources.Skills {
		fmt.Fprintf(out, "  %s\n", source)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cyan("--- Global scope ---"))
	fmt.Fprintf(out, "Skills: %d\n", len(cfg.Global.Skills))
	for _, name := range cfg.Global.Skills {
		printSkillLine(out, byName, name, "")
	}

	for _, projectPath := range sortedProjects(cfg) {
		project := cfg.Projects[projectPath]

		all := []string{}
		if project.Inherits() {
			all = append(all, cfg.Global.Skills...)
		}
		all = append(all, project.Skills...)
		all = uniqueSorted(all)

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s %s\n", cyan("--- Project:"), projectPath)
		fmt.Fprintf(out, "Skills: %d (inherit: %t)\n", len(all), project.Inherits())

		globalSet := make(map[string]bool, len(cfg.Global.Skills))
		for _, name := range cfg.Global.Skills {
			globalSet[name] = true
		}
		for _, name := range all {
			origin := "project"
			if globalSet[name] {
				origin = "global"
			}
			printSkillLine(out, byName, name, origin)
		}
	}

	return nil
}

func printSkillLine(out io.Writer, byName map[string]*skill.Skill, name, origin string) {
	s, ok := byName[name]
	if !ok {
		fmt.Fprintf(out, "  %s %s %s\n", red("✗"), name, red("(not found)"))
		return
	}
	if origin == "" {
		fmt.Fprintf(out, "  %s %s %s\n", green("✓"), name, dim("("+s.Path+")"))
		return
	}
	fmt.Fprintf(out, "  %s %s %s\n", green("✓"), name, dim("("+origin+", "+s.Path+")"))
}

// listGroups groups skills by mutual-reference cluster.
func listGroups(out io.Writer, cfg *config.Config) error {
	skills := skill.DiscoverAll(cfg.Sources.Skills)
	g := graph.Build(skills, skill.AllRefs(skills))

	fmt.Fprintln(out, cyan("--- Skills by cluster ---"))

	if len(g.Clusters) == 0 {
		fmt.Fprintln(out, dim("No clusters detected (no circular references)"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Showing all skills:")
		for _, s := range skills {
			fmt.Fprintf(out, "  • %s\n", s.Name)
		}
		return nil
	}

	clustered := make(map[string]bool)
	for i, cluster := range g.Clusters {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s %s\n", yellow(fmt.Sprintf("Cluster %d:", i+1)), dim(fmt.Sprintf("(%d skills)", len(cluster))))
		for _, name := range cluster {
			clustered[name] = true
			fmt.Fprintf(out, "  • %s\n", name)
		}
	}

	var unclustered []string
	for _, s := range skills {
		if !clustered[s.Name] {
			unclustered = append(unclustered, s.Name)
		}
	}
	if len(unclustered) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, dim("Unclustered skills:"))
		for _, name := range unclustered {
			fmt.Fprintf(out, "  • %s\n", name)
		}
	}

	return nil
}

// listReferences shows the incoming and outgoing cross-references of one
// skill.
func listReferences(out io.Writer, cfg *config.Config, name string) error {
	skills := skill.DiscoverAll(cfg.Sources.Skills)
	if _, ok := skill.Map(skills)[name]; !ok {
		return fmt.Errorf("skill %q not found in any source", name)
	}

	refs := skill.AllRefs(skills)

	var outgoing []string
	for _, r := range refs[name] {
		outgoing = append(outgoing, r.Target)
	}
	outgoing = uniqueSorted(outgoing)

	var incoming []string
	for source, rs := range refs {
		for _, r := range rs {
			if r.Target == name {
				incoming = append(incoming, source)
				break
			}
		}
	}
	incoming = uniqueSorted(incoming)

	fmt.Fprintf(out, "%s %s\n", cyan("--- References for"), cyan(name))

	fmt.Fprintf(out, "\n%s (%d)\n", yellow("Outgoing:"), len(outgoing))
	if len(outgoing) == 0 {
		fmt.Fprintf(out, "  %s\n", dim("(none)"))
	}
	for _, target := range outgoing {
		fmt.Fprintf(out, "  → %s\n", target)
	}

	fmt.Fprintf(out, "\n%s (%d)\n", green("Incoming:"), len(incoming))
	if len(incoming) == 0 {
		fmt.Fprintf(out, "  %s\n", dim("(none)"))
	}
	for _, source := range incoming {
		fmt.Fprintf(out, "  ← %s\n", source)
	}

	return nil
}

// listMissing shows referenced skill names no source contains.
func listMissing(out io.Writer, cfg *config.Config) error {
	skills := skill.DiscoverAll(cfg.Sources.Skills)
	byName := skill.Map(skills)

	missing := make(map[string][]string) // missing name -> referencing skills
	for source, rs := range skill.AllRefs(skills) {
		for _, r := range rs {
			if _, ok := byName[r.Target]; !ok {
				missing[r.Target] = append(missing[r.Target], source)
			}
		}
	}

	fmt.Fprintln(out, cyan("--- Missing referenced skills ---"))
	if len(missing) == 0 {
		fmt.Fprintln(out, green("All cross-references resolve."))
		return nil
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(out, "  %s %s %s\n", red("✗"), name, dim("referenced by "+joinSorted(missing[name])))
	}

	return nil
}

func sortedProjects(cfg *config.Config) []string {
	paths := make([]string, 0, len(cfg.Projects))
	for path := range cfg.Projects {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func uniqueSorted(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func joinSorted(names []string) string {
	return strings.Join(uniqueSorted(names), ", ")
}

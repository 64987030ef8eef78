package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slink-tools/slink/internal/graph"
	"github.com/slink-tools/slink/internal/skill"
)

var (
	graphFormat   string
	graphOutput   string
	graphTag      string
	graphPipeline string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Show the skill dependency graph",
	Long: `Build the cross-reference and pipeline graph over every discovered
skill and render it as text, DOT, JSON, or Mermaid. Clusters, roots,
leaves, and bridge skills are annotated.`,
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringVarP(&graphFormat, "format", "f", "text", "output format: text, dot, json, mermaid")
	graphCmd.Flags().StringVarP(&graphOutput, "output", "o", "", "write to file instead of stdout")
	graphCmd.Flags().StringVar(&graphTag, "tag", "", "restrict to skills carrying this tag")
	graphCmd.Flags().StringVar(&graphPipeline, "pipeline", "", "restrict to skills in this pipeline")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	skills := skill.DiscoverAll(cfg.Sources.Skills)
	crossrefs := skill.AllRefs(skills)

	var g *graph.Graph
	switch {
	case graphTag != "":
		g = graph.FilterTag(skills, crossrefs, graphTag)
	case graphPipeline != "":
		g = graph.FilterPipeline(skills, crossrefs, graphPipeline)
	default:
		g = graph.Build(skills, crossrefs)
	}

	var rendered string
	switch graphFormat {
	case "text":
		rendered = g.Text()
	case "dot":
		rendered = g.DOT()
	case "json":
		rendered, err = g.JSON()
		if err != nil {
			return err
		}
	case "mermaid":
		rendered = g.Mermaid()
	default:
		return fmt.Errorf("unknown format %q (expected text, dot, json, or mermaid)", graphFormat)
	}

	if graphOutput != "" {
		if err := os.WriteFile(graphOutput, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", graphOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", green("✓"), graphOutput)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

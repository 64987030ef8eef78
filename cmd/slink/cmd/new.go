package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/slink-tools/slink/internal/skill"
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new skill in the first configured source",
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := args[0]

	if !skill.ValidName(name) {
		return fmt.Errorf("invalid skill name %q: use lowercase letters, digits, and single hyphens", name)
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Sources.Skills) == 0 {
		return fmt.Errorf("no skill sources configured")
	}

	dir := filepath.Join(cfg.Sources.Skills[0], name)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%s already exists", dir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	manifest := fmt.Sprintf("---\nname: %s\ndescription: TODO describe what this skill does.\n---\n\n# %s\n\nDocument the skill here.\n", name, name)
	manifestPath := filepath.Join(dir, skill.ManifestName)
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", manifestPath, err)
	}

	fmt.Fprintf(out, "%s created %s\n", green("✓"), manifestPath)
	fmt.Fprintf(out, "%s\n", dim("Edit the description, then declare the skill in a scope to deploy it."))
	return nil
}

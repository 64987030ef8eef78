package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/slink-tools/slink/internal/skill"
)

var validateCmd = &cobra.Command{
	Use:   "validate [skill-or-directory]",
	Short: "Validate skill manifests",
	Long: `Validate SKILL.md manifests against the naming and front matter
rules. All findings for a skill are reported at once.

With no argument, every skill in every configured source is validated.
An existing directory argument validates the skills directly inside it
(or the directory itself when it contains a SKILL.md). Anything else is
treated as a skill name and resolved through the configured sources.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	dirs, err := validateDirs(args)
	if err != nil {
		return err
	}

	failed := 0
	for _, dir := range dirs {
		result := skill.ValidateDir(dir)
		if result.OK() {
			fmt.Fprintf(out, "%s %s\n", green("✓"), dir)
			continue
		}
		failed++
		fmt.Fprintf(out, "%s %s\n", red("✗"), dir)
		for _, finding := range result.Findings {
			fmt.Fprintf(out, "    %s\n", finding)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d validated, %d failed\n", len(dirs), failed)

	if failed > 0 {
		return fmt.Errorf("validation failed for %d skill(s)", failed)
	}
	return nil
}

// validateDirs decides which skill directories the argument selects.
func validateDirs(args []string) ([]string, error) {
	if len(args) == 0 {
		cfg, _, err := loadConfig()
		if err != nil {
			return nil, err
		}
		dirs := skill.ManifestDirs(cfg.Sources.Skills)
		if len(dirs) == 0 {
			return nil, fmt.Errorf("no skills found in any configured source")
		}
		return dirs, nil
	}

	arg := args[0]
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return dirsUnder(arg)
	}

	// Not an existing directory, treat it as a skill name.
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dir, err := skill.NewResolver(cfg.Sources.Skills).Resolve(arg)
	if err != nil {
		return nil, err
	}
	return []string{dir}, nil
}

// dirsUnder returns the skill directories directly inside dir, or dir
// itself when it contains a manifest.
func dirsUnder(dir string) ([]string, error) {
	if _, err := os.Stat(filepath.Join(dir, skill.ManifestName)); err == nil {
		return []string{dir}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(filepath.Join(sub, skill.ManifestName)); err == nil {
			dirs = append(dirs, sub)
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no skills found in %s", dir)
	}
	return dirs, nil
}

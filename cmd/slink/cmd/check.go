package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slink-tools/slink/internal/health"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report the health of the skill corpus",
	Long: `Check every source and scope and report aggregated findings:
validation failures and unresolvable declared skills (errors), dangling
cross-references (warnings), and discovered skills no scope declares
(notes). The exit code is non-zero only when an error-level finding
exists.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	findings := health.Check(cfg)
	for _, f := range findings {
		switch f.Severity {
		case health.SeverityError:
			fmt.Fprintf(out, "%s %s: %s\n", red("✗"), f.Skill, f.Message)
		case health.SeverityWarning:
			fmt.Fprintf(out, "%s %s: %s\n", yellow("!"), f.Skill, f.Message)
		default:
			fmt.Fprintf(out, "%s %s: %s\n", dim("·"), f.Skill, dim(f.Message))
		}
	}

	errors := health.Count(findings, health.SeverityError)
	warnings := health.Count(findings, health.SeverityWarning)
	notes := health.Count(findings, health.SeverityInfo)

	if len(findings) > 0 {
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d errors, %d warnings, %d notes\n", errors, warnings, notes)

	if errors > 0 {
		return fmt.Errorf("check found %d error(s)", errors)
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/slink-tools/slink/internal/config"
	"github.com/slink-tools/slink/internal/deploy"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

func runInstallMode(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, dryRun bool) error {
	out := cmd.OutOrStdout()

	installer := deploy.NewInstaller(cfg, logger)
	report := installer.Install(dryRun)

	if dryRun {
		fmt.Fprintln(out, cyan("--- Dry run, nothing will be changed ---"))
	}

	printRunReport(cmd, report)

	if report.Failed() {
		return fmt.Errorf("install completed with failures")
	}
	if report.Changed() == 0 {
		fmt.Fprintln(out, "Nothing to do, all links up to date.")
	}
	return nil
}

func runCleanMode(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	out := cmd.OutOrStdout()

	installer := deploy.NewInstaller(cfg, logger)
	report, err := installer.Clean()
	if err != nil {
		return err
	}

	printRunReport(cmd, report)

	if report.Changed() == 0 {
		fmt.Fprintln(out, "Nothing to clean.")
	}
	return nil
}

// printRunReport renders resolution and validation failures first, then
// the per-target actions.
func printRunReport(cmd *cobra.Command, report *deploy.RunReport) {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	for _, err := range report.Resolution {
		fmt.Fprintf(errOut, "%s %v\n", red("✗"), err)
	}
	for _, result := range report.Validation {
		fmt.Fprintf(errOut, "%s %s\n", red("✗"), result.Path)
		for _, finding := range result.Findings {
			fmt.Fprintf(errOut, "    %s\n", finding)
		}
	}

	for _, target := range report.Targets {
		if target.Skipped {
			fmt.Fprintf(out, "%s %s %s\n", dim("-"), target.Target, dim("(not managed, skipped)"))
			continue
		}
		if len(target.Actions) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s\n", cyan(target.Target))
		for _, action := range target.Actions {
			printAction(out, errOut, action)
		}
	}
}

func printAction(out, errOut io.Writer, action deploy.Action) {
	switch action.Kind {
	case deploy.ActionAdopt:
		fmt.Fprintf(out, "  %s adopted %s\n", green("✓"), dim(action.Dest))
	case deploy.ActionCreate:
		fmt.Fprintf(out, "  %s %s %s\n", green("✓"), action.Skill, dim("-> "+action.Source))
	case deploy.ActionRelink:
		note := action.Note
		if note == "" {
			note = "relinked"
		}
		fmt.Fprintf(out, "  %s %s %s\n", green("✓"), action.Skill, dim(note+" -> "+action.Source))
	case deploy.ActionUnchanged:
		fmt.Fprintf(out, "  %s %s %s\n", dim("="), action.Skill, dim("(up to date)"))
	case deploy.ActionConflict:
		fmt.Fprintf(errOut, "  %s %s %s\n", yellow("!"), action.Dest, yellow("exists and is not managed by slink, skipped"))
	case deploy.ActionRemove:
		fmt.Fprintf(out, "  %s removed %s\n", green("✓"), dim(action.Dest))
	case deploy.ActionSkip:
		fmt.Fprintf(out, "  %s %s %s\n", dim("-"), action.Dest, dim("("+action.Note+")"))
	case deploy.ActionError:
		subject := action.Skill
		if subject == "" {
			subject = action.Dest
		}
		fmt.Fprintf(errOut, "  %s %s: %s\n", red("✗"), subject, action.Note)
	}
}

package deploy

import (
	"log/slog"
	"sort"

	"github.com/slink-tools/slink/internal/config"
	"github.com/slink-tools/slink/internal/skill"
)

// RunReport aggregates the outcome of one whole install or clean run.
type RunReport struct {
	// Resolution holds one error per declared skill that no source
	// contains.
	Resolution []error

	// Validation holds the failed validation results for declared skills
	// that resolved but violate the manifest rules.
	Validation []*skill.ValidationResult

	// Targets holds the per-target link reports in processing order.
	Targets []*LinkReport
}

// Failed reports whether any resolution, validation, or link-level error
// occurred. Unmanaged conflicts are warnings and do not fail the run.
func (r *RunReport) Failed() bool {
	if len(r.Resolution) > 0 || len(r.Validation) > 0 {
		return true
	}
	for _, t := range r.Targets {
		if t.Errors() > 0 {
			return true
		}
	}
	return false
}

// Changed returns the total number of effective mutations across targets.
func (r *RunReport) Changed() int {
	n := 0
	for _, t := range r.Targets {
		n += t.Changed()
	}
	return n
}

// Installer sequences a run: validate every referenced skill, then
// reconcile every target against its desired skill set.
//
// Concurrent invocations against the same target directory are not safe;
// marker placement and clean may interleave. Callers must not run two
// installs or cleans against one target at the same time.
type Installer struct {
	cfg      *config.Config
	resolver *skill.Resolver
	logger   *slog.Logger
}

// NewInstaller creates an installer for the given configuration.
func NewInstaller(cfg *config.Config, logger *slog.Logger) *Installer {
	return &Installer{
		cfg:      cfg,
		resolver: skill.NewResolver(cfg.Sources.Skills),
		logger:   logger,
	}
}

// Resolver exposes the installer's resolver for read-only callers.
func (i *Installer) Resolver() *skill.Resolver {
	return i.resolver
}

// Install runs the full install: every skill name referenced by any scope
// is resolved and validated first; installation then proceeds for every
// resolvable, valid entry while the failures are collected in the report.
// No target receives a link for a skill that failed the pre-check.
func (i *Installer) Install(dryRun bool) *RunReport {
	report := &RunReport{}
	usable := i.precheck(report)

	reconciler := NewReconciler(i.resolver, i.logger)

	globalDesired := filterNames(dedupe(i.cfg.Global.Skills), usable)
	for _, target := range i.cfg.Global.Targets {
		report.Targets = append(report.Targets, reconciler.Reconcile(target, globalDesired, dryRun))
	}

	for _, projectPath := range i.projectPaths() {
		project := i.cfg.Projects[projectPath]

		var names []string
		if project.Inherits() {
			names = append(names, i.cfg.Global.Skills...)
		}
		names = append(names, project.Skills...)
		desired := filterNames(dedupe(names), usable)

		for _, target := range ProjectTargets(projectPath) {
			report.Targets = append(report.Targets, reconciler.Reconcile(target, desired, dryRun))
		}
	}

	return report
}

// Clean inverts installation for every known target: all global targets
// plus every project's per-harness targets.
func (i *Installer) Clean() (*RunReport, error) {
	report := &RunReport{}

	targets := append([]string{}, i.cfg.Global.Targets...)
	for _, projectPath := range i.projectPaths() {
		targets = append(targets, ProjectTargets(projectPath)...)
	}

	for _, target := range targets {
		linkReport, err := Clean(target, i.logger)
		if err != nil {
			return nil, err
		}
		report.Targets = append(report.Targets, linkReport)
	}

	return report, nil
}

// precheck resolves and validates every referenced skill once, collecting
// all failures. It returns the set of names safe to link.
func (i *Installer) precheck(report *RunReport) map[string]bool {
	referenced := append([]string{}, i.cfg.Global.Skills...)
	for _, project := range i.cfg.Projects {
		referenced = append(referenced, project.Skills...)
	}

	usable := make(map[string]bool)
	for _, name := range dedupe(referenced) {
		dir, err := i.resolver.Resolve(name)
		if err != nil {
			report.Resolution = append(report.Resolution, err)
			continue
		}
		if result := skill.ValidateDir(dir); !result.OK() {
			report.Validation = append(report.Validation, result)
			continue
		}
		usable[name] = true
	}
	return usable
}

// projectPaths returns the configured project paths in stable order.
func (i *Installer) projectPaths() []string {
	paths := make([]string, 0, len(i.cfg.Projects))
	for path := range i.cfg.Projects {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func filterNames(names []string, usable map[string]bool) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if usable[name] {
			out = append(out, name)
		}
	}
	return out
}

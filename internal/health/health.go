// Package health aggregates configuration-wide findings about the skill
// corpus: validation failures, unresolvable declared skills, dangling
// cross-references, and skills no scope uses.
package health

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/slink-tools/slink/internal/config"
	"github.com/slink-tools/slink/internal/skill"
)

// Severity classifies a finding.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Finding is one health observation about a skill.
type Finding struct {
	Severity Severity
	Skill    string
	Message  string
}

// Check inspects every discovered and declared skill. It is read-only and
// never stops at the first problem.
func Check(cfg *config.Config) []Finding {
	var findings []Finding

	resolver := skill.NewResolver(cfg.Sources.Skills)
	skills := skill.DiscoverAll(cfg.Sources.Skills)
	byName := skill.Map(skills)

	// Validation failures across every manifest-bearing directory. The
	// raw directory enumeration is deliberate: a manifest too broken to
	// load must still show up here, attributed by directory name.
	for _, dir := range skill.ManifestDirs(cfg.Sources.Skills) {
		if result := skill.ValidateDir(dir); !result.OK() {
			for _, f := range result.Findings {
				findings = append(findings, Finding{
					Severity: SeverityError,
					Skill:    filepath.Base(dir),
					Message:  f.String(),
				})
			}
		}
	}

	// Declared skills that no source resolves.
	declared := declaredSkills(cfg)
	for _, name := range declared {
		if _, err := resolver.Resolve(name); err != nil {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Skill:    name,
				Message:  "declared in configuration but not found in any source",
			})
		}
	}

	// Dangling cross-references.
	for source, refs := range skill.AllRefs(skills) {
		for _, r := range refs {
			if _, ok := byName[r.Target]; !ok {
				findings = append(findings, Finding{
					Severity: SeverityWarning,
					Skill:    source,
					Message:  fmt.Sprintf("references %q, which no source contains", r.Target),
				})
			}
		}
	}

	// Discovered skills no scope declares.
	declaredSet := make(map[string]bool, len(declared))
	for _, name := range declared {
		declaredSet[name] = true
	}
	for _, s := range skills {
		if !declaredSet[s.Name] {
			findings = append(findings, Finding{
				Severity: SeverityInfo,
				Skill:    s.Name,
				Message:  "available but not declared in any scope",
			})
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Severity != findings[j].Severity {
			return findings[i].Severity < findings[j].Severity
		}
		return findings[i].Skill < findings[j].Skill
	})
	return findings
}

// Count returns the number of findings at the given severity.
func Count(findings []Finding, severity Severity) int {
	n := 0
	for _, f := range findings {
		if f.Severity == severity {
			n++
		}
	}
	return n
}

// declaredSkills returns every skill name referenced by any scope, deduplicated.
func declaredSkills(cfg *config.Config) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(list []string) {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	add(cfg.Global.Skills)
	for _, project := range cfg.Projects {
		add(project.Skills)
	}

	sort.Strings(names)
	return names
}

package deploy

import "path/filepath"

// Harness describes a consuming tool and where it expects project-local
// skills.
type Harness struct {
	// Name is the harness identifier (e.g., "claude").
	Name string

	// SkillsDir is the skills directory relative to a project root.
	SkillsDir string
}

// Harnesses are the consuming tools every project scope expands to.
var Harnesses = []Harness{
	{Name: "claude", SkillsDir: filepath.Join(".claude", "skills")},
	{Name: "opencode", SkillsDir: filepath.Join(".opencode", "skill")},
	{Name: "kodelet", SkillsDir: filepath.Join(".kodelet", "skills")},
}

// ProjectTargets expands a project path into its per-harness target
// directories.
func ProjectTargets(projectPath string) []string {
	targets := make([]string, 0, len(Harnesses))
	for _, h := range Harnesses {
		targets = append(targets, filepath.Join(projectPath, h.SkillsDir))
	}
	return targets
}

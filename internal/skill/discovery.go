package skill

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverAll loads every skill found in the given source directories, in
// priority order. A skill name seen in an earlier source shadows the same
// name in later sources. Directories whose manifest fails to load are
// skipped; callers that must surface those use ManifestDirs and validate
// each directory.
func DiscoverAll(sources []string) []*Skill {
	seen := make(map[string]bool)
	var skills []*Skill

	for _, source := range sources {
		entries, err := os.ReadDir(source)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}

			dir := filepath.Join(source, entry.Name())
			if _, err := os.Stat(filepath.Join(dir, ManifestName)); err != nil {
				continue
			}

			s, err := LoadFromDir(dir)
			if err != nil || s.Name == "" {
				continue
			}
			if seen[s.Name] {
				continue
			}
			seen[s.Name] = true
			skills = append(skills, s)
		}
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills
}

// ManifestDirs returns every immediate subdirectory of the sources that
// contains a manifest file, loadable or not. A directory name seen in an
// earlier source shadows the same name in later sources. This is the
// enumeration validation runs over: a skill whose manifest cannot even be
// parsed must still be found and reported.
func ManifestDirs(sources []string) []string {
	seen := make(map[string]bool)
	var dirs []string

	for _, source := range sources {
		entries, err := os.ReadDir(source)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if seen[entry.Name()] {
				continue
			}

			dir := filepath.Join(source, entry.Name())
			if _, err := os.Stat(filepath.Join(dir, ManifestName)); err != nil {
				continue
			}
			seen[entry.Name()] = true
			dirs = append(dirs, dir)
		}
	}

	sort.Strings(dirs)
	return dirs
}

// Map indexes skills by name.
func Map(skills []*Skill) map[string]*Skill {
	m := make(map[string]*Skill, len(skills))
	for _, s := range skills {
		m[s.Name] = s
	}
	return m
}

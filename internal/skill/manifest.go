package skill

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// splitFrontMatter splits manifest content into the raw front matter block
// and the body. The delimiters themselves are not included in either part.
// The two failure shapes are distinguished so validation can report which
// marker is broken.
func splitFrontMatter(content string) (front, body string, err error) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontMatterDelimiter {
		return "", "", fmt.Errorf("no opening front matter marker %q", frontMatterDelimiter)
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterDelimiter {
			front = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return front, body, nil
		}
	}

	return "", "", fmt.Errorf("no closing front matter marker %q", frontMatterDelimiter)
}

// ParseManifest parses SKILL.md content into its front matter and body.
func ParseManifest(content []byte) (*Manifest, string, error) {
	front, body, err := splitFrontMatter(string(content))
	if err != nil {
		return nil, "", err
	}

	var m Manifest
	if err := yaml.Unmarshal([]byte(front), &m); err != nil {
		return nil, "", fmt.Errorf("decode front matter: %w", err)
	}

	return &m, body, nil
}

// LoadFromDir loads a skill from a directory containing a SKILL.md
// manifest. The returned Skill carries the directory as its Path. Loading
// does not validate; use ValidateDir for the full rule set.
func LoadFromDir(dir string) (*Skill, error) {
	content, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("read skill manifest: %w", err)
	}

	m, body, err := ParseManifest(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Join(dir, ManifestName), err)
	}

	return &Skill{
		Name:        m.Name,
		Description: m.Description,
		Path:        dir,
		Tags:        m.Tags,
		Pipeline:    m.Pipeline,
		Body:        body,
	}, nil
}

// Package skill handles skill manifests: parsing, resolution across
// ordered source directories, validation, and cross-reference extraction.
// Skills are opaque capability bundles realized as directories containing a
// SKILL.md manifest with YAML front matter.
package skill

// ManifestName is the expected skill manifest filename.
const ManifestName = "SKILL.md"

// MaxNameLength is the maximum permitted skill name length.
const MaxNameLength = 64

// MaxDescriptionLength is the maximum permitted description length.
const MaxDescriptionLength = 1024

// Skill represents a resolved skill.
type Skill struct {
	// Name is the unique identifier declared in the front matter. It must
	// equal the containing directory's base name.
	Name string

	// Description is a human-readable description of the skill.
	Description string

	// Path is the resolved skill directory.
	Path string

	// Tags are optional labels used for graph filtering.
	Tags []string

	// Pipeline maps pipeline names to this skill's ordering declarations
	// within them.
	Pipeline map[string]Stage

	// Body is the Markdown content after the front matter. Not processed
	// beyond cross-reference extraction.
	Body string
}

// Stage declares ordering constraints for a skill within one pipeline.
type Stage struct {
	// After lists skills this skill must run after.
	After []string `yaml:"after,omitempty"`

	// Before lists skills this skill must run before.
	Before []string `yaml:"before,omitempty"`
}

// Manifest is the YAML front matter structure in a SKILL.md file.
type Manifest struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Tags        []string         `yaml:"tags,omitempty"`
	Pipeline    map[string]Stage `yaml:"pipeline,omitempty"`
}

// CrossRef is a reference from one skill's body to another skill.
type CrossRef struct {
	// Target is the referenced skill name.
	Target string

	// Line is the 1-based line number of the reference in SKILL.md.
	Line int
}

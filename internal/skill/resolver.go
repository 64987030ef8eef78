package skill

import (
	"os"
	"path/filepath"

	"github.com/slink-tools/slink/internal/errors"
)

// Resolver maps skill names to concrete skill directories by searching an
// ordered list of source directories. Earlier sources shadow later ones;
// the first directory containing <source>/<name>/SKILL.md wins.
type Resolver struct {
	sources []string
}

// NewResolver creates a resolver over the given source directories, in
// priority order. Duplicate entries are not deduplicated; they just waste
// lookups.
func NewResolver(sources []string) *Resolver {
	return &Resolver{sources: sources}
}

// Sources returns the configured source directories in priority order.
func (r *Resolver) Sources() []string {
	return r.sources
}

// Resolve returns the skill directory for name. If no source contains the
// skill, the error enumerates every searched path.
func (r *Resolver) Resolve(name string) (string, error) {
	searched := make([]string, 0, len(r.sources))
	for _, source := range r.sources {
		dir := filepath.Join(source, name)
		searched = append(searched, dir)
		if _, err := os.Stat(filepath.Join(dir, ManifestName)); err == nil {
			return dir, nil
		}
	}
	return "", errors.SkillNotFound(name, searched)
}

// ResolveSkill resolves name and loads the skill it points at.
func (r *Resolver) ResolveSkill(name string) (*Skill, error) {
	dir, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return LoadFromDir(dir)
}

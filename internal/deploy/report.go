package deploy

// ActionKind classifies one reconciler or clean action.
type ActionKind string

const (
	// ActionAdopt marks a target directory created and/or marked managed.
	ActionAdopt ActionKind = "adopt"

	// ActionCreate marks a new symbolic link.
	ActionCreate ActionKind = "create"

	// ActionRelink marks an existing entry replaced with a fresh link.
	ActionRelink ActionKind = "relink"

	// ActionUnchanged marks a link that already pointed at the resolved
	// skill and was left alone.
	ActionUnchanged ActionKind = "unchanged"

	// ActionConflict marks an unmanaged entry that was skipped, not
	// touched.
	ActionConflict ActionKind = "conflict"

	// ActionRemove marks a link (or the marker, or the emptied directory)
	// removed by clean.
	ActionRemove ActionKind = "remove"

	// ActionSkip marks an entry clean left alone because slink does not
	// own it.
	ActionSkip ActionKind = "skip"

	// ActionError marks an entry that could not be processed.
	ActionError ActionKind = "error"
)

// Action is one reconciler decision for one destination path. In dry-run
// mode actions describe what would happen; nothing is mutated.
type Action struct {
	Kind   ActionKind
	Skill  string
	Dest   string
	Source string // resolved skill directory, when applicable
	Note   string
}

// LinkReport is the outcome of reconciling or cleaning one target
// directory.
type LinkReport struct {
	Target  string
	Skipped bool // clean on an unmanaged target
	Actions []Action
}

func (r *LinkReport) count(kind ActionKind) int {
	n := 0
	for _, a := range r.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Changed returns the number of effective mutations (adoptions, created
// links, replaced links, removals).
func (r *LinkReport) Changed() int {
	return r.count(ActionAdopt) + r.count(ActionCreate) + r.count(ActionRelink) + r.count(ActionRemove)
}

// Conflicts returns the number of unmanaged conflicts.
func (r *LinkReport) Conflicts() int {
	return r.count(ActionConflict)
}

// Errors returns the number of failed entries.
func (r *LinkReport) Errors() int {
	return r.count(ActionError)
}

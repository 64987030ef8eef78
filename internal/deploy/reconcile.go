package deploy

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/slink-tools/slink/internal/errors"
	"github.com/slink-tools/slink/internal/skill"
)

// Reconciler computes and applies the diff between the desired link set and
// the current filesystem state of one target directory at a time.
//
// Applying is additive and idempotent: links no longer desired are not
// pruned here. Clean is the authoritative remove-everything operation.
type Reconciler struct {
	resolver *skill.Resolver
	logger   *slog.Logger
}

// NewReconciler creates a reconciler using the given resolver.
func NewReconciler(resolver *skill.Resolver, logger *slog.Logger) *Reconciler {
	return &Reconciler{resolver: resolver, logger: logger}
}

// Reconcile ensures every named skill is linked inside target. With dryRun
// set, the same decisions are computed but every mutation is replaced by a
// descriptive record and the filesystem is left untouched.
//
// Failures are per-entry: an unresolvable skill or an unmanaged conflict is
// recorded and the remaining entries still proceed.
func (r *Reconciler) Reconcile(target string, names []string, dryRun bool) *LinkReport {
	report := &LinkReport{Target: target}

	info, err := os.Lstat(target)
	if err == nil && !info.IsDir() {
		// A regular file squatting on the target path is fatal for this
		// target; it is never overwritten.
		report.Actions = append(report.Actions, Action{
			Kind: ActionError,
			Dest: target,
			Note: errors.TargetNotDirectory(target).Error(),
		})
		return report
	}

	// The conflict policy below uses the managed state from before this
	// run: adoption itself must not grant the right to replace
	// pre-existing content.
	wasManaged := IsManaged(target)

	if !wasManaged {
		report.Actions = append(report.Actions, Action{
			Kind: ActionAdopt,
			Dest: target,
			Note: "place ownership marker",
		})
	}
	if !dryRun {
		if err := os.MkdirAll(target, 0755); err != nil {
			report.Actions = append(report.Actions, Action{
				Kind: ActionError,
				Dest: target,
				Note: "create target directory: " + err.Error(),
			})
			return report
		}
		if err := PlaceMarker(target); err != nil {
			report.Actions = append(report.Actions, Action{
				Kind: ActionError,
				Dest: target,
				Note: "place marker: " + err.Error(),
			})
			return report
		}
	}

	for _, name := range names {
		report.Actions = append(report.Actions, r.reconcileEntry(target, name, wasManaged, dryRun))
	}

	r.logger.Debug("reconciled target",
		"target", target,
		"dry_run", dryRun,
		"changed", report.Changed(),
		"conflicts", report.Conflicts(),
		"errors", report.Errors())

	return report
}

func (r *Reconciler) reconcileEntry(target, name string, wasManaged, dryRun bool) Action {
	source, err := r.resolver.Resolve(name)
	if err != nil {
		return Action{Kind: ActionError, Skill: name, Note: err.Error()}
	}

	dest := filepath.Join(target, name)
	action := Action{Skill: name, Dest: dest, Source: source}

	info, err := os.Lstat(dest)
	switch {
	case os.IsNotExist(err):
		action.Kind = ActionCreate
		if !dryRun {
			if lerr := os.Symlink(source, dest); lerr != nil {
				return Action{Kind: ActionError, Skill: name, Dest: dest,
					Note: "create link: " + lerr.Error()}
			}
		}

	case err != nil:
		return Action{Kind: ActionError, Skill: name, Dest: dest, Note: err.Error()}

	case info.Mode()&os.ModeSymlink != 0:
		current, _ := os.Readlink(dest)
		if current == source {
			action.Kind = ActionUnchanged
			break
		}
		// Re-pointing a skill to a different source on re-run is a normal
		// operation, not an error.
		action.Kind = ActionRelink
		action.Note = "was " + current
		if !dryRun {
			if rerr := os.Remove(dest); rerr != nil {
				return Action{Kind: ActionError, Skill: name, Dest: dest,
					Note: "remove stale link: " + rerr.Error()}
			}
			if lerr := os.Symlink(source, dest); lerr != nil {
				return Action{Kind: ActionError, Skill: name, Dest: dest,
					Note: "recreate link: " + lerr.Error()}
			}
		}

	default:
		// Regular file or directory at the destination.
		if !wasManaged {
			action.Kind = ActionConflict
			action.Note = errors.UnmanagedConflict(dest).Error()
			break
		}
		action.Kind = ActionRelink
		action.Note = "replaced non-link entry"
		if !dryRun {
			if rerr := os.RemoveAll(dest); rerr != nil {
				return Action{Kind: ActionError, Skill: name, Dest: dest,
					Note: "remove entry: " + rerr.Error()}
			}
			if lerr := os.Symlink(source, dest); lerr != nil {
				return Action{Kind: ActionError, Skill: name, Dest: dest,
					Note: "recreate link: " + lerr.Error()}
			}
		}
	}

	return action
}

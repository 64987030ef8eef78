package deploy

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Clean removes every symbolic-link child of a managed target, then the
// marker, then the directory itself if nothing else remains. It is the
// exact inverse of first-time adoption. Unmanaged targets are never
// touched.
//
// Regular files and directories inside a managed target are left alone;
// slink only owns the links it created.
func Clean(target string, logger *slog.Logger) (*LinkReport, error) {
	report := &LinkReport{Target: target}

	if !IsManaged(target) {
		report.Skipped = true
		logger.Debug("clean skipped unmanaged target", "target", target)
		return report, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, err
	}

	leftover := 0
	for _, entry := range entries {
		if entry.Name() == MarkerName {
			continue
		}

		path := filepath.Join(target, entry.Name())
		if entry.Type()&os.ModeSymlink == 0 {
			leftover++
			report.Actions = append(report.Actions, Action{
				Kind: ActionSkip,
				Dest: path,
				Note: "not a managed link",
			})
			continue
		}

		if err := os.Remove(path); err != nil {
			report.Actions = append(report.Actions, Action{
				Kind: ActionError,
				Dest: path,
				Note: "remove link: " + err.Error(),
			})
			leftover++
			continue
		}
		report.Actions = append(report.Actions, Action{
			Kind:  ActionRemove,
			Skill: entry.Name(),
			Dest:  path,
		})
	}

	if err := ClearMarker(target); err != nil {
		return nil, err
	}
	report.Actions = append(report.Actions, Action{
		Kind: ActionRemove,
		Dest: MarkerPath(target),
		Note: "ownership marker",
	})

	if leftover == 0 {
		if err := os.Remove(target); err == nil {
			report.Actions = append(report.Actions, Action{
				Kind: ActionRemove,
				Dest: target,
				Note: "empty target directory",
			})
		}
	}

	logger.Debug("cleaned target", "target", target, "removed", report.Changed())
	return report, nil
}

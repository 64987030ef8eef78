// Package deploy materializes skills into target directories as symbolic
// links, driven by the declared configuration. It owns the ownership
// marker, the link reconciler, the clean path, and the installer that
// sequences a whole run.
package deploy

import (
	"os"
	"path/filepath"
)

// MarkerName is the ownership marker filename. The leading dot cannot
// appear in a valid skill name, so the marker can never collide with a
// managed link.
const MarkerName = ".slink"

// markerContent identifies the managing system.
const markerContent = "managed by slink\n"

// MarkerPath returns the marker location for a target directory.
func MarkerPath(dir string) string {
	return filepath.Join(dir, MarkerName)
}

// IsManaged reports whether dir carries the ownership marker. The marker is
// the sole authority for "may slink mutate this directory"; pre-existing
// unrelated content never implies ownership.
func IsManaged(dir string) bool {
	info, err := os.Stat(MarkerPath(dir))
	return err == nil && info.Mode().IsRegular()
}

// PlaceMarker writes the ownership marker into dir. Re-placing is a no-op.
func PlaceMarker(dir string) error {
	if IsManaged(dir) {
		return nil
	}
	return os.WriteFile(MarkerPath(dir), []byte(markerContent), 0644)
}

// ClearMarker removes the ownership marker from dir. Clearing an unmarked
// directory is a no-op.
func ClearMarker(dir string) error {
	err := os.Remove(MarkerPath(dir))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

package deploy

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/slink-tools/slink/internal/skill"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeSkill(t *testing.T, source, name string) string {
	t.Helper()
	dir := filepath.Join(source, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	manifest := "---\nname: " + name + "\ndescription: test skill\n---\n"
	if err := os.WriteFile(filepath.Join(dir, skill.ManifestName), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// snapshot lists a directory tree with entry types and link targets, for
// byte-for-byte before/after comparisons.
func snapshot(t *testing.T, root string) string {
	t.Helper()
	var lines []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return nil
			}
			return err
		}
		line := path + "|" + info.Mode().String()
		if info.Mode()&os.ModeSymlink != 0 {
			target, _ := os.Readlink(path)
			line += "|" + target
		}
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

func TestReconcileCreatesLink(t *testing.T) {
	source := t.TempDir()
	skillDir := writeSkill(t, source, "greeter")
	target := filepath.Join(t.TempDir(), "out")

	r := NewReconciler(skill.NewResolver([]string{source}), testLogger())
	report := r.Reconcile(target, []string{"greeter"}, false)

	if report.Errors() != 0 {
		t.Fatalf("unexpected errors: %+v", report.Actions)
	}
	if !IsManaged(target) {
		t.Error("target should be adopted on first apply")
	}

	dest := filepath.Join(target, "greeter")
	got, err := os.Readlink(dest)
	if err != nil {
		t.Fatalf("readlink failed: %v", err)
	}
	if got != skillDir {
		t.Errorf("link target = %q, want %q", got, skillDir)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	source := t.TempDir()
	writeSkill(t, source, "greeter")
	target := filepath.Join(t.TempDir(), "out")

	r := NewReconciler(skill.NewResolver([]string{source}), testLogger())

	first := r.Reconcile(target, []string{"greeter"}, false)
	if first.Changed() == 0 {
		t.Fatal("first run should report changes")
	}
	before := snapshot(t, target)

	second := r.Reconcile(target, []string{"greeter"}, false)
	if second.Changed() != 0 {
		t.Errorf("second run should report zero effective changes, got %+v", second.Actions)
	}
	if after := snapshot(t, target); after != before {
		t.Errorf("second run changed the filesystem:\nbefore: %s\nafter: %s", before, after)
	}
}

func TestReconcileRepointsLink(t *testing.T) {
	srcA := t.TempDir()
	srcB := t.TempDir()
	writeSkill(t, srcA, "greeter")
	dirB := writeSkill(t, srcB, "greeter")
	target := filepath.Join(t.TempDir(), "out")

	// Install from A, then re-run with B first in the source list.
	NewReconciler(skill.NewResolver([]string{srcA}), testLogger()).
		Reconcile(target, []string{"greeter"}, false)

	report := NewReconciler(skill.NewResolver([]string{srcB, srcA}), testLogger()).
		Reconcile(target, []string{"greeter"}, false)

	var relinked bool
	for _, a := range report.Actions {
		if a.Kind == ActionRelink {
			relinked = true
		}
	}
	if !relinked {
		t.Errorf("expected a relink action, got %+v", report.Actions)
	}

	got, _ := os.Readlink(filepath.Join(target, "greeter"))
	if got != dirB {
		t.Errorf("link target = %q, want %q", got, dirB)
	}
}

func TestReconcileUnmanagedConflict(t *testing.T) {
	source := t.TempDir()
	writeSkill(t, source, "greeter")

	// Target pre-exists, unmanaged, with a real directory where the link
	// would go and an unrelated file.
	target := t.TempDir()
	conflictDir := filepath.Join(target, "greeter")
	os.MkdirAll(conflictDir, 0755)
	os.WriteFile(filepath.Join(conflictDir, "precious.txt"), []byte("keep me"), 0644)
	os.WriteFile(filepath.Join(target, "notes.txt"), []byte("mine"), 0644)

	r := NewReconciler(skill.NewResolver([]string{source}), testLogger())
	report := r.Reconcile(target, []string{"greeter"}, false)

	if report.Conflicts() != 1 {
		t.Fatalf("expected one conflict, got %+v", report.Actions)
	}

	// The conflicting directory and unrelated file are untouched; the
	// marker has been placed for future runs.
	if _, err := os.Stat(filepath.Join(conflictDir, "precious.txt")); err != nil {
		t.Error("pre-existing content was touched")
	}
	if _, err := os.Stat(filepath.Join(target, "notes.txt")); err != nil {
		t.Error("unrelated file was touched")
	}
	if !IsManaged(target) {
		t.Error("target should still be adopted")
	}
}

func TestReconcileReplacesEntryInManagedTarget(t *testing.T) {
	source := t.TempDir()
	skillDir := writeSkill(t, source, "greeter")

	target := t.TempDir()
	if err := PlaceMarker(target); err != nil {
		t.Fatal(err)
	}
	os.MkdirAll(filepath.Join(target, "greeter"), 0755)

	r := NewReconciler(skill.NewResolver([]string{source}), testLogger())
	report := r.Reconcile(target, []string{"greeter"}, false)

	if report.Conflicts() != 0 || report.Errors() != 0 {
		t.Fatalf("unexpected findings: %+v", report.Actions)
	}
	got, err := os.Readlink(filepath.Join(target, "greeter"))
	if err != nil || got != skillDir {
		t.Errorf("entry not replaced by link: %q, %v", got, err)
	}
}

func TestReconcileDryRunTouchesNothing(t *testing.T) {
	source := t.TempDir()
	writeSkill(t, source, "greeter")
	root := t.TempDir()
	target := filepath.Join(root, "out")

	before := snapshot(t, root)

	r := NewReconciler(skill.NewResolver([]string{source}), testLogger())
	report := r.Reconcile(target, []string{"greeter"}, true)

	if after := snapshot(t, root); after != before {
		t.Errorf("dry-run mutated the filesystem:\nbefore: %s\nafter: %s", before, after)
	}

	// The decisions are still fully computed.
	kinds := map[ActionKind]int{}
	for _, a := range report.Actions {
		kinds[a.Kind]++
	}
	if kinds[ActionAdopt] != 1 || kinds[ActionCreate] != 1 {
		t.Errorf("dry-run report = %+v, want adopt + create", report.Actions)
	}
}

func TestReconcileUnresolvableSkillIsPerEntry(t *testing.T) {
	source := t.TempDir()
	writeSkill(t, source, "greeter")
	target := filepath.Join(t.TempDir(), "out")

	r := NewReconciler(skill.NewResolver([]string{source}), testLogger())
	report := r.Reconcile(target, []string{"missing", "greeter"}, false)

	if report.Errors() != 1 {
		t.Fatalf("expected one error, got %+v", report.Actions)
	}
	// The resolvable entry still proceeded.
	if _, err := os.Lstat(filepath.Join(target, "greeter")); err != nil {
		t.Error("resolvable skill should still be linked")
	}
}

func TestReconcileTargetIsRegularFile(t *testing.T) {
	source := t.TempDir()
	writeSkill(t, source, "greeter")

	target := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(target, []byte("a file"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewReconciler(skill.NewResolver([]string{source}), testLogger())
	report := r.Reconcile(target, []string{"greeter"}, false)

	if report.Errors() != 1 {
		t.Fatalf("expected a fatal target error, got %+v", report.Actions)
	}
	data, err := os.ReadFile(target)
	if err != nil || string(data) != "a file" {
		t.Error("target file must be left untouched")
	}
}

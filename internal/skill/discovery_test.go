package skill

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDiscoverySkill(t *testing.T, source, name, content string) string {
	t.Helper()
	dir := filepath.Join(source, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestDiscoverAllSkipsUnloadable(t *testing.T) {
	source := t.TempDir()
	writeDiscoverySkill(t, source, "good", "---\nname: good\ndescription: Fine.\n---\n")
	writeDiscoverySkill(t, source, "broken", "---\nname: broken\n")

	skills := DiscoverAll([]string{source})
	if len(skills) != 1 || skills[0].Name != "good" {
		t.Fatalf("DiscoverAll = %v, want only good", skills)
	}
}

func TestManifestDirsIncludesUnloadable(t *testing.T) {
	source := t.TempDir()
	good := writeDiscoverySkill(t, source, "good", "---\nname: good\ndescription: Fine.\n---\n")
	broken := writeDiscoverySkill(t, source, "broken", "---\nname: broken\n")

	// No manifest, must not appear.
	if err := os.MkdirAll(filepath.Join(source, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	dirs := ManifestDirs([]string{source})
	if len(dirs) != 2 {
		t.Fatalf("ManifestDirs = %v, want broken and good", dirs)
	}
	if dirs[0] != broken || dirs[1] != good {
		t.Errorf("ManifestDirs = %v", dirs)
	}
}

func TestManifestDirsShadowsByDirectoryName(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	kept := writeDiscoverySkill(t, first, "greeter", "---\nname: greeter\n")
	writeDiscoverySkill(t, second, "greeter", "---\nname: greeter\ndescription: Fine.\n---\n")

	dirs := ManifestDirs([]string{first, second})
	if len(dirs) != 1 || dirs[0] != kept {
		t.Fatalf("ManifestDirs = %v, want only %s", dirs, kept)
	}
}

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDirectoryOfSkills(t *testing.T) {
	source := t.TempDir()
	writeTestSkill(t, source, "greeter")
	writeTestSkill(t, source, "helper")

	cmd, out, _ := testCommand(t)
	if err := runValidate(cmd, []string{source}); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out.String(), "2 validated, 0 failed") {
		t.Errorf("unexpected summary: %s", out.String())
	}
}

func TestValidateSingleSkillDirectory(t *testing.T) {
	source := t.TempDir()
	writeTestSkill(t, source, "greeter")

	cmd, out, _ := testCommand(t)
	if err := runValidate(cmd, []string{filepath.Join(source, "greeter")}); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out.String(), "1 validated, 0 failed") {
		t.Errorf("unexpected summary: %s", out.String())
	}
}

func TestValidateReportsAllFindings(t *testing.T) {
	source := t.TempDir()
	dir := filepath.Join(source, "bad-skill")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSkillBody(t, dir, "---\nname: Bad_Name\n---\n")

	cmd, out, _ := testCommand(t)
	err := runValidate(cmd, []string{dir})
	if err == nil {
		t.Fatal("expected validation failure")
	}

	got := out.String()
	if !strings.Contains(got, "VAL_004") {
		t.Errorf("missing name format finding: %s", got)
	}
	if !strings.Contains(got, "VAL_003") {
		t.Errorf("missing description finding: %s", got)
	}
}

func TestValidateByName(t *testing.T) {
	source := t.TempDir()
	writeTestSkill(t, source, "greeter")
	writeTestConfig(t, source, filepath.Join(t.TempDir(), "skills"), []string{"greeter"})

	cmd, out, _ := testCommand(t)
	if err := runValidate(cmd, []string{"greeter"}); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out.String(), "greeter") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestValidateAllSources(t *testing.T) {
	source := t.TempDir()
	writeTestSkill(t, source, "greeter")
	writeTestSkill(t, source, "helper")
	writeTestConfig(t, source, filepath.Join(t.TempDir(), "skills"), nil)

	cmd, out, _ := testCommand(t)
	if err := runValidate(cmd, nil); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out.String(), "2 validated, 0 failed") {
		t.Errorf("unexpected summary: %s", out.String())
	}
}

func TestValidateAllReportsMalformedManifest(t *testing.T) {
	source := t.TempDir()
	writeTestSkill(t, source, "good")
	dir := filepath.Join(source, "broken")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	// Opening marker only, never closed.
	writeSkillBody(t, dir, "---\nname: broken\ndescription: Never closed.\n")
	writeTestConfig(t, source, filepath.Join(t.TempDir(), "skills"), nil)

	cmd, out, _ := testCommand(t)
	err := runValidate(cmd, nil)
	if err == nil {
		t.Fatal("expected failure for malformed manifest")
	}

	got := out.String()
	if !strings.Contains(got, "VAL_002") {
		t.Errorf("missing front matter finding: %s", got)
	}
	if !strings.Contains(got, "2 validated, 1 failed") {
		t.Errorf("unexpected summary: %s", got)
	}
}

func TestValidateDirectoryIncludesMalformedManifest(t *testing.T) {
	source := t.TempDir()
	writeTestSkill(t, source, "good")
	dir := filepath.Join(source, "broken")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSkillBody(t, dir, "no front matter at all\n")

	cmd, out, _ := testCommand(t)
	if err := runValidate(cmd, []string{source}); err == nil {
		t.Fatal("expected failure for malformed manifest")
	}
	if !strings.Contains(out.String(), "2 validated, 1 failed") {
		t.Errorf("unexpected summary: %s", out.String())
	}
}

func TestValidateUnknownName(t *testing.T) {
	source := t.TempDir()
	writeTestConfig(t, source, filepath.Join(t.TempDir(), "skills"), nil)

	cmd, _, _ := testCommand(t)
	if err := runValidate(cmd, []string{"nonexistent"}); err == nil {
		t.Fatal("expected error for unknown skill name")
	}
}

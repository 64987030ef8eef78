package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckHealthyCorpus(t *testing.T) {
	source := t.TempDir()
	writeTestSkill(t, source, "greeter")
	writeTestConfig(t, source, filepath.Join(t.TempDir(), "skills"), []string{"greeter"})

	cmd, out, _ := testCommand(t)
	if err := runCheck(cmd, nil); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out.String(), "0 errors, 0 warnings, 0 notes") {
		t.Errorf("unexpected summary: %s", out.String())
	}
}

func TestCheckFailsOnErrors(t *testing.T) {
	source := t.TempDir()
	writeTestConfig(t, source, filepath.Join(t.TempDir(), "skills"), []string{"ghost"})

	cmd, out, _ := testCommand(t)
	if err := runCheck(cmd, nil); err == nil {
		t.Fatal("expected check to fail with an unresolvable skill")
	}
	if !strings.Contains(out.String(), "ghost") {
		t.Errorf("output missing failing skill: %s", out.String())
	}
}

func TestCheckWarningsDoNotFail(t *testing.T) {
	source := t.TempDir()
	dir := filepath.Join(source, "greeter")
	writeTestSkill(t, source, "greeter")
	writeSkillBody(t, dir, "---\nname: greeter\ndescription: Greets.\n---\n\n<see ref=\"gone\">\n")
	writeTestConfig(t, source, filepath.Join(t.TempDir(), "skills"), []string{"greeter"})

	cmd, out, _ := testCommand(t)
	if err := runCheck(cmd, nil); err != nil {
		t.Fatalf("warnings should not fail check: %v", err)
	}
	if !strings.Contains(out.String(), "1 warnings") {
		t.Errorf("unexpected summary: %s", out.String())
	}
}

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetGraphFlags() {
	graphFormat = "text"
	graphOutput = ""
	graphTag = ""
	graphPipeline = ""
}

func TestGraphTextOutput(t *testing.T) {
	defer resetGraphFlags()

	source := t.TempDir()
	dir := filepath.Join(source, "greeter")
	writeTestSkill(t, source, "greeter")
	writeTestSkill(t, source, "helper")
	writeSkillBody(t, dir, "---\nname: greeter\ndescription: Greets.\n---\n\n<see ref=\"helper\">\n")
	writeTestConfig(t, source, filepath.Join(t.TempDir(), "skills"), nil)

	cmd, out, _ := testCommand(t)
	if err := runGraph(cmd, nil); err != nil {
		t.Fatalf("graph: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "greeter") || !strings.Contains(got, "helper") {
		t.Errorf("graph output missing nodes: %s", got)
	}
}

func TestGraphWritesFile(t *testing.T) {
	defer resetGraphFlags()

	source := t.TempDir()
	writeTestSkill(t, source, "greeter")
	writeTestConfig(t, source, filepath.Join(t.TempDir(), "skills"), nil)

	outPath := filepath.Join(t.TempDir(), "graph.dot")
	graphFormat = "dot"
	graphOutput = outPath

	cmd, _, _ := testCommand(t)
	if err := runGraph(cmd, nil); err != nil {
		t.Fatalf("graph: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if !strings.Contains(string(content), "digraph") {
		t.Errorf("not DOT output: %s", content)
	}
}

func TestGraphUnknownFormat(t *testing.T) {
	defer resetGraphFlags()

	source := t.TempDir()
	writeTestConfig(t, source, filepath.Join(t.TempDir(), "skills"), nil)

	graphFormat = "svg"
	cmd, _, _ := testCommand(t)
	if err := runGraph(cmd, nil); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

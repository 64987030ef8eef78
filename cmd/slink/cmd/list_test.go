package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/slink-tools/slink/internal/config"
)

func TestListDefault(t *testing.T) {
	source := t.TempDir()
	writeTestSkill(t, source, "greeter")

	cfg := &config.Config{
		Sources: config.SourcesConfig{Skills: []string{source}},
		Global: config.GlobalConfig{
			Targets: []string{filepath.Join(t.TempDir(), "skills")},
			Skills:  []string{"greeter", "ghost"},
		},
	}

	var out bytes.Buffer
	if err := listDefault(&out, cfg); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.Contains(got, "Global scope") {
		t.Errorf("missing global header: %s", got)
	}
	if !strings.Contains(got, "greeter") {
		t.Errorf("missing resolved skill: %s", got)
	}
	if !strings.Contains(got, "ghost") || !strings.Contains(got, "not found") {
		t.Errorf("missing unresolved marker: %s", got)
	}
}

func TestListDefaultProjectOrigins(t *testing.T) {
	source := t.TempDir()
	writeTestSkill(t, source, "shared")
	writeTestSkill(t, source, "local")

	cfg := &config.Config{
		Sources: config.SourcesConfig{Skills: []string{source}},
		Global: config.GlobalConfig{
			Skills: []string{"shared"},
		},
		Projects: map[string]config.ProjectConfig{
			"/work/app": {Skills: []string{"local"}},
		},
	}

	var out bytes.Buffer
	if err := listDefault(&out, cfg); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.Contains(got, "/work/app") {
		t.Errorf("missing project header: %s", got)
	}
	if !strings.Contains(got, "inherit: true") {
		t.Errorf("missing inherit state: %s", got)
	}
	if !strings.Contains(got, "global,") || !strings.Contains(got, "project,") {
		t.Errorf("missing skill origins: %s", got)
	}
}

func TestListReferences(t *testing.T) {
	source := t.TempDir()
	writeTestSkill(t, source, "helper")
	dir := filepath.Join(source, "greeter")
	writeTestSkill(t, source, "greeter")
	writeSkillBody(t, dir, "---\nname: greeter\ndescription: Greets.\n---\n\n<see ref=\"helper\">\n")

	cfg := &config.Config{
		Sources: config.SourcesConfig{Skills: []string{source}},
	}

	var out bytes.Buffer
	if err := listReferences(&out, cfg, "helper"); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.Contains(got, "Incoming:") || !strings.Contains(got, "greeter") {
		t.Errorf("missing incoming reference: %s", got)
	}
	if !strings.Contains(got, "Outgoing:") || !strings.Contains(got, "(none)") {
		t.Errorf("missing empty outgoing section: %s", got)
	}
}

func TestListReferencesUnknownSkill(t *testing.T) {
	cfg := &config.Config{
		Sources: config.SourcesConfig{Skills: []string{t.TempDir()}},
	}

	var out bytes.Buffer
	if err := listReferences(&out, cfg, "nope"); err == nil {
		t.Fatal("expected error for unknown skill")
	}
}

func TestListMissing(t *testing.T) {
	source := t.TempDir()
	dir := filepath.Join(source, "greeter")
	writeTestSkill(t, source, "greeter")
	writeSkillBody(t, dir, "---\nname: greeter\ndescription: Greets.\n---\n\n<see ref=\"vanished\">\n")

	cfg := &config.Config{
		Sources: config.SourcesConfig{Skills: []string{source}},
	}

	var out bytes.Buffer
	if err := listMissing(&out, cfg); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.Contains(got, "vanished") || !strings.Contains(got, "greeter") {
		t.Errorf("missing dangling reference report: %s", got)
	}
}

func TestListGroupsNoClusters(t *testing.T) {
	source := t.TempDir()
	writeTestSkill(t, source, "solo")

	cfg := &config.Config{
		Sources: config.SourcesConfig{Skills: []string{source}},
	}

	var out bytes.Buffer
	if err := listGroups(&out, cfg); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.Contains(got, "No clusters detected") || !strings.Contains(got, "solo") {
		t.Errorf("unexpected groups output: %s", got)
	}
}

package skill

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/slink-tools/slink/internal/errors"
)

// namePattern matches lowercase alphanumeric with single hyphens between words.
var namePattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidName reports whether name satisfies the skill naming rules.
func ValidName(name string) bool {
	return len(name) <= MaxNameLength && namePattern.MatchString(name)
}

// Finding is a single validation violation.
type Finding struct {
	Code    string
	Field   string
	Message string
}

func (f Finding) String() string {
	if f.Field == "" {
		return fmt.Sprintf("[%s] %s", f.Code, f.Message)
	}
	return fmt.Sprintf("[%s] %s %s", f.Code, f.Field, f.Message)
}

// ValidationResult holds every violation found for one skill directory.
// Validation never stops at the first finding.
type ValidationResult struct {
	Path     string
	Findings []Finding
}

// OK returns true if no violations were found.
func (r *ValidationResult) OK() bool {
	return len(r.Findings) == 0
}

// HasCode returns true if any finding carries the given code.
func (r *ValidationResult) HasCode(code string) bool {
	for _, f := range r.Findings {
		if f.Code == code {
			return true
		}
	}
	return false
}

// Error implements the error interface.
func (r *ValidationResult) Error() string {
	if len(r.Findings) == 0 {
		return ""
	}

	messages := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		messages = append(messages, f.String())
	}

	return fmt.Sprintf("%s: %d finding(s):\n  - %s",
		r.Path, len(r.Findings), strings.Join(messages, "\n  - "))
}

func (r *ValidationResult) add(code, field, message string) {
	r.Findings = append(r.Findings, Finding{Code: code, Field: field, Message: message})
}

// ValidateDir inspects a skill directory and returns every rule violation.
// It is purely read-only and makes no assumption about its caller; the
// standalone validate command and the install pre-check share it.
func ValidateDir(dir string) *ValidationResult {
	result := &ValidationResult{Path: dir}

	content, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		result.add(errors.CodeMissingManifest, "",
			fmt.Sprintf("missing manifest %s", ManifestName))
		return result
	}

	front, _, err := splitFrontMatter(string(content))
	if err != nil {
		result.add(errors.CodeMalformedFrontMatter, "", err.Error())
		return result
	}

	// Keys are checked on a raw mapping first: a present-but-empty
	// description and an absent one are different findings.
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(front), &raw); err != nil {
		result.add(errors.CodeMalformedFrontMatter, "",
			fmt.Sprintf("front matter is not a valid mapping: %v", err))
		return result
	}

	var m Manifest
	if err := yaml.Unmarshal([]byte(front), &m); err != nil {
		result.add(errors.CodeMalformedFrontMatter, "",
			fmt.Sprintf("front matter has unexpected shape: %v", err))
		return result
	}

	validateName(m.Name, raw, dir, result)
	validateDescription(m.Description, raw, result)

	return result
}

func validateName(name string, raw map[string]any, dir string, result *ValidationResult) {
	if _, ok := raw["name"]; !ok {
		result.add(errors.CodeMissingField, "name", "is required")
		return
	}

	if !namePattern.MatchString(name) {
		result.add(errors.CodeNameFormat, "name",
			"must be lowercase alphanumeric with hyphens")
	}
	if len(name) > MaxNameLength {
		result.add(errors.CodeNameLength, "name",
			fmt.Sprintf("must be %d characters or less", MaxNameLength))
	}

	dirName := filepath.Base(dir)
	if name != dirName {
		result.add(errors.CodeNameDirMismatch, "name",
			fmt.Sprintf("must match directory name (got %q, directory is %q)", name, dirName))
	}
}

func validateDescription(description string, raw map[string]any, result *ValidationResult) {
	if _, ok := raw["description"]; !ok {
		result.add(errors.CodeMissingField, "description", "is required")
		return
	}

	if strings.TrimSpace(description) == "" {
		result.add(errors.CodeEmptyDescription, "description", "must not be empty")
	}
	// Counted in runes: the limit is on characters, and descriptions are
	// free text that may not be ASCII.
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		result.add(errors.CodeDescriptionLength, "description",
			fmt.Sprintf("must be %d characters or less", MaxDescriptionLength))
	}
}

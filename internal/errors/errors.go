// Package errors provides structured error types for slink.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error codes for slink operations.
const (
	// Config errors
	CodeConfigNotFound = "CONFIG_001" // Configuration file missing
	CodeConfigParse    = "CONFIG_002" // Malformed configuration document

	// Resolution errors
	CodeSkillNotFound = "SKILL_001" // No source directory contains the skill

	// Validation errors
	CodeMissingManifest      = "VAL_001" // No manifest file in skill directory
	CodeMalformedFrontMatter = "VAL_002" // Broken front matter delimiters or mapping
	CodeMissingField         = "VAL_003" // Required front matter key absent
	CodeNameFormat           = "VAL_004" // Name violates the naming pattern
	CodeNameLength           = "VAL_005" // Name exceeds the length limit
	CodeNameDirMismatch      = "VAL_006" // Declared name differs from directory name
	CodeDescriptionLength    = "VAL_007" // Description exceeds the length limit
	CodeEmptyDescription     = "VAL_008" // Description present but empty

	// Link errors
	CodeUnmanagedConflict = "LINK_001" // Destination exists and is not owned by slink
	CodeTargetNotDir      = "LINK_002" // Target path exists as a regular file
)

// SlinkError is the structured error type for slink operations.
type SlinkError struct {
	Code    string         `json:"code"`              // Error code (e.g., "SKILL_001")
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Context (skill, path, etc.)
	Cause   error          `json:"-"`                 // Wrapped error (not serialized)
}

// Error implements the error interface.
func (e *SlinkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *SlinkError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error.
func (e *SlinkError) WithDetail(key string, value any) *SlinkError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause wraps an underlying error.
func (e *SlinkError) WithCause(err error) *SlinkError {
	e.Cause = err
	return e
}

// MarshalJSON implements json.Marshaler with cause error message.
func (e *SlinkError) MarshalJSON() ([]byte, error) {
	type alias SlinkError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// New creates a new SlinkError.
func New(code, message string) *SlinkError {
	return &SlinkError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new SlinkError with formatted message.
func Newf(code, format string, args ...any) *SlinkError {
	return &SlinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with a SlinkError.
func Wrap(code, message string, err error) *SlinkError {
	return &SlinkError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// --- Config Errors ---

// ConfigNotFound creates an error for a missing configuration file.
func ConfigNotFound(path string) *SlinkError {
	return Newf(CodeConfigNotFound, "configuration file not found: %s", path).
		WithDetail("path", path)
}

// ConfigParse creates an error for a malformed configuration file.
func ConfigParse(path string, err error) *SlinkError {
	return Wrap(CodeConfigParse, fmt.Sprintf("failed to parse configuration file %s", path), err).
		WithDetail("path", path)
}

// --- Resolution Errors ---

// SkillNotFound creates an error for a skill missing from every source.
// The searched paths are carried both in the message and the details so a
// single failure is enough to see where the skill was expected.
func SkillNotFound(name string, searched []string) *SlinkError {
	return Newf(CodeSkillNotFound, "skill %q not found in any source (searched: %s)",
		name, strings.Join(searched, ", ")).
		WithDetail("skill", name).
		WithDetail("searched", searched)
}

// --- Link Errors ---

// UnmanagedConflict creates an error for a destination that exists but is
// not owned by slink. The destination is left untouched.
func UnmanagedConflict(dest string) *SlinkError {
	return Newf(CodeUnmanagedConflict, "destination exists and is not managed by slink: %s", dest).
		WithDetail("dest", dest)
}

// TargetNotDirectory creates an error for a target path occupied by a
// regular file.
func TargetNotDirectory(path string) *SlinkError {
	return Newf(CodeTargetNotDir, "target path exists but is not a directory: %s", path).
		WithDetail("path", path)
}

// HasCode checks if an error is a SlinkError with the given code.
// It handles wrapped errors by unwrapping to find a SlinkError.
func HasCode(err error, code string) bool {
	var serr *SlinkError
	if errors.As(err, &serr) {
		return serr.Code == code
	}
	return false
}

// Code returns the error code if err is a SlinkError, empty string otherwise.
func Code(err error) string {
	var serr *SlinkError
	if errors.As(err, &serr) {
		return serr.Code
	}
	return ""
}

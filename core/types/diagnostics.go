package types

import "fmt"

// Span locates a source range in the original prompt text by byte offsets.
type Span struct {
	Start int // Byte offset of the first byte
	End   int // Byte offset one past the last byte
	Line  int // 1-based line number of the start
}

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityWarning is informational: the engine recovered and composition
	// continued (skipped invocation, ignored unknown parameter).
	SeverityWarning Severity = iota

	// SeverityError means the subject was excluded from composition, or the
	// whole composition aborted.
	SeverityError
)

// String returns the string representation of Severity
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// DiagCode identifies the diagnostic category. The taxonomy is fixed:
// callers switch over codes to decide how prominently to surface each one.
type DiagCode string

const (
	// DiagSyntaxSkip: malformed invocation span skipped as literal text
	DiagSyntaxSkip DiagCode = "syntax-skip"

	// DiagUnknownDecorator: invocation name not in the catalog, dropped
	DiagUnknownDecorator DiagCode = "unknown-decorator"

	// DiagUnknownParameter: argument name not in the definition, ignored
	DiagUnknownParameter DiagCode = "unknown-parameter"

	// DiagParameter: value failed type, range or enum constraints
	DiagParameter DiagCode = "parameter"

	// DiagMissingParameter: required parameter absent with no default
	DiagMissingParameter DiagCode = "missing-parameter"

	// DiagConflict: two present decorators declare a conflict
	DiagConflict DiagCode = "conflict"

	// DiagMissingRequirement: a required companion decorator is absent
	DiagMissingRequirement DiagCode = "missing-requirement"

	// DiagVersion: a definition's standard range excludes the active version
	DiagVersion DiagCode = "version"
)

// Diagnostic is one engine finding. Diagnostics are values collected during
// a composition run; the engine never logs or panics.
type Diagnostic struct {
	Severity  Severity `json:"severity"`
	Kind      DiagCode `json:"code"`
	Decorator string   `json:"decorator,omitempty"` // Decorator this finding concerns, if any
	Message   string   `json:"message"`
	Span      *Span    `json:"span,omitempty"`
}

// String renders the diagnostic the way the CLI prints it.
func (d Diagnostic) String() string {
	if d.Decorator != "" {
		return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Kind, d.Decorator, d.Message)
	}
	return fmt.Sprintf("%s [%s] %s", d.Severity, d.Kind, d.Message)
}

// Warning builds a warning-severity diagnostic.
func Warning(kind DiagCode, decorator, message string) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Kind: kind, Decorator: decorator, Message: message}
}

// Error builds an error-severity diagnostic.
func Error(kind DiagCode, decorator, message string) Diagnostic {
	return Diagnostic{Severity: SeverityError, Kind: kind, Decorator: decorator, Message: message}
}

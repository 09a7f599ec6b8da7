package engine

import "fmt"

// ParameterError reports a value that failed its parameter's declared
// constraints: wrong type, out of range, or not in the enum set.
type ParameterError struct {
	Decorator  string // Decorator whose parameter failed
	Parameter  string // Offending parameter name
	Constraint string // Human-readable constraint that was violated
	Value      string // Offending value, canonical string form
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("decorator %q: parameter %q: %s (got %q)",
		e.Decorator, e.Parameter, e.Constraint, e.Value)
}

// MissingParameterError reports a required parameter with no default that
// was absent from the invocation.
type MissingParameterError struct {
	Decorator string
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("decorator %q: required parameter %q is missing", e.Decorator, e.Parameter)
}

// ConflictError reports two present decorators with a declared conflict.
// Symmetric: the error is the same whichever of the two declared it.
type ConflictError struct {
	Decorator string // Decorator declaring the conflict
	Conflict  string // The decorator it conflicts with
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("decorator %q conflicts with %q", e.Decorator, e.Conflict)
}

// MissingRequirementError reports a decorator whose required companion is
// absent from the prompt.
type MissingRequirementError struct {
	Decorator string
	Required  string
}

func (e *MissingRequirementError) Error() string {
	return fmt.Sprintf("decorator %q requires %q, which is not present", e.Decorator, e.Required)
}

// VersionError reports a definition whose standard version range excludes
// the active standard version.
type VersionError struct {
	Decorator string
	Min       string
	Max       string
	Active    string
}

func (e *VersionError) Error() string {
	switch {
	case e.Min != "" && e.Max != "":
		return fmt.Sprintf("decorator %q supports standard %s through %s, active version is %s",
			e.Decorator, e.Min, e.Max, e.Active)
	case e.Min != "":
		return fmt.Sprintf("decorator %q requires standard %s or newer, active version is %s",
			e.Decorator, e.Min, e.Active)
	default:
		return fmt.Sprintf("decorator %q supports standard up to %s, active version is %s",
			e.Decorator, e.Max, e.Active)
	}
}

// ChainError reports a failure inside a Chain stage. Per-invocation errors
// are normally non-fatal, but a broken chain stage invalidates every later
// stage, so the whole composition aborts.
type ChainError struct {
	Stage string // Decorator name of the failing stage
	Err   error
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("chain stage %q: %v", e.Stage, e.Err)
}

func (e *ChainError) Unwrap() error { return e.Err }

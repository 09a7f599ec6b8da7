package engine

// State tracks a composition run through its phases. Terminal states are
// StateComposed on success and StateAborted on a whole-composition failure;
// a run never stops in an intermediate state.
type State int

const (
	StateParsed State = iota
	StateValidated
	StateCompatibilityChecked
	StateInstantiated
	StateComposed
	StateAborted
)

// String returns the string representation of State
func (s State) String() string {
	switch s {
	case StateParsed:
		return "parsed"
	case StateValidated:
		return "validated"
	case StateCompatibilityChecked:
		return "compatibility-checked"
	case StateInstantiated:
		return "instantiated"
	case StateComposed:
		return "composed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends a composition run.
func (s State) Terminal() bool {
	return s == StateComposed || s == StateAborted
}

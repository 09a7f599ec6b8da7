package types

// ParamType represents the type of a decorator parameter
type ParamType string

const (
	TypeString ParamType = "string"
	TypeNumber ParamType = "number"
	TypeBool   ParamType = "boolean"
	TypeEnum   ParamType = "enum"
	TypeArray  ParamType = "array"
)

// IsValid reports whether the type is one of the recognized parameter types.
func (t ParamType) IsValid() bool {
	switch t {
	case TypeString, TypeNumber, TypeBool, TypeEnum, TypeArray:
		return true
	default:
		return false
	}
}

// Placement defines where an instruction fragment attaches relative to the
// literal prompt body.
type Placement string

const (
	// PlacePrepend puts the fragment above the literal body
	PlacePrepend Placement = "prepend"

	// PlaceAppend puts the fragment below the literal body
	PlaceAppend Placement = "append"

	// PlaceReplace makes the fragment supersede the literal body entirely.
	// Used only by formatting-style decorators.
	PlaceReplace Placement = "replace"
)

// IsValid reports whether the placement is recognized.
func (p Placement) IsValid() bool {
	switch p {
	case PlacePrepend, PlaceAppend, PlaceReplace:
		return true
	default:
		return false
	}
}

// CompositionBehavior controls what happens when the same decorator
// contributes more than one fragment at the same placement.
type CompositionBehavior string

const (
	// ComposeAccumulate concatenates fragments in invocation order
	ComposeAccumulate CompositionBehavior = "accumulate"

	// ComposeOverride keeps only the last invocation's fragment
	ComposeOverride CompositionBehavior = "override"
)

// IsValid reports whether the behavior is recognized.
func (b CompositionBehavior) IsValid() bool {
	return b == ComposeAccumulate || b == ComposeOverride
}

// MetaKind identifies decorators that rewrite the instance list before
// composition instead of contributing a fragment of their own. The set is
// closed: meta behavior is dispatched over this tag, never by name lookup.
type MetaKind int

const (
	// MetaNone is an ordinary transforming decorator
	MetaNone MetaKind = iota

	// MetaChain applies a sequence of decorators as a fold, each stage
	// consuming the previous stage's composed text as its literal body
	MetaChain

	// MetaOverride replaces another instance's resolved parameters (and
	// optionally its base instruction) before instantiation
	MetaOverride

	// MetaConditional includes or drops a referenced instance based on a
	// predicate over caller-supplied context
	MetaConditional

	// MetaPriority supplies an explicit ordering key overriding natural
	// invocation order
	MetaPriority
)

// String returns the string representation of MetaKind
func (k MetaKind) String() string {
	switch k {
	case MetaNone:
		return "none"
	case MetaChain:
		return "chain"
	case MetaOverride:
		return "override"
	case MetaConditional:
		return "conditional"
	case MetaPriority:
		return "priority"
	default:
		return "unknown"
	}
}

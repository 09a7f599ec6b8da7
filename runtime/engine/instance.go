package engine

import (
	"github.com/weftlang/weft/core/types"
)

// Instance is one resolved decorator invocation: a definition reference, a
// validated typed parameter map, and the invocation order index. Instances
// are ephemeral; they exist only for the duration of one composition.
type Instance struct {
	Def    types.Definition
	Params map[string]any // name -> string | float64 | bool | []any
	Order  int            // Invocation order index, 0-based
	Span   types.Span

	// instruction, when non-empty, replaces the definition's base
	// instruction at instantiation (set by the Override meta decorator).
	instruction string
}

// baseInstruction returns the instruction the instantiator starts from.
func (in *Instance) baseInstruction() string {
	if in.instruction != "" {
		return in.instruction
	}
	return in.Def.Template.Instruction
}

// stringParam returns a string-typed parameter, or "" if unset.
func (in *Instance) stringParam(name string) string {
	if v, ok := in.Params[name].(string); ok {
		return v
	}
	return ""
}

// namesParam returns an array parameter's elements as strings.
func (in *Instance) namesParam(name string) []string {
	elems, ok := in.Params[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

package engine

import (
	"strconv"
	"strings"

	"github.com/weftlang/weft/core/types"
)

// Fragment is one instantiated instruction fragment, tagged with its
// placement and composition behavior.
type Fragment struct {
	Name      string // Contributing decorator name
	Text      string
	Placement types.Placement
	Behavior  types.CompositionBehavior
	Order     int // Invocation order of the contributing instance
}

// Instantiate renders an instance's instruction fragment from its
// transformation template and validated parameter map.
//
// The base instruction comes first, then one clause per parameter with a
// mapping rule, in parameter declaration order (not invocation order),
// joined by single spaces. Identical (definition, parameters) input always
// yields byte-identical output.
func Instantiate(in *Instance) Fragment {
	parts := []string{in.baseInstruction()}

	for _, name := range in.Def.ParamOrder {
		value, set := in.Params[name]
		if !set {
			continue // absent optional parameter contributes nothing
		}
		rule, mapped := in.Def.Template.Mappings[name]
		if !mapped {
			continue
		}
		if clause := renderClause(rule, value); clause != "" {
			parts = append(parts, clause)
		}
	}

	return Fragment{
		Name:      in.Def.Name,
		Text:      strings.Join(parts, " "),
		Placement: in.Def.Template.Placement,
		Behavior:  in.Def.Template.Behavior,
		Order:     in.Order,
	}
}

// renderClause applies one mapping rule to a typed value. A valueMap with
// no entry for the value contributes nothing rather than leaking the raw
// value into the prompt.
func renderClause(rule types.MappingRule, value any) string {
	text := valueText(value)
	if rule.ValueMap != nil {
		return rule.ValueMap[text]
	}
	if rule.Format != "" {
		return strings.ReplaceAll(rule.Format, "{value}", text)
	}
	return ""
}

// valueText renders a typed parameter value in its canonical string form.
func valueText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = valueText(e)
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

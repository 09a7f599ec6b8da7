package engine

import (
	"fmt"
	"strings"

	"github.com/weftlang/weft/core/types"
	"github.com/weftlang/weft/runtime/parser"
)

// rewriteOutcome is the instance list after meta-decorator rewrites:
// ordinary instances ready for instantiation, plus extracted chain
// instances in invocation order. Meta instances themselves never reach the
// instantiator.
type rewriteOutcome struct {
	instances []*Instance
	chains    []*Instance
	diags     []types.Diagnostic
}

// rewriteMeta applies the meta decorators as pre-composition rewrites of
// the instance list. Overrides run first (they change what later stages
// see), then conditionals drop instances, then priority reorders what is
// left. Chains are extracted for the fold in Apply.
func rewriteMeta(all []*Instance, ctx map[string]string) rewriteOutcome {
	var out rewriteOutcome

	var ordinary []*Instance
	var overrides, conditionals, priorities []*Instance

	for _, in := range all {
		switch in.Def.Meta {
		case types.MetaChain:
			out.chains = append(out.chains, in)
		case types.MetaOverride:
			overrides = append(overrides, in)
		case types.MetaConditional:
			conditionals = append(conditionals, in)
		case types.MetaPriority:
			priorities = append(priorities, in)
		default:
			ordinary = append(ordinary, in)
		}
	}

	for _, ov := range overrides {
		out.diags = append(out.diags, applyOverride(ov, ordinary)...)
	}

	for _, cond := range conditionals {
		ordinary = applyConditional(cond, ordinary, ctx)
	}

	for _, prio := range priorities {
		ordinary = applyPriority(prio, ordinary)
	}

	out.instances = ordinary
	return out
}

// applyOverride replaces the target instance's resolved parameter map with
// the caller-supplied values, and optionally its base instruction. The
// replacement values are revalidated against the target's definition.
func applyOverride(ov *Instance, ordinary []*Instance) []types.Diagnostic {
	target := ov.stringParam("decorator")

	var found *Instance
	for _, in := range ordinary {
		if in.Def.Name == target {
			found = in // last matching instance wins
		}
	}
	if found == nil {
		return []types.Diagnostic{types.Warning(types.DiagUnknownDecorator, ov.Def.Name,
			fmt.Sprintf("override target %q is not present, ignoring", target))}
	}

	if rawParams := ov.stringParam("params"); rawParams != "" {
		args, err := parser.ParseArgs(rawParams)
		if err != nil {
			return []types.Diagnostic{types.Error(types.DiagParameter, ov.Def.Name,
				fmt.Sprintf("cannot parse override params for %q: %v", target, err))}
		}
		params, diags, err := BindParams(found.Def, args)
		if err != nil {
			return append(diags, types.Error(types.DiagParameter, ov.Def.Name,
				fmt.Sprintf("override params for %q rejected: %v", target, err)))
		}
		found.Params = params
		if len(diags) > 0 {
			return diags
		}
	}

	if instruction := ov.stringParam("instruction"); instruction != "" {
		found.instruction = instruction
	}
	return nil
}

// applyConditional keeps or drops the referenced instances based on the
// predicate. An unmet predicate drops the "then" instance silently; when an
// "else" instance is named, exactly one of the two survives.
func applyConditional(cond *Instance, ordinary []*Instance, ctx map[string]string) []*Instance {
	met := evalPredicate(cond.stringParam("if"), ctx)

	drop := cond.stringParam("then")
	if met {
		drop = cond.stringParam("else")
	}
	if drop == "" {
		return ordinary
	}

	out := ordinary[:0]
	for _, in := range ordinary {
		if in.Def.Name == drop {
			continue
		}
		out = append(out, in)
	}
	return out
}

// evalPredicate evaluates a conditional expression against the caller's
// context. Three forms: `key` (truthy presence), `!key` (negation), and
// `key=value` (equality).
func evalPredicate(expr string, ctx map[string]string) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return false
	}

	if strings.HasPrefix(expr, "!") {
		return !evalPredicate(expr[1:], ctx)
	}

	if key, want, ok := strings.Cut(expr, "="); ok {
		return ctx[strings.TrimSpace(key)] == strings.TrimSpace(want)
	}

	got, present := ctx[expr]
	return present && got != "" && got != "false"
}

// applyPriority reorders instances so the explicitly listed names come
// first, in listed order; everything else keeps invocation order after them.
func applyPriority(prio *Instance, ordinary []*Instance) []*Instance {
	names := prio.namesParam("decorators")
	if len(names) == 0 {
		return ordinary
	}

	rank := make(map[string]int, len(names))
	for i, name := range names {
		rank[name] = i
	}

	out := make([]*Instance, 0, len(ordinary))
	for _, name := range names {
		for _, in := range ordinary {
			if in.Def.Name == name {
				out = append(out, in)
			}
		}
	}
	for _, in := range ordinary {
		if _, listed := rank[in.Def.Name]; !listed {
			out = append(out, in)
		}
	}
	return out
}

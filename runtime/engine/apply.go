// Package engine turns decorator invocations into a composed prompt.
//
// A composition run is a straight pipeline over immutable inputs: parse,
// validate, compatibility-check, instantiate, compose. The registry
// snapshot is read-only shared state, so any number of runs may execute
// concurrently; nothing here blocks, retries or touches I/O.
package engine

import (
	"fmt"

	"github.com/weftlang/weft/core/registry"
	"github.com/weftlang/weft/core/types"
	"github.com/weftlang/weft/runtime/parser"
)

// DefaultStandardVersion is the active standard version used when the
// caller does not pin one.
const DefaultStandardVersion = "1.0.0"

// Options configure one composition run.
type Options struct {
	// StandardVersion is the active standard version checked against each
	// definition's declared range. Empty means DefaultStandardVersion.
	StandardVersion string

	// Context supplies the key/value pairs Conditional predicates evaluate
	// against. Nil means no keys are set.
	Context map[string]string
}

// Result is the outcome of one composition run. On an aborted run Text is
// empty and Diagnostics explain why; a partial prompt is never returned.
type Result struct {
	Text        string
	Diagnostics []types.Diagnostic
	State       State
}

// Aborted reports whether the run ended without producing text.
func (r *Result) Aborted() bool {
	return r.State == StateAborted
}

// Apply parses decorator invocations out of promptText, resolves them
// against the snapshot, and produces the composed prompt. This is the
// engine's public operation; CLIs and integration layers call nothing else.
func Apply(promptText string, snap *registry.Snapshot, opts Options) Result {
	standard := opts.StandardVersion
	if standard == "" {
		standard = DefaultStandardVersion
	}

	parsed := parser.Parse(promptText)
	res := Result{Diagnostics: parsed.Diagnostics, State: StateParsed}

	// Validate each invocation; per-invocation failures drop that
	// invocation, not the prompt. Dropped names are remembered so a Chain
	// referencing one can abort instead of silently running without it.
	var instances []*Instance
	dropped := make(map[string]error)

	for order, inv := range parsed.Invocations {
		def, ok := snap.Lookup(inv.Name)
		if !ok {
			msg := fmt.Sprintf("unknown decorator %q, skipping", inv.Name)
			if suggestion := suggestName(inv.Name, snap.Names()); suggestion != "" {
				msg = fmt.Sprintf("unknown decorator %q, skipping (did you mean %q?)", inv.Name, suggestion)
			}
			d := types.Warning(types.DiagUnknownDecorator, inv.Name, msg)
			span := inv.Span
			d.Span = &span
			res.Diagnostics = append(res.Diagnostics, d)
			continue
		}

		params, diags, err := BindParams(def, inv.Args)
		res.Diagnostics = append(res.Diagnostics, diags...)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, bindDiagnostic(def.Name, err))
			dropped[def.Name] = err
			continue
		}

		instances = append(instances, &Instance{
			Def:    def,
			Params: params,
			Order:  order,
			Span:   inv.Span,
		})
	}
	res.State = StateValidated

	rewritten := rewriteMeta(instances, opts.Context)
	res.Diagnostics = append(res.Diagnostics, rewritten.diags...)

	// Resolve chain stages before the compatibility check so requires and
	// conflicts see every decorator that will actually run.
	stages, stageConsumed, err := resolveChainStages(rewritten.chains, rewritten.instances, dropped, snap)
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, types.Error(types.DiagParameter, "", err.Error()))
		res.State = StateAborted
		return res
	}

	checked := make([]*Instance, 0, len(rewritten.instances)+len(stages))
	checked = append(checked, rewritten.instances...)
	for _, stage := range stages {
		if !stageConsumed[stage] {
			checked = append(checked, stage)
		}
	}

	if errs := CheckCompatibility(checked, standard); len(errs) > 0 {
		for _, cerr := range errs {
			res.Diagnostics = append(res.Diagnostics, compatDiagnostic(cerr))
		}
		res.State = StateAborted
		return res
	}
	res.State = StateCompatibilityChecked

	// Instances consumed by a chain compose inside the fold, not flat.
	consumed := make(map[*Instance]bool, len(stages))
	for _, stage := range stages {
		consumed[stage] = true
	}

	var fragments []Fragment
	for _, in := range rewritten.instances {
		if consumed[in] {
			continue
		}
		fragments = append(fragments, Instantiate(in))
	}
	res.State = StateInstantiated

	body := parsed.Body
	for _, stage := range stages {
		body = Compose(body, []Fragment{Instantiate(stage)})
	}

	res.Text = Compose(body, fragments)
	res.State = StateComposed
	return res
}

// resolveChainStages expands each Chain instance into its ordered stage
// instances. A stage name matching a present instance consumes that
// instance (its parameters apply inside the fold); otherwise the stage runs
// with the definition's defaults. Any failure inside a chain is fatal for
// the whole composition.
func resolveChainStages(
	chains []*Instance,
	ordinary []*Instance,
	dropped map[string]error,
	snap *registry.Snapshot,
) (stages []*Instance, consumed map[*Instance]bool, err error) {
	consumed = make(map[*Instance]bool)

	for _, chain := range chains {
		for _, name := range chain.namesParam("decorators") {
			if derr, wasDropped := dropped[name]; wasDropped {
				return nil, nil, &ChainError{Stage: name, Err: derr}
			}

			if existing := lastByName(ordinary, name); existing != nil {
				stages = append(stages, existing)
				consumed[existing] = true
				continue
			}

			def, ok := snap.Lookup(name)
			if !ok {
				return nil, nil, &ChainError{Stage: name, Err: fmt.Errorf("unknown decorator %q", name)}
			}
			if def.Meta != types.MetaNone {
				return nil, nil, &ChainError{Stage: name, Err: fmt.Errorf("meta decorator %q cannot be chained", name)}
			}
			params, _, berr := BindParams(def, nil)
			if berr != nil {
				return nil, nil, &ChainError{Stage: name, Err: berr}
			}
			stages = append(stages, &Instance{Def: def, Params: params, Order: chain.Order})
		}
	}
	return stages, consumed, nil
}

func lastByName(instances []*Instance, name string) *Instance {
	var found *Instance
	for _, in := range instances {
		if in.Def.Name == name {
			found = in
		}
	}
	return found
}

// bindDiagnostic converts a validation failure into its diagnostic.
func bindDiagnostic(decorator string, err error) types.Diagnostic {
	if _, ok := err.(*MissingParameterError); ok {
		return types.Error(types.DiagMissingParameter, decorator, err.Error())
	}
	return types.Error(types.DiagParameter, decorator, err.Error())
}

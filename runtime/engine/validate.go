package engine

import (
	"fmt"
	"strconv"

	"github.com/weftlang/weft/core/types"
	"github.com/weftlang/weft/runtime/parser"
)

// BindParams validates raw invocation arguments against a definition and
// produces the typed parameter map. Typed values are string, float64, bool
// or []any. An optional parameter that is absent and has no default is
// simply left out of the map: the instantiator treats absence as "omit this
// parameter's clause".
//
// Unknown argument names are a warning, not a failure: older registry
// definitions must keep working against newer prompts.
func BindParams(def types.Definition, args []parser.Arg) (map[string]any, []types.Diagnostic, error) {
	var diags []types.Diagnostic

	supplied := make(map[string]parser.Value, len(args))
	for _, arg := range args {
		if _, known := def.Parameters[arg.Name]; !known {
			diags = append(diags, types.Warning(types.DiagUnknownParameter, def.Name,
				fmt.Sprintf("ignoring unknown parameter %q", arg.Name)))
			continue
		}
		supplied[arg.Name] = arg.Value
	}

	params := make(map[string]any, len(supplied))
	for _, spec := range def.OrderedParams() {
		raw, present := supplied[spec.Name]
		if !present {
			if spec.Required {
				return nil, diags, &MissingParameterError{Decorator: def.Name, Parameter: spec.Name}
			}
			if spec.HasDefault() {
				params[spec.Name] = normalizeDefault(spec.Default)
			}
			continue
		}

		v, err := coerce(def.Name, &spec, raw)
		if err != nil {
			return nil, diags, err
		}
		params[spec.Name] = v
	}

	return params, diags, nil
}

// coerce converts a parsed value to the spec's declared type, enforcing
// range and enum constraints.
func coerce(decorator string, spec *types.ParamSpec, raw parser.Value) (any, error) {
	switch spec.Type {
	case types.TypeString:
		if raw.Kind != parser.ValueString {
			return nil, typeError(decorator, spec, raw, "expected a string")
		}
		return raw.Str, nil

	case types.TypeNumber:
		if raw.Kind != parser.ValueNumber {
			return nil, typeError(decorator, spec, raw, "expected a number")
		}
		if spec.Minimum != nil && raw.Num < *spec.Minimum {
			return nil, &ParameterError{
				Decorator:  decorator,
				Parameter:  spec.Name,
				Constraint: fmt.Sprintf("value must be >= %s", formatNumber(*spec.Minimum)),
				Value:      raw.Text(),
			}
		}
		if spec.Maximum != nil && raw.Num > *spec.Maximum {
			return nil, &ParameterError{
				Decorator:  decorator,
				Parameter:  spec.Name,
				Constraint: fmt.Sprintf("value must be <= %s", formatNumber(*spec.Maximum)),
				Value:      raw.Text(),
			}
		}
		return raw.Num, nil

	case types.TypeBool:
		if raw.Kind != parser.ValueBool {
			return nil, typeError(decorator, spec, raw, "expected true or false")
		}
		return raw.Bool, nil

	case types.TypeEnum:
		if raw.Kind != parser.ValueString {
			return nil, typeError(decorator, spec, raw, "expected one of "+enumList(spec.AllowedValues))
		}
		for _, allowed := range spec.AllowedValues {
			if raw.Str == allowed {
				return raw.Str, nil
			}
		}
		return nil, &ParameterError{
			Decorator:  decorator,
			Parameter:  spec.Name,
			Constraint: "value must be one of " + enumList(spec.AllowedValues),
			Value:      raw.Str,
		}

	case types.TypeArray:
		if raw.Kind != parser.ValueArray {
			return nil, typeError(decorator, spec, raw, "expected an array")
		}
		elemSpec := types.ParamSpec{Name: spec.Name, Type: spec.ElementType}
		out := make([]any, 0, len(raw.Elems))
		for _, elem := range raw.Elems {
			v, err := coerce(decorator, &elemSpec, elem)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("decorator %q: parameter %q has unsupported type %q",
			decorator, spec.Name, spec.Type)
	}
}

func typeError(decorator string, spec *types.ParamSpec, raw parser.Value, constraint string) error {
	return &ParameterError{
		Decorator:  decorator,
		Parameter:  spec.Name,
		Constraint: fmt.Sprintf("%s, got %s", constraint, raw.Kind),
		Value:      raw.Text(),
	}
}

func enumList(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += strconv.Quote(v)
	}
	return out
}

// normalizeDefault converts declared defaults to the typed-map
// representation so instantiation does not care where a value came from.
func normalizeDefault(v any) any {
	switch d := v.(type) {
	case int:
		return float64(d)
	case int64:
		return float64(d)
	case []any:
		out := make([]any, len(d))
		for i, e := range d {
			out[i] = normalizeDefault(e)
		}
		return out
	default:
		return v
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

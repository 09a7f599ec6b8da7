package types

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ParamSpec describes a single decorator parameter
type ParamSpec struct {
	Name        string    // Parameter name, unique within a definition
	Type        ParamType // Declared type
	Description string    // Human-readable description
	Required    bool      // Whether the parameter must be supplied
	Default     any       // Default value if not provided (type-matching)
	Examples    []string  // Example values for documentation

	// Validation constraints
	AllowedValues []string // For TypeEnum: the closed value set
	Minimum       *float64 // For TypeNumber
	Maximum       *float64 // For TypeNumber

	// For TypeArray: element type (string, number or boolean)
	ElementType ParamType
}

// HasDefault reports whether the spec carries a default value.
func (p *ParamSpec) HasDefault() bool {
	return p.Default != nil
}

// MappingRule describes how a parameter value becomes an instruction clause.
// Exactly one of ValueMap or Format should be set; a rule with neither
// contributes nothing.
type MappingRule struct {
	// ValueMap maps a value's canonical string form to a fixed clause.
	// A value with no entry contributes no clause.
	ValueMap map[string]string

	// Format is a clause template with a single {value} placeholder that
	// receives the parameter's canonical string form.
	Format string
}

// Template is a decorator's transformation template: the base instruction
// plus per-parameter mapping rules and composition metadata.
type Template struct {
	Instruction string                 // Base instruction text
	Mappings    map[string]MappingRule // Parameter name -> mapping rule
	Placement   Placement              // Where the fragment attaches
	Behavior    CompositionBehavior    // accumulate or override
}

// Compatibility declares relationships to other decorators and to the
// overall standard version.
type Compatibility struct {
	Requires    []string // Decorator names that must also be present
	Conflicts   []string // Decorator names that must not be present
	MinStandard string   // Minimum standard version (semver), empty = unbounded
	MaxStandard string   // Maximum standard version (semver), empty = unbounded
}

// SupportsStandard reports whether the given standard version falls inside
// the declared [MinStandard, MaxStandard] range. Versions are compared as
// semantic versions; empty bounds are open.
func (c *Compatibility) SupportsStandard(version string) bool {
	v := canonicalSemver(version)
	if !semver.IsValid(v) {
		return false
	}
	if c.MinStandard != "" && semver.Compare(v, canonicalSemver(c.MinStandard)) < 0 {
		return false
	}
	if c.MaxStandard != "" && semver.Compare(v, canonicalSemver(c.MaxStandard)) > 0 {
		return false
	}
	return true
}

// canonicalSemver normalizes a version to the "v"-prefixed form x/mod expects.
func canonicalSemver(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

// Definition is an immutable decorator definition: identity, parameters,
// transformation template and compatibility metadata. Loaded once per
// registry entry and shared read-only afterwards.
type Definition struct {
	Name        string // Unique identifier, case-sensitive
	Version     string // Semantic version of this definition
	Description string // One-line summary
	Category    string // Grouping for discovery tooling ("tone", "structure", ...)

	Parameters map[string]ParamSpec // All parameters by name
	ParamOrder []string             // Declaration order (drives clause ordering)

	Template Template
	Compat   Compatibility

	// Meta marks the definition as a meta decorator. Meta definitions carry
	// parameters but no transformation template.
	Meta MetaKind
}

// OrderedParams returns the parameter specs in declaration order.
func (d *Definition) OrderedParams() []ParamSpec {
	out := make([]ParamSpec, 0, len(d.ParamOrder))
	for _, name := range d.ParamOrder {
		if p, ok := d.Parameters[name]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the definition for structural errors. It is called on
// every definition before it enters a catalog.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("definition name cannot be empty")
	}
	if !semver.IsValid(canonicalSemver(d.Version)) {
		return fmt.Errorf("definition %q: invalid version %q", d.Name, d.Version)
	}

	for name, param := range d.Parameters {
		if param.Name == "" {
			return fmt.Errorf("definition %q: parameter name cannot be empty", d.Name)
		}
		if param.Name != name {
			return fmt.Errorf("definition %q: parameter key %q does not match name %q", d.Name, name, param.Name)
		}
		if !param.Type.IsValid() {
			return fmt.Errorf("definition %q: parameter %q has unknown type %q", d.Name, name, param.Type)
		}
		if param.Type == TypeEnum && len(param.AllowedValues) == 0 {
			return fmt.Errorf("definition %q: enum parameter %q has no allowed values", d.Name, name)
		}
		if param.Type == TypeArray && !param.ElementType.IsValid() {
			return fmt.Errorf("definition %q: array parameter %q has unknown element type %q", d.Name, name, param.ElementType)
		}
		if param.Required && param.Default != nil {
			return fmt.Errorf("definition %q: parameter %q cannot be both required and have a default", d.Name, name)
		}
		if param.Minimum != nil && param.Maximum != nil && *param.Minimum > *param.Maximum {
			return fmt.Errorf("definition %q: parameter %q minimum (%v) exceeds maximum (%v)",
				d.Name, name, *param.Minimum, *param.Maximum)
		}
		if param.Default != nil {
			if err := validateDefault(&param); err != nil {
				return fmt.Errorf("definition %q: %w", d.Name, err)
			}
		}
	}

	for _, name := range d.ParamOrder {
		if _, ok := d.Parameters[name]; !ok {
			return fmt.Errorf("definition %q: parameter %q in order but not declared", d.Name, name)
		}
	}
	if len(d.ParamOrder) != len(d.Parameters) {
		return fmt.Errorf("definition %q: parameter order lists %d names for %d parameters",
			d.Name, len(d.ParamOrder), len(d.Parameters))
	}

	if d.Meta == MetaNone {
		if d.Template.Instruction == "" {
			return fmt.Errorf("definition %q: transformation instruction cannot be empty", d.Name)
		}
		if !d.Template.Placement.IsValid() {
			return fmt.Errorf("definition %q: unknown placement %q", d.Name, d.Template.Placement)
		}
		if !d.Template.Behavior.IsValid() {
			return fmt.Errorf("definition %q: unknown composition behavior %q", d.Name, d.Template.Behavior)
		}
		for name := range d.Template.Mappings {
			if _, ok := d.Parameters[name]; !ok {
				return fmt.Errorf("definition %q: mapping for undeclared parameter %q", d.Name, name)
			}
		}
	}

	if d.Compat.MinStandard != "" && !semver.IsValid(canonicalSemver(d.Compat.MinStandard)) {
		return fmt.Errorf("definition %q: invalid minStandardVersion %q", d.Name, d.Compat.MinStandard)
	}
	if d.Compat.MaxStandard != "" && !semver.IsValid(canonicalSemver(d.Compat.MaxStandard)) {
		return fmt.Errorf("definition %q: invalid maxStandardVersion %q", d.Name, d.Compat.MaxStandard)
	}

	return nil
}

// validateDefault checks that a default value matches the declared type.
func validateDefault(p *ParamSpec) error {
	switch p.Type {
	case TypeString:
		if _, ok := p.Default.(string); !ok {
			return fmt.Errorf("parameter %q: default %v is not a string", p.Name, p.Default)
		}
	case TypeNumber:
		switch p.Default.(type) {
		case int, int64, float64:
		default:
			return fmt.Errorf("parameter %q: default %v is not a number", p.Name, p.Default)
		}
	case TypeBool:
		if _, ok := p.Default.(bool); !ok {
			return fmt.Errorf("parameter %q: default %v is not a boolean", p.Name, p.Default)
		}
	case TypeEnum:
		s, ok := p.Default.(string)
		if !ok {
			return fmt.Errorf("parameter %q: default %v is not a string", p.Name, p.Default)
		}
		for _, allowed := range p.AllowedValues {
			if s == allowed {
				return nil
			}
		}
		return fmt.Errorf("parameter %q: default %q not in allowed values %v", p.Name, s, p.AllowedValues)
	case TypeArray:
		if _, ok := p.Default.([]any); !ok {
			return fmt.Errorf("parameter %q: default %v is not an array", p.Name, p.Default)
		}
	}
	return nil
}

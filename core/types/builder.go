package types

import "fmt"

// DefinitionBuilder provides a fluent API for building decorator definitions.
// Builders are the canonical way the builtin set declares itself; the loader
// constructs Definitions directly from registry documents instead.
type DefinitionBuilder struct {
	def Definition
}

// NewDefinition creates a definition builder.
func NewDefinition(name, version string) *DefinitionBuilder {
	return &DefinitionBuilder{
		def: Definition{
			Name:       name,
			Version:    version,
			Parameters: make(map[string]ParamSpec),
			Template: Template{
				Mappings:  make(map[string]MappingRule),
				Placement: PlacePrepend,
				Behavior:  ComposeAccumulate,
			},
		},
	}
}

// Description sets the one-line summary.
func (b *DefinitionBuilder) Description(desc string) *DefinitionBuilder {
	b.def.Description = desc
	return b
}

// Category sets the discovery grouping.
func (b *DefinitionBuilder) Category(category string) *DefinitionBuilder {
	b.def.Category = category
	return b
}

// Instruction sets the base instruction of the transformation template.
func (b *DefinitionBuilder) Instruction(text string) *DefinitionBuilder {
	b.def.Template.Instruction = text
	return b
}

// Placement sets where the instruction fragment attaches.
func (b *DefinitionBuilder) Placement(p Placement) *DefinitionBuilder {
	b.def.Template.Placement = p
	return b
}

// Behavior sets the composition behavior for repeated same-name fragments.
func (b *DefinitionBuilder) Behavior(behavior CompositionBehavior) *DefinitionBuilder {
	b.def.Template.Behavior = behavior
	return b
}

// Requires declares decorators that must accompany this one.
func (b *DefinitionBuilder) Requires(names ...string) *DefinitionBuilder {
	b.def.Compat.Requires = append(b.def.Compat.Requires, names...)
	return b
}

// Conflicts declares decorators that must not accompany this one.
func (b *DefinitionBuilder) Conflicts(names ...string) *DefinitionBuilder {
	b.def.Compat.Conflicts = append(b.def.Compat.Conflicts, names...)
	return b
}

// Standard sets the supported standard version range. Empty bounds are open.
func (b *DefinitionBuilder) Standard(minVersion, maxVersion string) *DefinitionBuilder {
	b.def.Compat.MinStandard = minVersion
	b.def.Compat.MaxStandard = maxVersion
	return b
}

// Meta marks this definition as a meta decorator.
func (b *DefinitionBuilder) Meta(kind MetaKind) *DefinitionBuilder {
	b.def.Meta = kind
	return b
}

// ParamString adds a string parameter builder.
func (b *DefinitionBuilder) ParamString(name, description string) *SpecBuilder {
	return b.param(name, TypeString, description)
}

// ParamNumber adds a number parameter builder.
func (b *DefinitionBuilder) ParamNumber(name, description string) *SpecBuilder {
	return b.param(name, TypeNumber, description)
}

// ParamBool adds a boolean parameter builder.
func (b *DefinitionBuilder) ParamBool(name, description string) *SpecBuilder {
	return b.param(name, TypeBool, description)
}

// ParamEnum adds an enum parameter builder with its closed value set.
func (b *DefinitionBuilder) ParamEnum(name, description string, values ...string) *SpecBuilder {
	sb := b.param(name, TypeEnum, description)
	sb.spec.AllowedValues = values
	return sb
}

// ParamArray adds an array parameter builder with the given element type.
func (b *DefinitionBuilder) ParamArray(name, description string, elem ParamType) *SpecBuilder {
	sb := b.param(name, TypeArray, description)
	sb.spec.ElementType = elem
	return sb
}

func (b *DefinitionBuilder) param(name string, typ ParamType, description string) *SpecBuilder {
	return &SpecBuilder{
		parent: b,
		spec: ParamSpec{
			Name:        name,
			Type:        typ,
			Description: description,
		},
	}
}

// Build validates and returns the constructed definition.
// Panics on structural errors: builders run at init time from builtin
// declarations, so a bad definition is a programming error.
func (b *DefinitionBuilder) Build() Definition {
	if err := b.def.Validate(); err != nil {
		panic(fmt.Sprintf("invalid definition %q: %v", b.def.Name, err))
	}
	return b.def
}

// SpecBuilder provides a fluent API for building a single parameter spec.
type SpecBuilder struct {
	parent *DefinitionBuilder
	spec   ParamSpec

	valueMap map[string]string
	format   string
}

// Required marks the parameter as required.
func (sb *SpecBuilder) Required() *SpecBuilder {
	sb.spec.Required = true
	return sb
}

// Default sets the default value and marks the parameter optional.
func (sb *SpecBuilder) Default(value any) *SpecBuilder {
	sb.spec.Default = value
	sb.spec.Required = false
	return sb
}

// Examples adds example values for documentation.
func (sb *SpecBuilder) Examples(examples ...string) *SpecBuilder {
	sb.spec.Examples = examples
	return sb
}

// Min sets the minimum value constraint (number parameters).
func (sb *SpecBuilder) Min(minVal float64) *SpecBuilder {
	sb.spec.Minimum = &minVal
	return sb
}

// Max sets the maximum value constraint (number parameters).
func (sb *SpecBuilder) Max(maxVal float64) *SpecBuilder {
	sb.spec.Maximum = &maxVal
	return sb
}

// MapValues attaches a valueMap mapping rule: canonical value string to
// fixed instruction clause. Pairs alternate key, clause.
func (sb *SpecBuilder) MapValues(pairs ...string) *SpecBuilder {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("parameter %q: MapValues needs key/clause pairs", sb.spec.Name))
	}
	if sb.valueMap == nil {
		sb.valueMap = make(map[string]string, len(pairs)/2)
	}
	for i := 0; i < len(pairs); i += 2 {
		sb.valueMap[pairs[i]] = pairs[i+1]
	}
	return sb
}

// Format attaches a format mapping rule; template must contain a single
// {value} placeholder.
func (sb *SpecBuilder) Format(template string) *SpecBuilder {
	sb.format = template
	return sb
}

// Done finishes the parameter and returns to the definition builder.
func (sb *SpecBuilder) Done() *DefinitionBuilder {
	parent := sb.parent
	parent.def.Parameters[sb.spec.Name] = sb.spec
	parent.def.ParamOrder = append(parent.def.ParamOrder, sb.spec.Name)

	if sb.valueMap != nil || sb.format != "" {
		parent.def.Template.Mappings[sb.spec.Name] = MappingRule{
			ValueMap: sb.valueMap,
			Format:   sb.format,
		}
	}
	return parent
}

package loader

import (
	"fmt"

	"github.com/weftlang/weft/core/types"
)

// document mirrors the registry source record shape: one decorator
// definition per file, fields named as the interchange format names them.
type document struct {
	DecoratorName string          `json:"decoratorName"`
	Version       string          `json:"version"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Meta          string          `json:"meta,omitempty"`
	Parameters    []docParameter  `json:"parameters,omitempty"`
	Template      *docTemplate    `json:"transformationTemplate,omitempty"`
	Compatibility *docCompat      `json:"compatibility,omitempty"`
}

type docParameter struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Description   string   `json:"description,omitempty"`
	Required      bool     `json:"required,omitempty"`
	Default       any      `json:"default,omitempty"`
	AllowedValues []string `json:"allowedValues,omitempty"`
	Minimum       *float64 `json:"minimum,omitempty"`
	Maximum       *float64 `json:"maximum,omitempty"`
	ElementType   string   `json:"elementType,omitempty"`
	Examples      []string `json:"examples,omitempty"`
}

type docTemplate struct {
	Instruction string                `json:"instruction"`
	Placement   string                `json:"placement,omitempty"`
	Behavior    string                `json:"compositionBehavior,omitempty"`
	Mapping     map[string]docMapping `json:"parameterMapping,omitempty"`
}

type docMapping struct {
	ValueMap map[string]string `json:"valueMap,omitempty"`
	Format   string            `json:"format,omitempty"`
}

type docCompat struct {
	Requires    []string `json:"requires,omitempty"`
	Conflicts   []string `json:"conflicts,omitempty"`
	MinStandard string   `json:"minStandardVersion,omitempty"`
	MaxStandard string   `json:"maxStandardVersion,omitempty"`
}

// toDefinition converts a schema-validated document into the engine's
// definition model. Structural validation happens again in registry.Build;
// this only maps shapes.
func (doc *document) toDefinition() (types.Definition, error) {
	def := types.Definition{
		Name:        doc.DecoratorName,
		Version:     doc.Version,
		Description: doc.Description,
		Category:    doc.Category,
		Parameters:  make(map[string]types.ParamSpec, len(doc.Parameters)),
	}

	switch doc.Meta {
	case "":
		def.Meta = types.MetaNone
	case "chain":
		def.Meta = types.MetaChain
	case "override":
		def.Meta = types.MetaOverride
	case "conditional":
		def.Meta = types.MetaConditional
	case "priority":
		def.Meta = types.MetaPriority
	default:
		return types.Definition{}, fmt.Errorf("definition %q: unknown meta kind %q", doc.DecoratorName, doc.Meta)
	}

	for _, p := range doc.Parameters {
		if _, dup := def.Parameters[p.Name]; dup {
			return types.Definition{}, fmt.Errorf("definition %q: duplicate parameter %q", doc.DecoratorName, p.Name)
		}
		def.Parameters[p.Name] = types.ParamSpec{
			Name:          p.Name,
			Type:          types.ParamType(p.Type),
			Description:   p.Description,
			Required:      p.Required,
			Default:       p.Default,
			AllowedValues: p.AllowedValues,
			Minimum:       p.Minimum,
			Maximum:       p.Maximum,
			ElementType:   types.ParamType(p.ElementType),
			Examples:      p.Examples,
		}
		def.ParamOrder = append(def.ParamOrder, p.Name)
	}

	if doc.Template != nil {
		def.Template = types.Template{
			Instruction: doc.Template.Instruction,
			Placement:   types.Placement(doc.Template.Placement),
			Behavior:    types.CompositionBehavior(doc.Template.Behavior),
			Mappings:    make(map[string]types.MappingRule, len(doc.Template.Mapping)),
		}
		if def.Template.Placement == "" {
			def.Template.Placement = types.PlacePrepend
		}
		if def.Template.Behavior == "" {
			def.Template.Behavior = types.ComposeAccumulate
		}
		for name, m := range doc.Template.Mapping {
			def.Template.Mappings[name] = types.MappingRule{ValueMap: m.ValueMap, Format: m.Format}
		}
	} else if def.Meta == types.MetaNone {
		return types.Definition{}, fmt.Errorf("definition %q: missing transformationTemplate", doc.DecoratorName)
	}

	if doc.Compatibility != nil {
		def.Compat = types.Compatibility{
			Requires:    doc.Compatibility.Requires,
			Conflicts:   doc.Compatibility.Conflicts,
			MinStandard: doc.Compatibility.MinStandard,
			MaxStandard: doc.Compatibility.MaxStandard,
		}
	}

	return def, nil
}

// Package registry holds the Definition Catalog: an immutable snapshot of
// decorator definitions that compositions resolve against. Snapshots are
// built once and shared read-only; reload replaces the whole snapshot
// atomically so in-flight compositions always see a consistent catalog.
package registry

import (
	"fmt"
	"sort"

	"github.com/weftlang/weft/core/types"
)

// Snapshot is an immutable catalog of decorator definitions.
// Safe for concurrent reads without locking; never mutated after Build.
type Snapshot struct {
	defs  map[string]types.Definition
	names []string // sorted, for deterministic listing
}

// Build validates the given definitions and constructs a snapshot.
// Names must be unique; later duplicates are rejected rather than silently
// shadowing earlier entries (the loader resolves file-level duplicates
// before calling Build).
func Build(defs []types.Definition) (*Snapshot, error) {
	s := &Snapshot{
		defs: make(map[string]types.Definition, len(defs)),
	}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, exists := s.defs[def.Name]; exists {
			return nil, fmt.Errorf("duplicate definition %q", def.Name)
		}
		s.defs[def.Name] = def
		s.names = append(s.names, def.Name)
	}
	sort.Strings(s.names)
	return s, nil
}

// Lookup retrieves a definition by name (case-sensitive).
func (s *Snapshot) Lookup(name string) (types.Definition, bool) {
	def, ok := s.defs[name]
	return def, ok
}

// Names returns all definition names in sorted order.
func (s *Snapshot) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of definitions in the catalog.
func (s *Snapshot) Len() int {
	return len(s.defs)
}

// Definitions returns all definitions in sorted name order.
func (s *Snapshot) Definitions() []types.Definition {
	out := make([]types.Definition, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.defs[name])
	}
	return out
}

// Summary is the read-only discovery export for one decorator.
// Consumed by documentation and CLI layers; carries no engine state.
type Summary struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Category    string         `json:"category,omitempty"`
	Description string         `json:"description,omitempty"`
	Parameters  []ParamSummary `json:"parameters,omitempty"`
}

// ParamSummary describes one parameter in a discovery export.
type ParamSummary struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Default     any      `json:"default,omitempty"`
	Allowed     []string `json:"allowedValues,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// List returns discovery summaries for every definition, sorted by name.
func (s *Snapshot) List() []Summary {
	out := make([]Summary, 0, len(s.names))
	for _, name := range s.names {
		def := s.defs[name]
		summary := Summary{
			Name:        def.Name,
			Version:     def.Version,
			Category:    def.Category,
			Description: def.Description,
		}
		for _, p := range def.OrderedParams() {
			summary.Parameters = append(summary.Parameters, ParamSummary{
				Name:        p.Name,
				Type:        string(p.Type),
				Description: p.Description,
				Required:    p.Required,
				Default:     p.Default,
				Allowed:     p.AllowedValues,
				Examples:    p.Examples,
			})
		}
		out = append(out, summary)
	}
	return out
}

// Package loader populates registry snapshots from on-disk definition
// files. The engine itself never touches storage: it consumes the snapshot
// the loader builds. Files are JSON or YAML, one decorator definition per
// file, validated against an embedded JSON Schema before decoding.
package loader

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/weftlang/weft/core/registry"
	"github.com/weftlang/weft/core/types"
)

// Load walks dir for *.json and *.yaml definition files (sorted path
// order), validates and decodes each, and builds a snapshot. When two files
// define the same decorator name the later file wins with a warning; a file
// that fails schema validation fails the whole load, since a registry with
// silently missing entries would shift errors to composition time.
func Load(dir string) (*registry.Snapshot, []types.Diagnostic, error) {
	cached, diags, err := loadCached(dir)
	if err == nil && cached != nil {
		return cached, diags, nil
	}

	defs, diags, err := loadDefinitions(dir)
	if err != nil {
		return nil, diags, err
	}

	snap, err := registry.Build(defs)
	if err != nil {
		return nil, diags, err
	}

	// Cache write failures are not load failures
	if err := writeCache(dir, defs); err != nil {
		diags = append(diags, types.Warning(types.DiagSyntaxSkip, "",
			fmt.Sprintf("could not write registry cache: %v", err)))
	}

	return snap, diags, nil
}

// loadDefinitions reads and decodes every definition file under dir.
func loadDefinitions(dir string) ([]types.Definition, []types.Diagnostic, error) {
	paths, err := definitionFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no definition files found in %s", dir)
	}

	var diags []types.Diagnostic
	byName := make(map[string]int)
	var defs []types.Definition

	for _, path := range paths {
		def, err := loadFile(path)
		if err != nil {
			return nil, diags, fmt.Errorf("%s: %w", path, err)
		}

		if prev, dup := byName[def.Name]; dup {
			diags = append(diags, types.Warning(types.DiagSyntaxSkip, def.Name,
				fmt.Sprintf("definition %q in %s shadows an earlier file", def.Name, filepath.Base(path))))
			defs[prev] = def
			continue
		}
		byName[def.Name] = len(defs)
		defs = append(defs, def)
	}

	return defs, diags, nil
}

// loadFile parses one definition file: decode to a generic document,
// validate against the registry schema, then decode into the typed model.
func loadFile(path string) (types.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Definition{}, err
	}

	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return types.Definition{}, fmt.Errorf("invalid JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return types.Definition{}, fmt.Errorf("invalid YAML: %w", err)
		}
		raw = normalizeYAML(raw)
	default:
		return types.Definition{}, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}

	if err := documentSchema().Validate(raw); err != nil {
		return types.Definition{}, fmt.Errorf("schema validation failed: %w", err)
	}

	// Round-trip through JSON so JSON and YAML sources decode identically
	encoded, err := json.Marshal(raw)
	if err != nil {
		return types.Definition{}, err
	}
	var doc document
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return types.Definition{}, err
	}

	return doc.toDefinition()
}

// definitionFiles lists definition files under dir in sorted path order.
// Dotfiles and the cache file are skipped.
func definitionFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// normalizeYAML rewrites yaml.v3 decoded values into the shapes the JSON
// Schema validator and the JSON round-trip expect.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = normalizeYAML(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalizeYAML(elem)
		}
		return out
	default:
		return v
	}
}

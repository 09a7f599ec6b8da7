package engine

import (
	"github.com/weftlang/weft/core/types"
)

// CheckCompatibility verifies declared requires/conflicts relationships and
// standard version ranges across the full ordered instance list. It runs
// once, after validation and before composition.
//
// All failures are collected rather than stopping at the first: the caller
// aborts the whole composition either way, and a complete report beats a
// drip-feed of one error per attempt.
func CheckCompatibility(instances []*Instance, standardVersion string) []error {
	var errs []error

	present := make(map[string]bool, len(instances))
	for _, in := range instances {
		present[in.Def.Name] = true
	}

	seenConflict := make(map[[2]string]bool)

	for _, in := range instances {
		for _, conflict := range in.Def.Compat.Conflicts {
			if !present[conflict] {
				continue
			}
			// Report each conflicting pair once, whichever side declared it
			pair := orderedPair(in.Def.Name, conflict)
			if seenConflict[pair] {
				continue
			}
			seenConflict[pair] = true
			errs = append(errs, &ConflictError{Decorator: in.Def.Name, Conflict: conflict})
		}

		for _, required := range in.Def.Compat.Requires {
			if !present[required] {
				errs = append(errs, &MissingRequirementError{Decorator: in.Def.Name, Required: required})
			}
		}

		if !in.Def.Compat.SupportsStandard(standardVersion) {
			errs = append(errs, &VersionError{
				Decorator: in.Def.Name,
				Min:       in.Def.Compat.MinStandard,
				Max:       in.Def.Compat.MaxStandard,
				Active:    standardVersion,
			})
		}
	}

	return errs
}

func orderedPair(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// compatDiagnostic converts a compatibility failure into its diagnostic.
func compatDiagnostic(err error) types.Diagnostic {
	switch e := err.(type) {
	case *ConflictError:
		return types.Error(types.DiagConflict, e.Decorator, e.Error())
	case *MissingRequirementError:
		return types.Error(types.DiagMissingRequirement, e.Decorator, e.Error())
	case *VersionError:
		return types.Error(types.DiagVersion, e.Decorator, e.Error())
	default:
		return types.Error(types.DiagConflict, "", err.Error())
	}
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlang/weft/core/types"
)

func instanceOf(def types.Definition) *Instance {
	return &Instance{Def: def, Params: map[string]any{}}
}

func simpleDef(name string) types.Definition {
	return types.NewDefinition(name, "1.0.0").Instruction("Do " + name + ".").Build()
}

func TestCheckCompatibilityCleanList(t *testing.T) {
	errs := CheckCompatibility([]*Instance{
		instanceOf(simpleDef("A")),
		instanceOf(simpleDef("B")),
	}, "1.0.0")
	assert.Empty(t, errs)
}

func TestCheckCompatibilityConflictIsSymmetric(t *testing.T) {
	eli5 := types.NewDefinition("ELI5", "1.0.0").
		Instruction("Explain simply.").
		Conflicts("Academic").
		Build()
	academic := simpleDef("Academic")

	// Only ELI5 declares the conflict; both orders must fail identically
	forward := CheckCompatibility([]*Instance{instanceOf(eli5), instanceOf(academic)}, "1.0.0")
	reverse := CheckCompatibility([]*Instance{instanceOf(academic), instanceOf(eli5)}, "1.0.0")

	require.Len(t, forward, 1)
	require.Len(t, reverse, 1)

	var conflict *ConflictError
	require.ErrorAs(t, forward[0], &conflict)
	require.ErrorAs(t, reverse[0], &conflict)
}

func TestCheckCompatibilityMutualConflictReportedOnce(t *testing.T) {
	a := types.NewDefinition("A", "1.0.0").Instruction("a").Conflicts("B").Build()
	b := types.NewDefinition("B", "1.0.0").Instruction("b").Conflicts("A").Build()

	errs := CheckCompatibility([]*Instance{instanceOf(a), instanceOf(b)}, "1.0.0")
	require.Len(t, errs, 1)
}

func TestCheckCompatibilityMissingRequirement(t *testing.T) {
	a := types.NewDefinition("A", "1.0.0").Instruction("a").Requires("B").Build()

	errs := CheckCompatibility([]*Instance{instanceOf(a)}, "1.0.0")
	require.Len(t, errs, 1)

	var missing *MissingRequirementError
	require.ErrorAs(t, errs[0], &missing)
	assert.Equal(t, "A", missing.Decorator)
	assert.Equal(t, "B", missing.Required)
}

func TestCheckCompatibilityRequirementSatisfied(t *testing.T) {
	a := types.NewDefinition("A", "1.0.0").Instruction("a").Requires("B").Build()

	errs := CheckCompatibility([]*Instance{instanceOf(a), instanceOf(simpleDef("B"))}, "1.0.0")
	assert.Empty(t, errs)
}

func TestCheckCompatibilityVersionRange(t *testing.T) {
	modern := types.NewDefinition("Modern", "1.0.0").
		Instruction("m").
		Standard("2.0.0", "").
		Build()

	errs := CheckCompatibility([]*Instance{instanceOf(modern)}, "1.0.0")
	require.Len(t, errs, 1)

	var verr *VersionError
	require.ErrorAs(t, errs[0], &verr)
	assert.Equal(t, "Modern", verr.Decorator)
	assert.Equal(t, "1.0.0", verr.Active)

	assert.Empty(t, CheckCompatibility([]*Instance{instanceOf(modern)}, "2.1.0"))
}

func TestCheckCompatibilityCollectsAllFailures(t *testing.T) {
	a := types.NewDefinition("A", "1.0.0").Instruction("a").Conflicts("B").Requires("C").Build()

	errs := CheckCompatibility([]*Instance{instanceOf(a), instanceOf(simpleDef("B"))}, "1.0.0")
	assert.Len(t, errs, 2)
}

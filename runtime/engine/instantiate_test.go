package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlang/weft/core/types"
)

func TestInstantiateBaseInstructionOnly(t *testing.T) {
	def := types.NewDefinition("ELI5", "1.0.0").
		Instruction("Explain simply.").
		Build()

	frag := Instantiate(&Instance{Def: def, Params: map[string]any{}})
	assert.Equal(t, "Explain simply.", frag.Text)
	assert.Equal(t, types.PlacePrepend, frag.Placement)
}

func TestInstantiateClausesInDeclarationOrder(t *testing.T) {
	// Clause order follows parameter declaration, not invocation order:
	// the arguments arrive in a map, so declaration order is the only
	// stable ordering.
	params, _, err := BindParams(conciseDef(), args(t, "bulletPoints=true, maxWords=50"))
	require.NoError(t, err)

	frag := Instantiate(&Instance{Def: conciseDef(), Params: params})
	assert.Equal(t, "Keep the response concise. Stay under 50 words. Use bullet points.", frag.Text)
}

func TestInstantiateIsDeterministic(t *testing.T) {
	params, _, err := BindParams(conciseDef(), args(t, "maxWords=50, bulletPoints=true"))
	require.NoError(t, err)

	in := &Instance{Def: conciseDef(), Params: params}
	first := Instantiate(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Instantiate(in))
	}
}

func TestInstantiateOmitsUnsetParameters(t *testing.T) {
	params, _, err := BindParams(conciseDef(), nil)
	require.NoError(t, err)

	frag := Instantiate(&Instance{Def: conciseDef(), Params: params})
	assert.Equal(t, "Keep the response concise.", frag.Text)
	assert.NotContains(t, frag.Text, "undefined")
}

func TestInstantiateValueMapMissingKeyContributesNothing(t *testing.T) {
	// bulletPoints=false has no valueMap entry in conciseDef; the raw
	// value must not leak into the fragment.
	params, _, err := BindParams(conciseDef(), args(t, "bulletPoints=false"))
	require.NoError(t, err)

	frag := Instantiate(&Instance{Def: conciseDef(), Params: params})
	assert.Equal(t, "Keep the response concise.", frag.Text)
}

func TestInstantiateFormatSubstitution(t *testing.T) {
	def := types.NewDefinition("Summary", "1.0.0").
		Instruction("End with a summary.").
		Placement(types.PlaceAppend).
		ParamNumber("sentences", "length").
		Format("Keep it to {value} sentences.").
		Done().
		Build()

	params, _, err := BindParams(def, args(t, "sentences=3"))
	require.NoError(t, err)

	frag := Instantiate(&Instance{Def: def, Params: params})
	assert.Equal(t, "End with a summary. Keep it to 3 sentences.", frag.Text)
	assert.Equal(t, types.PlaceAppend, frag.Placement)
}

func TestInstantiateBooleanValueMap(t *testing.T) {
	def := types.NewDefinition("StepByStep", "1.0.0").
		Instruction("Work in steps.").
		ParamBool("numbered", "number steps").
		Default(true).
		MapValues("true", "Number each step.", "false", "No numbering.").
		Done().
		Build()

	params, _, err := BindParams(def, nil)
	require.NoError(t, err)
	frag := Instantiate(&Instance{Def: def, Params: params})
	assert.Equal(t, "Work in steps. Number each step.", frag.Text)

	params, _, err = BindParams(def, args(t, "numbered=false"))
	require.NoError(t, err)
	frag = Instantiate(&Instance{Def: def, Params: params})
	assert.Equal(t, "Work in steps. No numbering.", frag.Text)
}

func TestInstantiateInstructionOverride(t *testing.T) {
	def := types.NewDefinition("ELI5", "1.0.0").
		Instruction("Explain simply.").
		Build()

	in := &Instance{Def: def, Params: map[string]any{}, instruction: "Explain like a pirate."}
	frag := Instantiate(in)
	assert.Equal(t, "Explain like a pirate.", frag.Text)
}

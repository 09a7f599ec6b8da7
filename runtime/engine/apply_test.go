package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlang/weft/core/types"
	"github.com/weftlang/weft/runtime/builtin"
)

func TestApplySingleDecorator(t *testing.T) {
	res := Apply("+++Tone(style=casual)\nWhy is the sky blue?", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Equal(t, StateComposed, res.State)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t,
		"Adjust your tone for this response. Write in a relaxed, conversational style.\n\nWhy is the sky blue?",
		res.Text)
}

func TestApplyNoInvocationsPassesThrough(t *testing.T) {
	res := Apply("Just a plain prompt.", builtin.Snapshot(), Options{})

	assert.Equal(t, "Just a plain prompt.", res.Text)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, StateComposed, res.State)
}

func TestApplyUnknownDecoratorIsWarning(t *testing.T) {
	res := Apply("+++Nope(x=1)\nHello", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Equal(t, "Hello", res.Text)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, types.SeverityWarning, res.Diagnostics[0].Severity)
	assert.Equal(t, types.DiagUnknownDecorator, res.Diagnostics[0].Kind)
	require.NotNil(t, res.Diagnostics[0].Span)
}

func TestApplyUnknownParameterIsWarning(t *testing.T) {
	res := Apply("+++Tone(style=casual, loud=true)\nHi", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, types.DiagUnknownParameter, res.Diagnostics[0].Kind)
	assert.Equal(t,
		"Adjust your tone for this response. Write in a relaxed, conversational style.\n\nHi",
		res.Text)
}

func TestApplyInvalidParameterDropsInvocation(t *testing.T) {
	res := Apply("+++Tone(style=shouty)\nHi", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Equal(t, "Hi", res.Text)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, types.SeverityError, res.Diagnostics[0].Severity)
	assert.Equal(t, types.DiagParameter, res.Diagnostics[0].Kind)
}

func TestApplyMissingRequiredDropsInvocation(t *testing.T) {
	res := Apply("+++Tone()\nHi", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Equal(t, "Hi", res.Text)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, types.DiagMissingParameter, res.Diagnostics[0].Kind)
}

func TestApplyConflictAborts(t *testing.T) {
	res := Apply("+++ELI5()\n+++Academic()\nExplain quantum entanglement", builtin.Snapshot(), Options{})

	require.True(t, res.Aborted())
	assert.Equal(t, StateAborted, res.State)
	assert.Empty(t, res.Text)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, types.DiagConflict, res.Diagnostics[0].Kind)
	assert.Equal(t, types.SeverityError, res.Diagnostics[0].Severity)
}

func TestApplyMultipleParameterClauses(t *testing.T) {
	res := Apply("+++Concise(maxWords=50, bulletPoints=true)\nDescribe photosynthesis", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t,
		"Keep the response concise. Stay under 50 words. Use bullet points.\n\nDescribe photosynthesis",
		res.Text)
}

func TestApplyAccumulatesInInvocationOrder(t *testing.T) {
	res := Apply("+++ELI5()\n+++CiteSources(inline=false)\nWhat causes tides?", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Equal(t,
		"Explain this as you would to a young child: short sentences, everyday analogies, no jargon.\n"+
			"Support factual claims with their sources. Collect citations in a list at the end.\n\n"+
			"What causes tides?",
		res.Text)
}

func TestApplyAppendPlacement(t *testing.T) {
	res := Apply("+++OutputFormat(format=json)\nList three facts about Mars", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Equal(t,
		"List three facts about Mars\n\n"+
			"Format the entire response as requested. Respond with a single valid JSON document and nothing else.",
		res.Text)
}

func TestApplyOverrideBehaviorKeepsLast(t *testing.T) {
	res := Apply("+++StepByStep(numbered=true)\n+++StepByStep(numbered=false)\nSort a list", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Equal(t,
		"Work through the problem as an explicit sequence of steps. Present the steps without numbering.\n\nSort a list",
		res.Text)
}

func TestApplyDecoratorOnlyPrompt(t *testing.T) {
	res := Apply("+++ELI5()", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Equal(t,
		"Explain this as you would to a young child: short sentences, everyday analogies, no jargon.",
		res.Text)
}

func TestApplyChainFoldsStages(t *testing.T) {
	res := Apply("+++Chain(decorators=[StepByStep, Concise])\nExplain recursion", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Empty(t, res.Diagnostics)
	// Each stage wraps the previous stage's output, so the last stage's
	// instruction ends up outermost.
	assert.Equal(t,
		"Keep the response concise.\n\n"+
			"Work through the problem as an explicit sequence of steps. Number each step.\n\n"+
			"Explain recursion",
		res.Text)
}

func TestApplyChainConsumesMatchingInvocation(t *testing.T) {
	res := Apply("+++Concise(maxWords=30)\n+++Chain(decorators=[Concise])\nExplain DNS", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	// The standalone Concise invocation supplies the stage's parameters and
	// composes once, inside the fold.
	assert.Equal(t,
		"Keep the response concise. Stay under 30 words.\n\nExplain DNS",
		res.Text)
}

func TestApplyChainUnknownStageAborts(t *testing.T) {
	res := Apply("+++Chain(decorators=[Nope])\nHi", builtin.Snapshot(), Options{})

	require.True(t, res.Aborted())
	assert.Empty(t, res.Text)
	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, types.SeverityError, res.Diagnostics[len(res.Diagnostics)-1].Severity)
}

func TestApplyChainDroppedStageAborts(t *testing.T) {
	res := Apply("+++Tone(style=shouty)\n+++Chain(decorators=[Tone])\nHi", builtin.Snapshot(), Options{})

	require.True(t, res.Aborted())
	assert.Empty(t, res.Text)
}

func TestApplyChainNestedMetaAborts(t *testing.T) {
	res := Apply("+++Chain(decorators=[Priority])\nHi", builtin.Snapshot(), Options{})

	require.True(t, res.Aborted())
}

func TestApplyConditionalFromContext(t *testing.T) {
	prompt := "+++ELI5()\n+++Academic()\n+++Conditional(if=\"audience=child\", then=ELI5, else=Academic)\nWhat is gravity?"

	child := Apply(prompt, builtin.Snapshot(), Options{Context: map[string]string{"audience": "child"}})
	require.False(t, child.Aborted())
	assert.Equal(t,
		"Explain this as you would to a young child: short sentences, everyday analogies, no jargon.\n\nWhat is gravity?",
		child.Text)

	adult := Apply(prompt, builtin.Snapshot(), Options{Context: map[string]string{"audience": "adult"}})
	require.False(t, adult.Aborted())
	assert.Equal(t,
		"Respond in an academic register suitable for a scholarly audience. Cite sources in APA format.\n\nWhat is gravity?",
		adult.Text)
}

func TestApplyConditionalResolvesConflictBeforeCheck(t *testing.T) {
	// ELI5 and Academic conflict, but the conditional drops one of them
	// before the compatibility check runs.
	prompt := "+++ELI5()\n+++Academic()\n+++Conditional(if=simple, then=ELI5, else=Academic)\nExplain entropy"

	res := Apply(prompt, builtin.Snapshot(), Options{Context: map[string]string{"simple": "yes"}})
	require.False(t, res.Aborted())
	assert.Empty(t, res.Diagnostics)
}

func TestApplyOverrideMetaRewritesParams(t *testing.T) {
	res := Apply(
		"+++Tone(style=formal)\n+++Override(decorator=Tone, params=\"style=casual\")\nHello there",
		builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Equal(t,
		"Adjust your tone for this response. Write in a relaxed, conversational style.\n\nHello there",
		res.Text)
}

func TestApplyPriorityMetaReorders(t *testing.T) {
	res := Apply(
		"+++ELI5()\n+++CiteSources(inline=false)\n+++Priority(decorators=[CiteSources, ELI5])\nWhy do magnets attract?",
		builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Equal(t,
		"Support factual claims with their sources. Collect citations in a list at the end.\n"+
			"Explain this as you would to a young child: short sentences, everyday analogies, no jargon.\n\n"+
			"Why do magnets attract?",
		res.Text)
}

func TestApplyMalformedLineKeptInBody(t *testing.T) {
	res := Apply("+++Tone(style=casual\nHello", builtin.Snapshot(), Options{})

	require.False(t, res.Aborted())
	assert.Equal(t, "+++Tone(style=casual\nHello", res.Text)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, types.DiagSyntaxSkip, res.Diagnostics[0].Kind)
}

func TestApplyDeterministic(t *testing.T) {
	prompt := "+++Tone(style=technical)\n+++Concise(maxWords=100)\n+++OutputFormat(format=markdown)\nCompare TCP and UDP"

	first := Apply(prompt, builtin.Snapshot(), Options{})
	require.False(t, first.Aborted())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Text, Apply(prompt, builtin.Snapshot(), Options{}).Text)
	}
}

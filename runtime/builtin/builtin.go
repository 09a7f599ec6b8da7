// Package builtin carries the standard decorator definition set. It is the
// default catalog when no registry directory is supplied, and the fixture
// set for engine tests; file-based registries replace it entirely.
package builtin

import (
	"github.com/weftlang/weft/core/registry"
	"github.com/weftlang/weft/core/types"
)

// Definitions returns the standard decorator set.
func Definitions() []types.Definition {
	return []types.Definition{
		tone(),
		stepByStep(),
		eli5(),
		academic(),
		concise(),
		outputFormat(),
		audience(),
		reasoning(),
		summary(),
		citeSources(),

		chain(),
		override(),
		conditional(),
		priority(),
	}
}

// Snapshot builds a snapshot of the standard set.
func Snapshot() *registry.Snapshot {
	snap, err := registry.Build(Definitions())
	if err != nil {
		// The builtin set is declared in this package; failing to build it
		// is a programming error.
		panic(err)
	}
	return snap
}

func tone() types.Definition {
	return types.NewDefinition("Tone", "1.0.0").
		Description("Adjusts the overall tone of the response").
		Category("tone").
		Instruction("Adjust your tone for this response.").
		ParamEnum("style", "Desired tone", "formal", "casual", "friendly", "technical", "humorous").
		Required().
		MapValues(
			"formal", "Write in a formal, professional register.",
			"casual", "Write in a relaxed, conversational style.",
			"friendly", "Write in a warm, approachable style.",
			"technical", "Write precisely, using accurate domain terminology.",
			"humorous", "Write with a light, witty touch where appropriate.",
		).
		Examples("formal", "casual").
		Done().
		Build()
}

func stepByStep() types.Definition {
	return types.NewDefinition("StepByStep", "1.0.0").
		Description("Structures the response as an explicit sequence of steps").
		Category("structure").
		Instruction("Work through the problem as an explicit sequence of steps.").
		Behavior(types.ComposeOverride).
		ParamBool("numbered", "Number each step").
		Default(true).
		MapValues(
			"true", "Number each step.",
			"false", "Present the steps without numbering.",
		).
		Done().
		Build()
}

func eli5() types.Definition {
	return types.NewDefinition("ELI5", "1.0.0").
		Description("Explains as if to a five-year-old").
		Category("audience").
		Instruction("Explain this as you would to a young child: short sentences, everyday analogies, no jargon.").
		Conflicts("Academic").
		Build()
}

func academic() types.Definition {
	return types.NewDefinition("Academic", "1.0.0").
		Description("Writes in scholarly, citation-aware style").
		Category("audience").
		Instruction("Respond in an academic register suitable for a scholarly audience.").
		Conflicts("ELI5").
		ParamEnum("citationStyle", "Citation format to follow", "apa", "mla", "chicago").
		Default("apa").
		MapValues(
			"apa", "Cite sources in APA format.",
			"mla", "Cite sources in MLA format.",
			"chicago", "Cite sources in Chicago format.",
		).
		Done().
		Build()
}

func concise() types.Definition {
	return types.NewDefinition("Concise", "1.0.0").
		Description("Keeps the response short and to the point").
		Category("structure").
		Instruction("Keep the response concise.").
		ParamNumber("maxWords", "Upper bound on response length in words").
		Min(10).Max(1000).
		Format("Stay under {value} words.").
		Examples("50", "200").
		Done().
		ParamBool("bulletPoints", "Prefer bullet points over prose").
		MapValues("true", "Use bullet points.", "false", "Use flowing prose, no bullet points.").
		Done().
		Build()
}

func outputFormat() types.Definition {
	return types.NewDefinition("OutputFormat", "1.0.0").
		Description("Constrains the output format of the response").
		Category("format").
		Instruction("Format the entire response as requested.").
		Placement(types.PlaceAppend).
		Behavior(types.ComposeOverride).
		ParamEnum("format", "Output format", "markdown", "json", "yaml", "html", "text").
		Required().
		MapValues(
			"markdown", "Respond in well-formed Markdown.",
			"json", "Respond with a single valid JSON document and nothing else.",
			"yaml", "Respond with a single valid YAML document and nothing else.",
			"html", "Respond with semantic HTML.",
			"text", "Respond in plain text with no markup.",
		).
		Done().
		Build()
}

func audience() types.Definition {
	return types.NewDefinition("Audience", "1.0.0").
		Description("Targets the response at a given expertise level").
		Category("audience").
		Instruction("Match the response to the reader's expertise.").
		ParamEnum("level", "Reader expertise level", "beginner", "intermediate", "expert").
		Default("intermediate").
		MapValues(
			"beginner", "Assume no prior knowledge of the topic.",
			"intermediate", "Assume working familiarity with the basics.",
			"expert", "Assume deep domain expertise; skip introductory material.",
		).
		Done().
		Build()
}

func reasoning() types.Definition {
	return types.NewDefinition("Reasoning", "1.0.0").
		Description("Shows reasoning before the conclusion").
		Category("reasoning").
		Instruction("Show your reasoning before stating the conclusion.").
		ParamEnum("depth", "How thorough the reasoning should be", "basic", "moderate", "comprehensive").
		Default("moderate").
		MapValues(
			"basic", "Give a brief sketch of the reasoning.",
			"moderate", "Explain the main reasoning steps.",
			"comprehensive", "Explain every reasoning step in detail, including rejected alternatives.",
		).
		Done().
		Build()
}

func summary() types.Definition {
	return types.NewDefinition("Summary", "1.0.0").
		Description("Appends a closing summary").
		Category("structure").
		Instruction("End with a summary of the key points.").
		Placement(types.PlaceAppend).
		ParamNumber("sentences", "Summary length in sentences").
		Min(1).Max(10).
		Format("Keep the summary to {value} sentences.").
		Done().
		Build()
}

func citeSources() types.Definition {
	return types.NewDefinition("CiteSources", "1.0.0").
		Description("Requires stated claims to carry sources").
		Category("reasoning").
		Instruction("Support factual claims with their sources.").
		ParamBool("inline", "Cite inline rather than in a closing list").
		Default(true).
		MapValues(
			"true", "Place citations inline next to each claim.",
			"false", "Collect citations in a list at the end.",
		).
		Done().
		Build()
}

func chain() types.Definition {
	return types.NewDefinition("Chain", "1.0.0").
		Description("Applies decorators in strict sequence, each stage consuming the previous stage's output").
		Category("meta").
		Meta(types.MetaChain).
		ParamArray("decorators", "Decorator names to apply in order", types.TypeString).
		Required().
		Examples("[StepByStep, Concise]").
		Done().
		Build()
}

func override() types.Definition {
	return types.NewDefinition("Override", "1.0.0").
		Description("Replaces another decorator's parameters before it runs").
		Category("meta").
		Meta(types.MetaOverride).
		ParamString("decorator", "Name of the decorator to override").
		Required().
		Done().
		ParamString("params", "Replacement parameters, key=value list").
		Done().
		ParamString("instruction", "Replacement base instruction").
		Done().
		Build()
}

func conditional() types.Definition {
	return types.NewDefinition("Conditional", "1.0.0").
		Description("Includes a decorator only when a context predicate holds").
		Category("meta").
		Meta(types.MetaConditional).
		ParamString("if", "Predicate over caller context: key, !key, or key=value").
		Required().
		Done().
		ParamString("then", "Decorator kept when the predicate holds").
		Required().
		Done().
		ParamString("else", "Decorator kept when the predicate fails").
		Done().
		Build()
}

func priority() types.Definition {
	return types.NewDefinition("Priority", "1.0.0").
		Description("Overrides natural invocation order for accumulation").
		Category("meta").
		Meta(types.MetaPriority).
		ParamArray("decorators", "Decorator names in priority order", types.TypeString).
		Required().
		Done().
		Build()
}

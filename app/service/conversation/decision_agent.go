package conversation

import (
	"context"
	"log/slog"

	_ "embed"

	"github.com/tmc/langchaingo/prompts"
)

//go:embed decision_prompt_template.txt
var decisionPromptTemplate string

// DecisionAgent asks the model whether a message needs web search and
// reduces its answer to a SearchDecision. Faults never escape: a failed
// call or unparseable answer degrades to the no-search default, missing
// search augmentation is always safe.
type DecisionAgent struct {
	generator Generator
	model     string
	prompt    prompts.PromptTemplate
}

func NewDecisionAgent(generator Generator, model string) *DecisionAgent {
	return &DecisionAgent{
		generator: generator,
		model:     model,
		prompt:    prompts.NewPromptTemplate(decisionPromptTemplate, []string{"history", "message"}),
	}
}

func (a *DecisionAgent) Decide(ctx context.Context, historyStr, message string) SearchDecision {
	prompt, err := a.prompt.Format(map[string]any{
		"history": historyStr,
		"message": message,
	})
	if err != nil {
		slog.Warn("Failed to render decision prompt", "error", err)
		return defaultDecision()
	}

	ctx, cancel := context.WithTimeout(ctx, maxReasonDuration)
	defer cancel()

	raw, err := a.generator.Generate(ctx, a.model, prompt)
	if err != nil {
		slog.Warn("Search decision call failed", "error", err)
		return defaultDecision()
	}

	decision, outcome := parseSearchDecision(raw)
	if outcome == outcomeDefault {
		slog.Warn("Could not parse search decision", "response", raw)
	}

	return decision
}

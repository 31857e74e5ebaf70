package conversation

import (
	"context"
	"fmt"
	"strings"

	_ "embed"

	"github.com/tmc/langchaingo/prompts"
)

//go:embed reply_prompt_template.txt
var replyPromptTemplate string

// ReplyAgent generates the final answer. Unlike the decision call its
// errors propagate, a failed answer fails the whole turn.
type ReplyAgent struct {
	generator Generator
	model     string
	prompt    prompts.PromptTemplate
}

func NewReplyAgent(generator Generator, model string) *ReplyAgent {
	return &ReplyAgent{
		generator: generator,
		model:     model,
		prompt:    prompts.NewPromptTemplate(replyPromptTemplate, []string{"history", "message"}),
	}
}

func (a *ReplyAgent) Call(ctx context.Context, historyStr, message string) (string, error) {
	prompt, err := a.prompt.Format(map[string]any{
		"history": historyStr,
		"message": message,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render reply prompt: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, maxReasonDuration)
	defer cancel()

	result, err := a.generator.Generate(ctx, a.model, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}

	return strings.TrimSpace(result), nil
}

package conversation

import "context"

// Generator is the language-model collaborator. Single-turn, stateless:
// all context is embedded in the prompt string.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Searcher is the web-search collaborator. Failures are returned as
// human-readable text, never as an error.
type Searcher interface {
	Search(ctx context.Context, query string) string
}

// Replier sends one outbound message per inbound event, addressed by the
// single-use reply token from that event.
type Replier interface {
	Reply(ctx context.Context, replyToken, text string) error
}

type SearchDecision struct {
	ShouldSearch bool
	Keyword      string
}

package perplexity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"linetutor/app/config"

	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

const (
	maxSearchDuration = 30 * time.Second
	numResults        = 5
)

type Client struct {
	cfg    *config.Config
	client *openai.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	clientConfig := openai.DefaultConfig(cfg.Perplexity.Token)
	clientConfig.BaseURL = cfg.Perplexity.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: maxSearchDuration,
	}

	return &Client{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// Search runs one web search through the OpenAI-compatible chat endpoint.
// Failures come back as a human-readable string, never as an error: the
// caller embeds the result verbatim into the outgoing reply either way.
func (c *Client) Search(ctx context.Context, query string) string {
	ctx, cancel := context.WithTimeout(ctx, maxSearchDuration)
	defer cancel()

	aiResponse, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.cfg.Perplexity.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleUser,
					Content: fmt.Sprintf("Search for: %s. Provide %d key results with brief descriptions.",
						query, numResults),
				},
			},
			MaxTokens: 1000,
		},
	)
	if err != nil {
		return fmt.Sprintf("Perplexity 搜尋失敗: %v", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "Perplexity 搜尋失敗: no chat completion found"
	}

	content := aiResponse.Choices[0].Message.Content

	return fmt.Sprintf("Perplexity 搜尋結果:\n%s\n\n%s", query, content)
}

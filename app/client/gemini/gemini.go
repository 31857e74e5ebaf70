package gemini

import (
	"context"
	"fmt"
	"strings"

	"linetutor/app/config"

	"github.com/samber/do"
	"google.golang.org/genai"
)

type Client struct {
	cfg    *config.Config
	client *genai.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	ctx := do.MustInvoke[context.Context](di)
	cfg := do.MustInvoke[*config.Config](di)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		cfg:    cfg,
		client: client,
	}, nil
}

// Generate runs a single-turn completion. All context is embedded in the
// prompt string, no chat state is kept on the client.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("model returned no text candidates")
	}

	return text, nil
}

// Package anthropic adapts the official Anthropic SDK to the completion
// surface the merge pipeline consumes, as an alternate text-generation
// provider.
package anthropic

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"

	"github.com/sells-group/esg-merge-cli/pkg/completion"
)

const defaultModel = "claude-haiku-4-5-20251001"

// Client generates text via the Anthropic Messages API.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, p completion.Params) (string, error)
}

type sdkClient struct {
	client sdk.Client
	model  string
}

// Option configures the client.
type Option func(*sdkClient)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *sdkClient) {
		if model != "" {
			c.model = model
		}
	}
}

// NewClient creates an Anthropic-backed completion client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &sdkClient{
		client: sdk.NewClient(option.WithAPIKey(apiKey)),
		model:  defaultModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete sends one user turn with a system prompt and returns the
// concatenated text blocks of the response. Params.TopP is ignored when
// zero; the Messages API rejects max_tokens of zero, so a floor is applied.
func (c *sdkClient) Complete(ctx context.Context, systemPrompt, userPrompt string, p completion.Params) (string, error) {
	maxTokens := int64(p.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 256
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(userPrompt)),
		},
	}
	if systemPrompt != "" {
		params.System = []sdk.TextBlockParam{{Text: systemPrompt}}
	}
	if p.Temperature > 0 {
		params.Temperature = sdk.Float(p.Temperature)
	}
	if p.TopP > 0 {
		params.TopP = sdk.Float(p.TopP)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", eris.New("anthropic: response has no text content")
	}
	return sb.String(), nil
}

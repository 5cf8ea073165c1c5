// Package openai implements the draft.Drafter contract on the official
// openai-go SDK using JSON-object chat completions.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/category"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/draft"
)

// Config carries the drafting-service settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Logger  *slog.Logger
}

// Client drafts content through the chat completions API. One request is
// issued per Draft call; retries belong to the caller.
type Client struct {
	model  string
	opts   []option.RequestOption
	logger *slog.Logger
}

var _ draft.Drafter = (*Client)(nil)

// New validates the configuration and constructs a Client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: api key missing; set OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("openai: model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{model: cfg.Model, opts: opts, logger: logger}, nil
}

// Draft renders the category prompts, requests a JSON-object completion, and
// parses the response into a validated ContentDraft.
func (c *Client) Draft(ctx context.Context, cat category.Category, req draft.Request) (draft.ContentDraft, error) {
	prompt, err := draft.BuildPrompt(cat, req)
	if err != nil {
		return draft.ContentDraft{}, err
	}

	client := openai.NewClient(c.opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		Temperature: openai.Float(cat.Temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return draft.ContentDraft{}, fmt.Errorf("openai: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return draft.ContentDraft{}, errors.New("openai: empty choices")
	}

	c.logger.Debug("draft received", "record", req.Record.ID, "category", cat.Name)
	return draft.Parse(cat, resp.Choices[0].Message.Content)
}

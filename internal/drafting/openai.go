package drafting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIName         = "openai"
	openaiDefaultModel = "gpt-4o-mini"
)

// OpenAIConfig holds configuration for the OpenAI drafting client.
type OpenAIConfig struct {
	APIKey      string
	Model       string        // default "gpt-4o-mini"
	Temperature float64       // default 0.3
	Timeout     time.Duration // per-request upper bound, default 120s
	Logger      *slog.Logger
}

// OpenAIClient implements Service over the OpenAI chat completions API.
type OpenAIClient struct {
	client      openai.Client
	hasKey      bool
	model       string
	temperature float64
	timeout     time.Duration
	logger      *slog.Logger
}

// NewOpenAIClient creates an OpenAI drafting client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = openaiDefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &OpenAIClient{
		client:      openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		hasKey:      cfg.APIKey != "",
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      cfg.Logger,
	}
}

// Name returns the provider identifier.
func (c *OpenAIClient) Name() string { return OpenAIName }

// Draft sends one drafting request and decodes the section-array response.
func (c *OpenAIClient) Draft(ctx context.Context, req *Request) ([]SectionDraft, error) {
	if !c.hasKey {
		return nil, fmt.Errorf("%w: set openai.api_key or OPENAI_API_KEY", ErrNoCredentials)
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}

	text := resp.Choices[0].Message.Content
	c.logger.Debug("openai draft complete",
		"op", string(req.Op),
		"model", c.model,
		"elapsed", time.Since(start),
		"response_chars", len(text),
	)
	return DecodeDrafts(text)
}

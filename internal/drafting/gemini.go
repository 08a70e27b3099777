package drafting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

const (
	GeminiName         = "gemini"
	geminiDefaultModel = "gemini-2.0-flash"
)

// GeminiConfig holds configuration for the Gemini drafting client.
type GeminiConfig struct {
	APIKey          string
	Model           string        // default "gemini-2.0-flash"
	Temperature     float32       // default 0.3
	MaxOutputTokens int32         // default 16384
	Timeout         time.Duration // per-request upper bound, default 120s
	Logger          *slog.Logger
}

// GeminiClient implements Service over the Gemini API.
type GeminiClient struct {
	apiKey          string
	model           string
	temperature     float32
	maxOutputTokens int32
	timeout         time.Duration
	logger          *slog.Logger
}

// NewGeminiClient creates a Gemini drafting client. A missing API key is not
// an error here; Draft reports ErrNoCredentials so the caller can fall back
// to the deterministic splitter.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = geminiDefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = 16384
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &GeminiClient{
		apiKey:          cfg.APIKey,
		model:           cfg.Model,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
		timeout:         cfg.Timeout,
		logger:          cfg.Logger,
	}
}

// Name returns the provider identifier.
func (c *GeminiClient) Name() string { return GeminiName }

// Draft sends one drafting request and decodes the section-array response.
func (c *GeminiClient) Draft(ctx context.Context, req *Request) ([]SectionDraft, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: set gemini.api_key or GEMINI_API_KEY", ErrNoCredentials)
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: c.apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(c.temperature),
			MaxOutputTokens: c.maxOutputTokens,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	c.logger.Debug("gemini draft complete",
		"op", string(req.Op),
		"model", c.model,
		"elapsed", time.Since(start),
		"response_chars", len(text),
	)
	return DecodeDrafts(text)
}

// Package generator produces blog articles from a topic string. The default
// backend sweeps candidate models on the OpenRouter chat-completion API; an
// Anthropic-backed variant and a pure template variant are selectable at
// startup. Every backend degrades to the same deterministic fallback
// template, so article generation never returns an error to its callers.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"autoblog/internal/domain/entity"
	"autoblog/internal/observability/metrics"
	"autoblog/internal/resilience/circuitbreaker"
	"autoblog/internal/utils/text"
	"autoblog/pkg/config"
)

// ClaudeConfig holds configuration for the Anthropic-backed generator.
type ClaudeConfig struct {
	// Model is the Anthropic API model identifier.
	Model string

	// MaxTokens caps completion length.
	MaxTokens int

	// Timeout bounds a single generation call.
	Timeout time.Duration
}

// LoadClaudeConfig loads the Anthropic generator configuration from
// environment variables. The token and timeout settings are shared with the
// OpenRouter backend so switching backends does not change the output shape.
//
// Environment variables:
//   - CLAUDE_MODEL: Anthropic model identifier
//   - GENERATION_MAX_TOKENS: completion token cap (default 500)
//   - GENERATION_TIMEOUT: per-request timeout (default 30s)
func LoadClaudeConfig() ClaudeConfig {
	cfg := ClaudeConfig{
		Model:     config.GetEnvString("CLAUDE_MODEL", string(anthropic.ModelClaudeSonnet4_5_20250929)),
		MaxTokens: config.GetEnvInt("GENERATION_MAX_TOKENS", DefaultMaxTokens),
		Timeout:   config.GetEnvDuration("GENERATION_TIMEOUT", DefaultTimeout),
	}

	if cfg.MaxTokens < minMaxTokens || cfg.MaxTokens > maxMaxTokens {
		slog.Warn("GENERATION_MAX_TOKENS out of valid range, using default",
			slog.Int("value", cfg.MaxTokens),
			slog.Int("default", DefaultMaxTokens))
		cfg.MaxTokens = DefaultMaxTokens
	}

	if cfg.Timeout <= 0 {
		slog.Warn("GENERATION_TIMEOUT must be positive, using default",
			slog.Duration("value", cfg.Timeout),
			slog.Duration("default", DefaultTimeout))
		cfg.Timeout = DefaultTimeout
	}

	return cfg
}

// Claude generates articles through the Anthropic API. There is no
// candidate sweep: one model, one attempt, and any failure serves the
// fallback template instead.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	apiKey          string
	config          ClaudeConfig
	metricsRecorder GenerationMetricsRecorder
}

// NewClaude creates a Claude generator with the given API key. An empty key
// is allowed; the generator then serves fallback articles without I/O.
func NewClaude(apiKey string) *Claude {
	cfg := LoadClaudeConfig()

	slog.Info("Initialized Claude generator with configuration",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Bool("api_key_present", apiKey != ""))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.DefaultConfig("claude-api")),
		apiKey:          apiKey,
		config:          cfg,
		metricsRecorder: NewPrometheusGenerationMetrics(),
	}
}

// Generate produces an article for the topic. Like the OpenRouter backend
// it always returns a usable result; any API failure serves the fallback.
func (c *Claude) Generate(ctx context.Context, topic string) entity.GenerationResult {
	start := time.Now()
	defer func() {
		c.metricsRecorder.RecordDuration(time.Since(start))
	}()

	if c.apiKey == "" {
		slog.InfoContext(ctx, "no api key configured, serving fallback template",
			slog.String("topic", topic))
		return Fallback(topic)
	}

	raw, err := c.doGenerate(ctx, buildPrompt(topic))
	if err != nil {
		c.metricsRecorder.RecordAttempt(c.config.Model, attemptOutcome(err))
		slog.WarnContext(ctx, "claude generation failed, serving fallback template",
			slog.String("topic", topic),
			slog.String("model", c.config.Model),
			slog.String("error", err.Error()))
		return Fallback(topic)
	}

	c.metricsRecorder.RecordAttempt(c.config.Model, metrics.AttemptSuccess)
	title, content := parseArticle(raw, topic)
	slog.InfoContext(ctx, "article generated",
		slog.String("topic", topic),
		slog.String("model", c.config.Model),
		slog.String("title", title))

	return entity.GenerationResult{
		Title:   title,
		Content: content,
		Source:  entity.SourceAI,
		Model:   c.config.Model,
	}
}

// TestConnection probes the Anthropic API. The API has no free model
// listing to query, so the report carries a warning in place of the
// availability check and relies on one live completion instead.
func (c *Claude) TestConnection(ctx context.Context) entity.Diagnostics {
	diag := entity.Diagnostics{
		ConfiguredModel: c.config.Model,
		CheckedAt:       time.Now().UTC(),
	}

	if c.apiKey == "" {
		diag.Errors = append(diag.Errors,
			"ANTHROPIC_API_KEY is not set; articles are generated from the fallback template only")
		return diag
	}
	diag.KeyPresent = true
	diag.Warnings = append(diag.Warnings,
		"the anthropic api exposes no model listing; availability check skipped")

	raw, err := c.doGenerate(ctx, diagnosticPrompt)
	if err != nil {
		diag.Errors = append(diag.Errors, fmt.Sprintf("live completion against %q failed: %v", c.config.Model, err))
		return diag
	}

	diag.OK = true
	diag.Sample = text.Truncate(raw, sampleRunes)
	return diag
}

// doGenerate performs one API call through the circuit breaker and returns
// the raw completion text. The fixed writing instruction is prepended to
// the prompt because the request carries no separate system message.
func (c *Claude) doGenerate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	requestID := uuid.New().String()
	start := time.Now()

	slog.InfoContext(ctx, "starting completion request",
		slog.String("request_id", requestID),
		slog.String("model", c.config.Model))

	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(c.config.Model),
			MaxTokens: int64(c.config.MaxTokens),
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(systemInstruction + "\n\n" + prompt),
				),
			},
		})
	})

	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.WarnContext(ctx, "claude api circuit breaker open, request rejected",
				slog.String("request_id", requestID),
				slog.String("state", c.circuitBreaker.State().String()))
			return "", fmt.Errorf("claude api unavailable: %w", err)
		}
		slog.WarnContext(ctx, "completion request failed",
			slog.String("request_id", requestID),
			slog.String("model", c.config.Model),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	message, ok := result.(*anthropic.Message)
	if !ok {
		return "", fmt.Errorf("unexpected circuit breaker result type %T", result)
	}

	if len(message.Content) == 0 {
		slog.WarnContext(ctx, "claude api returned empty content",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", errNoText
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.WarnContext(ctx, "claude api returned unexpected content type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", errNoText
	}

	raw := strings.TrimSpace(textBlock.Text)
	if raw == "" {
		slog.WarnContext(ctx, "claude api returned blank text",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", errNoText
	}

	slog.InfoContext(ctx, "completion request succeeded",
		slog.String("request_id", requestID),
		slog.String("model", c.config.Model),
		slog.Int("text_length", text.CountRunes(raw)),
		slog.Duration("duration", duration))

	return raw, nil
}

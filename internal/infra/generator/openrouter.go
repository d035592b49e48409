package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"autoblog/internal/domain/entity"
	"autoblog/internal/observability/metrics"
	"autoblog/internal/resilience/circuitbreaker"
	"autoblog/internal/resilience/retry"
	"autoblog/internal/utils/text"
)

const (
	// maxResponseBytes caps how much of a response body is read. Completion
	// responses are small; anything larger is a misbehaving upstream.
	maxResponseBytes = 1 << 20

	// errorExcerptBytes caps how much of an error body makes it into logs
	// and error messages.
	errorExcerptBytes = 512

	// OpenRouter attribution headers sent with every request.
	attributionReferer = "https://autoblog.local"
	attributionTitle   = "autoblog"
)

// OpenRouter generates articles through the OpenRouter chat-completion API.
// It sweeps a configured list of candidate models in order and degrades to
// the deterministic fallback template, so Generate never fails.
type OpenRouter struct {
	httpClient      *http.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	limiter         *RateLimiter
	apiKey          string
	config          *Config
	metricsRecorder GenerationMetricsRecorder
}

// NewOpenRouter creates an OpenRouter generator with the given API key and
// configuration. An empty API key is allowed; the generator then serves
// fallback articles without network I/O.
func NewOpenRouter(apiKey string, config *Config) *OpenRouter {
	slog.Info("Initialized OpenRouter generator with configuration",
		slog.String("model", config.Model),
		slog.Int("alt_models", len(config.AltModels)),
		slog.String("base_url", config.BaseURL),
		slog.Duration("timeout", config.Timeout),
		slog.Bool("api_key_present", apiKey != ""))

	return &OpenRouter{
		httpClient:      &http.Client{Timeout: config.Timeout},
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenRouterConfig()),
		limiter:         NewRateLimiter(config.RatePerSec, config.RateBurst),
		apiKey:          apiKey,
		config:          config,
		metricsRecorder: NewPrometheusGenerationMetrics(),
	}
}

// buildPrompt constructs the user instruction for a topic. The domain
// constraints are repeated here even though the system instruction carries
// them; free-tier models follow the user message far more reliably.
func buildPrompt(topic string) string {
	return fmt.Sprintf("Write a blog article about: %s\n"+
		"Relate the topic to B2B SaaS or to open-source Web3 infrastructure. "+
		"Keep it under 250 words of markdown and put the title on the first line.", topic)
}

// Generate produces an article for the topic. It always returns a usable
// result:
//
//   - no API key configured: the fallback template, without network I/O
//   - key rejected during verification or any completion: the fallback
//   - a candidate model yields text: that text, parsed into title/content
//   - every candidate fails: the fallback
//
// Each candidate model gets exactly one completion request per Generate
// call; the candidate sweep is the retry strategy, so no individual request
// is retried.
func (o *OpenRouter) Generate(ctx context.Context, topic string) entity.GenerationResult {
	start := time.Now()
	defer func() {
		o.metricsRecorder.RecordDuration(time.Since(start))
	}()

	if o.apiKey == "" {
		slog.InfoContext(ctx, "no api key configured, serving fallback template",
			slog.String("topic", topic))
		return Fallback(topic)
	}

	if err := o.verifyKey(ctx); err != nil {
		if isUnauthorized(err) {
			o.metricsRecorder.RecordKeyVerification(metrics.KeyInvalid)
			slog.ErrorContext(ctx, "api key rejected by model listing, aborting generation",
				slog.String("topic", topic),
				slog.String("error", err.Error()))
			return Fallback(topic)
		}
		o.metricsRecorder.RecordKeyVerification(metrics.KeyUnreachable)
		slog.WarnContext(ctx, "key verification inconclusive, proceeding with generation",
			slog.String("topic", topic),
			slog.String("error", err.Error()))
	} else {
		o.metricsRecorder.RecordKeyVerification(metrics.KeyValid)
	}

	candidates := o.candidates()
	if len(candidates) == 0 {
		slog.WarnContext(ctx, "no candidate models configured, serving fallback template",
			slog.String("topic", topic))
		return Fallback(topic)
	}

	prompt := buildPrompt(topic)

	var lastErr error
	for _, model := range candidates {
		raw, err := o.complete(ctx, model, prompt)
		if err == nil {
			o.metricsRecorder.RecordAttempt(model, metrics.AttemptSuccess)
			title, content := parseArticle(raw, topic)
			slog.InfoContext(ctx, "article generated",
				slog.String("topic", topic),
				slog.String("model", model),
				slog.String("title", title))
			return entity.GenerationResult{
				Title:   title,
				Content: content,
				Source:  entity.SourceAI,
				Model:   model,
			}
		}

		if isUnauthorized(err) {
			o.metricsRecorder.RecordAttempt(model, metrics.AttemptUnauthorized)
			slog.ErrorContext(ctx, "api key rejected during completion, aborting remaining candidates",
				slog.String("topic", topic),
				slog.String("model", model),
				slog.String("error", err.Error()))
			return Fallback(topic)
		}

		o.metricsRecorder.RecordAttempt(model, attemptOutcome(err))
		lastErr = err
	}

	slog.WarnContext(ctx, "all candidate models failed, serving fallback template",
		slog.String("topic", topic),
		slog.Int("candidates", len(candidates)),
		slog.String("error", lastErr.Error()))
	return Fallback(topic)
}

// candidates returns the models to try: the configured primary first, then
// the alternatives, with duplicates removed preserving first-seen order.
func (o *OpenRouter) candidates() []string {
	models := make([]string, 0, len(o.config.AltModels)+1)
	seen := make(map[string]struct{}, len(o.config.AltModels)+1)

	for _, m := range append([]string{o.config.Model}, o.config.AltModels...) {
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		models = append(models, m)
	}

	return models
}

// complete issues exactly one chat-completion request against one model and
// returns the extracted text. The request waits for a rate limiter token
// and runs through the circuit breaker; a breaker-open rejection surfaces
// as an ordinary error so the caller can move to the next candidate.
func (o *OpenRouter) complete(ctx context.Context, model, prompt string) (string, error) {
	if err := o.limiter.Allow(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}

	requestID := uuid.New().String()
	start := time.Now()

	slog.InfoContext(ctx, "starting completion request",
		slog.String("request_id", requestID),
		slog.String("model", model))

	payload := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   o.config.MaxTokens,
		Temperature: o.config.Temperature,
		TopP:        TopP,
	}

	result, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.call(ctx, http.MethodPost, "/chat/completions", payload)
	})

	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.WarnContext(ctx, "completion api circuit breaker open, request rejected",
				slog.String("request_id", requestID),
				slog.String("model", model),
				slog.String("state", o.circuitBreaker.State().String()))
			return "", fmt.Errorf("completion api unavailable: %w", err)
		}
		slog.WarnContext(ctx, "completion request failed",
			slog.String("request_id", requestID),
			slog.String("model", model),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", err
	}

	body, ok := result.([]byte)
	if !ok {
		return "", fmt.Errorf("unexpected circuit breaker result type %T", result)
	}

	raw, ok := extractText(body)
	if !ok {
		slog.WarnContext(ctx, "completion response had no extractable text",
			slog.String("request_id", requestID),
			slog.String("model", model),
			slog.Duration("duration", duration))
		return "", errNoText
	}

	slog.InfoContext(ctx, "completion request succeeded",
		slog.String("request_id", requestID),
		slog.String("model", model),
		slog.Int("text_length", text.CountRunes(raw)),
		slog.Duration("duration", duration))

	return raw, nil
}

// verifyKey checks the API key against the model-listing endpoint. The
// result is advisory: only an unauthorized status proves the key is bad,
// everything else is treated by the caller as inconclusive.
func (o *OpenRouter) verifyKey(ctx context.Context) error {
	_, err := o.call(ctx, http.MethodGet, "/models", nil)
	return err
}

// call is the single transport for every request this client makes: it
// builds the request, sets the authorization and attribution headers,
// enforces the per-request timeout and classifies non-2xx responses into
// *retry.HTTPError so callers can branch on the status code.
func (o *OpenRouter) call(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, o.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", attributionReferer)
	req.Header.Set("X-Title", attributionTitle)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    bodyExcerpt(data),
		}
	}

	return data, nil
}

// isUnauthorized reports whether the error is an HTTP 401 or 403 response.
// These are the only errors that abort a candidate sweep.
func isUnauthorized(err error) bool {
	var httpErr *retry.HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	return httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden
}

// attemptOutcome maps a candidate failure to its metrics label.
func attemptOutcome(err error) string {
	var httpErr *retry.HTTPError
	switch {
	case errors.Is(err, errNoText):
		return metrics.AttemptInvalidResponse
	case errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests:
		return metrics.AttemptRateLimited
	default:
		return metrics.AttemptRequestFailed
	}
}

// bodyExcerpt shortens an error response body for logs and error messages.
func bodyExcerpt(data []byte) string {
	if len(data) > errorExcerptBytes {
		return string(data[:errorExcerptBytes]) + "..."
	}
	return string(data)
}

package generator

import (
	"log/slog"
	"time"

	"autoblog/pkg/config"
)

const (
	// DefaultModel is the primary completion model tried first on every run.
	DefaultModel = "meta-llama/llama-3.3-70b-instruct:free"

	// DefaultBaseURL is the root of the OpenRouter HTTP API.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout bounds a single completion or model-listing request.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxTokens caps the length of a generated completion.
	DefaultMaxTokens = 500

	// DefaultTemperature is the sampling temperature for completions.
	DefaultTemperature = 0.7

	// TopP is the nucleus sampling parameter. It is a fixed constant, not
	// a configuration value, and is sent with every completion request.
	TopP = 0.9

	// DefaultRatePerSec and DefaultRateBurst shape the outbound token
	// bucket shared by all requests to the completion API.
	DefaultRatePerSec = 1.0
	DefaultRateBurst  = 5
)

const (
	minMaxTokens = 1
	maxMaxTokens = 4096

	minTemperature = 0.0
	maxTemperature = 2.0
)

// defaultAltModels are the candidates tried, in order, after the primary
// model fails. All entries are free-tier models on OpenRouter.
var defaultAltModels = []string{
	"google/gemma-3-27b-it:free",
	"mistralai/mistral-7b-instruct:free",
	"qwen/qwen-2.5-72b-instruct:free",
	"deepseek/deepseek-chat:free",
	"nousresearch/hermes-3-llama-3.1-405b:free",
}

// systemInstruction is sent as the system message of every completion
// request. It pins the assistant to the blog's two coverage areas and the
// expected output shape: markdown, at most 250 words, first line is the title.
const systemInstruction = "You are a staff writer for a technology blog that covers exactly two areas: " +
	"B2B SaaS and open-source Web3 infrastructure. " +
	"Write a markdown article of at most 250 words. " +
	"The first line of your output must be the article title. " +
	"Do not write about topics outside the two coverage areas; instead relate the given topic to one of them."

// Config holds the settings for the OpenRouter generation client.
// All fields are loaded from environment variables with defaults; values
// outside the valid range fall back to the default with a warning log.
type Config struct {
	// Model is the primary completion model identifier.
	Model string

	// AltModels are tried in order after the primary model fails.
	AltModels []string

	// BaseURL is the API root without a trailing slash.
	BaseURL string

	// Timeout bounds a single HTTP request to the API.
	Timeout time.Duration

	// MaxTokens caps completion length. Valid range: 1-4096.
	MaxTokens int

	// Temperature is the sampling temperature. Valid range: 0-2.
	Temperature float32

	// RatePerSec and RateBurst configure the outbound rate limiter.
	RatePerSec float64
	RateBurst  int
}

// LoadConfig loads the generation client configuration from environment
// variables. Missing or invalid values never fail the load; they fall back
// to defaults with a warning so the service can always start.
//
// Environment variables:
//   - OPENROUTER_MODEL: primary model identifier
//   - OPENROUTER_ALT_MODELS: comma-separated alternative models
//   - OPENROUTER_BASE_URL: API root URL
//   - GENERATION_TIMEOUT: per-request timeout (e.g. "30s")
//   - GENERATION_MAX_TOKENS: completion token cap (1-4096)
//   - GENERATION_TEMPERATURE: sampling temperature (0-2)
//   - GENERATION_RATE: outbound requests per second
//   - GENERATION_BURST: outbound burst capacity
func LoadConfig() *Config {
	cfg := &Config{
		Model:       config.GetEnvString("OPENROUTER_MODEL", DefaultModel),
		AltModels:   config.GetEnvStringList("OPENROUTER_ALT_MODELS", defaultAltModels),
		BaseURL:     trimBaseURL(config.GetEnvString("OPENROUTER_BASE_URL", DefaultBaseURL)),
		Timeout:     config.GetEnvDuration("GENERATION_TIMEOUT", DefaultTimeout),
		MaxTokens:   config.GetEnvInt("GENERATION_MAX_TOKENS", DefaultMaxTokens),
		Temperature: float32(config.GetEnvFloat("GENERATION_TEMPERATURE", DefaultTemperature)),
		RatePerSec:  config.GetEnvFloat("GENERATION_RATE", DefaultRatePerSec),
		RateBurst:   config.GetEnvInt("GENERATION_BURST", DefaultRateBurst),
	}

	if cfg.Timeout <= 0 {
		slog.Warn("GENERATION_TIMEOUT must be positive, using default",
			slog.Duration("value", cfg.Timeout),
			slog.Duration("default", DefaultTimeout))
		cfg.Timeout = DefaultTimeout
	}

	if cfg.MaxTokens < minMaxTokens || cfg.MaxTokens > maxMaxTokens {
		slog.Warn("GENERATION_MAX_TOKENS out of valid range, using default",
			slog.Int("value", cfg.MaxTokens),
			slog.Int("min", minMaxTokens),
			slog.Int("max", maxMaxTokens),
			slog.Int("default", DefaultMaxTokens))
		cfg.MaxTokens = DefaultMaxTokens
	}

	if cfg.Temperature < minTemperature || cfg.Temperature > maxTemperature {
		slog.Warn("GENERATION_TEMPERATURE out of valid range, using default",
			slog.Float64("value", float64(cfg.Temperature)),
			slog.Float64("min", minTemperature),
			slog.Float64("max", maxTemperature),
			slog.Float64("default", DefaultTemperature))
		cfg.Temperature = DefaultTemperature
	}

	if cfg.RatePerSec <= 0 {
		slog.Warn("GENERATION_RATE must be positive, using default",
			slog.Float64("value", cfg.RatePerSec),
			slog.Float64("default", DefaultRatePerSec))
		cfg.RatePerSec = DefaultRatePerSec
	}

	if cfg.RateBurst < 1 {
		slog.Warn("GENERATION_BURST must be at least 1, using default",
			slog.Int("value", cfg.RateBurst),
			slog.Int("default", DefaultRateBurst))
		cfg.RateBurst = DefaultRateBurst
	}

	return cfg
}

// trimBaseURL removes a trailing slash so request paths can always be
// joined with a leading slash.
func trimBaseURL(u string) string {
	for len(u) > 0 && u[len(u)-1] == '/' {
		u = u[:len(u)-1]
	}
	return u
}

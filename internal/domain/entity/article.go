// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and GenerationResult,
// along with their validation rules and domain-specific errors.
package entity

import "time"

// Article represents a blog article in the system.
// Articles are created either by the startup seeding step or by the
// generation pipeline; they are never updated or deleted afterwards.
type Article struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
}

// Generation sources recorded on a GenerationResult.
const (
	// SourceAI marks text produced by an external language model.
	SourceAI = "ai"

	// SourceFallback marks text produced by the deterministic template.
	SourceFallback = "fallback"
)

// GenerationResult is the transient {title, content} pair produced by a
// generator. It becomes an Article only once persisted. Source and Model
// exist for logging, metrics, and diagnostics; they are never stored.
type GenerationResult struct {
	Title   string
	Content string

	// Source is SourceAI or SourceFallback.
	Source string

	// Model is the identifier of the candidate that produced the text.
	// Empty for fallback results.
	Model string
}

// Diagnostics is a read-only report on the external generation service.
// It is produced by the diagnostics probe and returned to operators as-is;
// failures are captured in Errors rather than raised.
type Diagnostics struct {
	// OK is true when a live generation call against the configured model succeeded.
	OK bool

	// KeyPresent reports whether an API credential is configured.
	KeyPresent bool

	// ModelsChecked reports whether the model-listing endpoint was queried successfully.
	ModelsChecked bool

	// ConfiguredModel is the primary model identifier from configuration.
	ConfiguredModel string

	// ModelAvailable reports whether the configured model appeared in the listing.
	// Only meaningful when ModelsChecked is true.
	ModelAvailable bool

	// Sample holds a truncated excerpt of generated text from the live call.
	Sample string

	Warnings []string
	Errors   []string

	CheckedAt time.Time
}

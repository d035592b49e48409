package generator

import (
	"context"
	"fmt"
	"time"

	"autoblog/internal/domain/entity"
)

// fallbackTemplate is the three-paragraph article body used whenever no
// model produced text. The topic is interpolated into every paragraph, so
// the output is fully determined by the topic alone.
const fallbackTemplate = `%[1]s is drawing attention across both B2B SaaS teams and the open-source Web3 infrastructure community. This article takes a short, practical look at what the term covers and why it keeps resurfacing in roadmap discussions on both sides.

For SaaS vendors, %[1]s touches subscription operations, integration surfaces and the reliability work that keeps customers renewing. Operators of decentralized infrastructure meet the same questions from another angle: open tooling, node economics and protocol upgrades all shape how %[1]s behaves in production.

A full write-up on %[1]s will follow once the generation service is reachable again. Until then this placeholder keeps the publishing cadence intact and marks the topic for a future revisit.`

// Fallback builds the deterministic template article for a topic. It never
// fails and performs no I/O, which makes it the terminal branch of every
// generation path.
func Fallback(topic string) entity.GenerationResult {
	return entity.GenerationResult{
		Title:   "Fallback article on " + topic,
		Content: fmt.Sprintf(fallbackTemplate, topic),
		Source:  entity.SourceFallback,
	}
}

// Template is a generator that always produces the fallback article.
// This is useful for development and for running without any API credential.
type Template struct{}

// NewTemplate creates a new Template generator.
func NewTemplate() *Template {
	return &Template{}
}

// Generate returns the deterministic template article for the topic.
func (t *Template) Generate(_ context.Context, topic string) entity.GenerationResult {
	return Fallback(topic)
}

// TestConnection reports that there is no external service behind the
// template generator. It never returns an error entry.
func (t *Template) TestConnection(_ context.Context) entity.Diagnostics {
	return entity.Diagnostics{
		Warnings:  []string{"template generator has no external service to probe"},
		CheckedAt: time.Now().UTC(),
	}
}

package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"autoblog/internal/domain/entity"
	"autoblog/internal/utils/text"
)

const (
	// sampleRunes caps the generated-text excerpt in a diagnostics report.
	sampleRunes = 200

	// diagnosticPrompt is the trivial prompt used for the live probe. It
	// deliberately asks for almost nothing so the probe stays cheap.
	diagnosticPrompt = "Reply with one short sentence confirming that you can produce text."
)

// TestConnection probes the OpenRouter API and reports what it found. It is
// independent of Generate: it checks key presence, queries the model
// listing, verifies the configured model appears there and runs one live
// completion against the configured model only. Failures are captured as
// entries in the report, never raised, so the probe itself cannot fail.
func (o *OpenRouter) TestConnection(ctx context.Context) entity.Diagnostics {
	diag := entity.Diagnostics{
		ConfiguredModel: o.config.Model,
		CheckedAt:       time.Now().UTC(),
	}

	if o.apiKey == "" {
		diag.Errors = append(diag.Errors,
			"OPENROUTER_API_KEY is not set; articles are generated from the fallback template only")
		return diag
	}
	diag.KeyPresent = true

	body, err := o.call(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		diag.Errors = append(diag.Errors, fmt.Sprintf("model listing request failed: %v", err))
	} else {
		var listing openai.ModelsList
		if err := json.Unmarshal(body, &listing); err != nil {
			diag.Warnings = append(diag.Warnings, fmt.Sprintf("model listing response undecodable: %v", err))
		} else {
			diag.ModelsChecked = true
			for _, m := range listing.Models {
				if m.ID == o.config.Model {
					diag.ModelAvailable = true
					break
				}
			}
			if !diag.ModelAvailable {
				diag.Warnings = append(diag.Warnings,
					fmt.Sprintf("configured model %q is not present in the listing", o.config.Model))
			}
		}
	}

	raw, err := o.complete(ctx, o.config.Model, diagnosticPrompt)
	if err != nil {
		diag.Errors = append(diag.Errors, fmt.Sprintf("live completion against %q failed: %v", o.config.Model, err))
		return diag
	}

	diag.OK = true
	diag.Sample = text.Truncate(raw, sampleRunes)
	return diag
}

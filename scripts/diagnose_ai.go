// Standalone diagnostic for the generation backend. Runs the same probe as
// GET /api/articles/diagnostics/ai and prints the report as JSON.
//
// Usage:
//
//	OPENROUTER_API_KEY=sk-or-... go run scripts/diagnose_ai.go
//	GENERATOR_TYPE=claude ANTHROPIC_API_KEY=sk-ant-... go run scripts/diagnose_ai.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"autoblog/internal/domain/entity"
	"autoblog/internal/infra/generator"
)

type prober interface {
	TestConnection(ctx context.Context) entity.Diagnostics
}

func main() {
	var p prober
	switch os.Getenv("GENERATOR_TYPE") {
	case "claude":
		p = generator.NewClaude(os.Getenv("ANTHROPIC_API_KEY"))
	case "template":
		p = generator.NewTemplate()
	default:
		p = generator.NewOpenRouter(os.Getenv("OPENROUTER_API_KEY"), generator.LoadConfig())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	diag := p.TestConnection(ctx)

	out, err := json.MarshalIndent(diag, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if !diag.OK {
		os.Exit(1)
	}
}

package pathutil

import (
	"regexp"
	"strings"
)

// Patterns for routes that embed an article ID. Everything else (static
// routes like /health, /metrics, /feed.xml) passes through unchanged, so
// the metrics path label stays bounded by the route table.
var idPatterns = []struct {
	pattern  *regexp.Regexp
	template string
}{
	{regexp.MustCompile(`^/api/articles/\d+$`), "/api/articles/:id"},
}

// NormalizePath collapses ID-bearing paths to a template form so each route
// contributes one metrics label instead of one per article.
//
//	NormalizePath("/api/articles/123")  // "/api/articles/:id"
//	NormalizePath("/api/articles")      // unchanged
//	NormalizePath("/health")            // unchanged
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range idPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}

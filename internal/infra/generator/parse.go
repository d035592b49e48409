package generator

import (
	"strings"

	"autoblog/internal/utils/text"
)

// maxTitleRunes caps article titles. The cut is rune-safe so multibyte
// titles never end mid-character.
const maxTitleRunes = 140

// parseArticle splits raw model output into a title and a content body.
//
// The first non-empty line becomes the title after leading markdown heading
// markers and surrounding whitespace are stripped; a line that strips to
// nothing yields a synthesized "New article on {topic}" title. All remaining
// non-empty lines, joined by blank lines, form the content. When nothing
// remains after the title line the full trimmed raw text is used instead,
// so a one-line response still produces a non-empty article body.
func parseArticle(raw, topic string) (title, content string) {
	trimmedRaw := strings.TrimSpace(raw)

	var (
		titleSeen bool
		rest      []string
	)
	for _, line := range strings.Split(trimmedRaw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !titleSeen {
			titleSeen = true
			title = text.Truncate(strings.TrimSpace(strings.TrimLeft(trimmed, "#")), maxTitleRunes)
			continue
		}
		rest = append(rest, trimmed)
	}

	if title == "" {
		title = "New article on " + topic
	}

	content = strings.Join(rest, "\n\n")
	if content == "" {
		content = trimmedRaw
	}
	return title, content
}

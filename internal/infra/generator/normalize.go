package generator

import (
	"encoding/json"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// errNoText marks a response body with no extractable completion text.
// It counts as an ordinary candidate failure, not an authorization failure.
var errNoText = errors.New("no extractable text in response")

// extractText pulls the completion text out of a raw response body.
//
// Providers behind OpenRouter do not all answer in the same shape, so the
// body is probed in a fixed priority order:
//
//  1. chat completion message content (choices[0].message.content)
//  2. legacy completion text (choices[0].text)
//  3. a bare JSON string body
//  4. generic top-level "content", then "text" fields
//
// The first probe that yields non-blank text wins. When none apply the
// second return value is false.
func extractText(body []byte) (string, bool) {
	var chat openai.ChatCompletionResponse
	if err := json.Unmarshal(body, &chat); err == nil && len(chat.Choices) > 0 {
		if s := strings.TrimSpace(chat.Choices[0].Message.Content); s != "" {
			return s, true
		}
	}

	var legacy openai.CompletionResponse
	if err := json.Unmarshal(body, &legacy); err == nil && len(legacy.Choices) > 0 {
		if s := strings.TrimSpace(legacy.Choices[0].Text); s != "" {
			return s, true
		}
	}

	var bare string
	if err := json.Unmarshal(body, &bare); err == nil {
		if s := strings.TrimSpace(bare); s != "" {
			return s, true
		}
	}

	var generic struct {
		Content string `json:"content"`
		Text    string `json:"text"`
	}
	if err := json.Unmarshal(body, &generic); err == nil {
		if s := strings.TrimSpace(generic.Content); s != "" {
			return s, true
		}
		if s := strings.TrimSpace(generic.Text); s != "" {
			return s, true
		}
	}

	return "", false
}

package respond

import "regexp"

// Patterns for secrets that can leak through wrapped errors: API keys in
// upstream error bodies and passwords embedded in database DSNs. The
// Anthropic pattern runs first because the generic sk- pattern would
// otherwise clip it.
var (
	anthropicKeyPattern  = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openrouterKeyPattern = regexp.MustCompile(`sk-or-[a-zA-Z0-9-_]+`)
	genericKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)
	dsnPasswordPattern   = regexp.MustCompile(`://([^:/]+):([^@]+)@`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openrouterKeyPattern.ReplaceAllString(msg, "sk-or-****")
	msg = genericKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}

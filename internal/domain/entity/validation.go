package entity

// ValidateArticleFields checks the invariants every stored article must hold:
// non-empty title and non-empty content. It is called by the repositories on
// every insert, covering both the seed path and the generation path.
// Returns a ValidationError naming the offending field.
func ValidateArticleFields(title, content string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if content == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	return nil
}

package article

import "errors"

// Sentinel errors for article use cases.
var (
	// ErrArticleNotFound is returned when the requested article does not exist.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID is returned when an article ID is zero or negative.
	ErrInvalidArticleID = errors.New("invalid article id")
)

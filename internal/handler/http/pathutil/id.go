// Package pathutil parses and normalizes URL paths for the API handlers
// and their metrics labels.
package pathutil

import (
	"errors"
	"strconv"
)

// ErrInvalidID is returned when a path segment is not a positive integer.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a path value (Go 1.22 mux {id} segment) as a positive
// int64 article ID.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// Package text provides utilities for text processing and analysis.
// This package includes reusable functions for character counting and truncation
// that behave consistently across AI providers and title/content parsing.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// This function correctly handles multi-byte characters including Japanese, Chinese,
// emoji, and other Unicode characters by counting runes instead of bytes.
//
// Examples:
//
//	CountRunes("hello")          // returns 5 (ASCII text)
//	CountRunes("こんにちは")       // returns 5 (Japanese text)
//	CountRunes("hello世界")       // returns 7 (mixed text)
//	CountRunes("")               // returns 0 (empty string)
func CountRunes(text string) int {
	return len([]rune(text))
}

// Truncate shortens text to at most limit Unicode characters (runes).
// Truncation never splits a multi-byte character. A limit of zero or less
// returns the empty string; text already within the limit is returned unchanged.
//
// Examples:
//
//	Truncate("hello world", 5)   // returns "hello"
//	Truncate("こんにちは", 3)      // returns "こんに"
//	Truncate("short", 140)       // returns "short"
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// Package readtime computes approximate reading durations for body text.
package readtime

import "strings"

// DefaultWordsPerMinute is the fixed constant used when a caller has no
// configured value. It is a site-wide setting, not adjustable per post.
const DefaultWordsPerMinute = 200

// Estimate returns ceil(wordCount / wordsPerMinute) in minutes. Any body
// containing at least one word reads as at least one minute; a body with no
// words (empty or all whitespace) reads as zero.
func Estimate(body string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Package classifier implements the coarse keyword gate that decides
// whether a message is worth running through the field extractor.
package classifier

import (
	"strings"

	"upisubs/mandate-scan/internal/patterns"
)

// IsMandateRelated reports whether the body mentions any mandate keyword.
// This is a cheap pre-filter: false positives are fine (extraction weeds
// them out), false negatives are accepted and not retried.
func IsMandateRelated(body string) bool {
	lower := strings.ToLower(body)
	for _, keyword := range patterns.Keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

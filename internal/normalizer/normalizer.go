// Package normalizer canonicalizes noisy merchant substrings captured from
// SMS bodies into clean, human-presentable display names.
//
// Lookup works on the trimmed, whitespace-collapsed, uppercased form of the
// input against built-in mappings plus optional user overrides. Unknown
// merchants fall back to the trimmed original text, and can optionally be
// resolved through an AI suggestion client.
package normalizer

import (
	"regexp"
	"strings"
	"sync"

	"upisubs/mandate-scan/internal/logging"
	"upisubs/mandate-scan/internal/patterns"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// MappingStore supplies user-maintained merchant mapping overrides.
type MappingStore interface {
	LoadMerchants() (map[string]string, error)
}

// Normalizer maps raw merchant substrings to display names.
type Normalizer struct {
	mu       sync.RWMutex
	mappings map[string]string // uppercase noisy form -> display name
	logger   logging.Logger
}

// New creates a Normalizer seeded with the built-in merchant mappings.
func New(logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	mappings := make(map[string]string, len(patterns.DefaultMerchants))
	for noisy, clean := range patterns.DefaultMerchants {
		mappings[strings.ToUpper(noisy)] = clean
	}
	return &Normalizer{
		mappings: mappings,
		logger:   logger,
	}
}

// NewWithStore creates a Normalizer with user overrides from the store
// layered over the built-in mappings. A store load failure is logged and
// the built-ins are used alone.
func NewWithStore(store MappingStore, logger logging.Logger) *Normalizer {
	n := New(logger)
	if store == nil {
		return n
	}
	overrides, err := store.LoadMerchants()
	if err != nil {
		n.logger.WithError(err).Warn("Failed to load merchant mapping overrides")
		return n
	}
	n.mu.Lock()
	for noisy, clean := range overrides {
		n.mappings[strings.ToUpper(strings.TrimSpace(noisy))] = clean
	}
	n.mu.Unlock()
	n.logger.WithField("count", len(overrides)).Debug("Loaded merchant mapping overrides")
	return n
}

// Normalize returns the display name for a raw merchant substring.
// It returns an empty string only for empty or whitespace-only input,
// which callers treat as a non-match.
func (n *Normalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	key := strings.ToUpper(whitespaceRun.ReplaceAllString(trimmed, " "))

	n.mu.RLock()
	clean, ok := n.mappings[key]
	n.mu.RUnlock()
	if ok {
		return clean
	}

	// Best-effort display name when the merchant is unknown.
	return trimmed
}

// Known reports whether the raw substring resolves through a mapping
// rather than the fallback.
func (n *Normalizer) Known(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	key := strings.ToUpper(whitespaceRun.ReplaceAllString(trimmed, " "))

	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.mappings[key]
	return ok
}

// AddMapping records a learned mapping from a noisy form to a display name.
func (n *Normalizer) AddMapping(noisy, clean string) {
	noisy = strings.TrimSpace(noisy)
	clean = strings.TrimSpace(clean)
	if noisy == "" || clean == "" {
		return
	}
	n.mu.Lock()
	n.mappings[strings.ToUpper(whitespaceRun.ReplaceAllString(noisy, " "))] = clean
	n.mu.Unlock()
}

// Mappings returns a copy of the current mapping table, keyed by the noisy
// uppercase form. Used when persisting learned mappings.
func (n *Normalizer) Mappings() map[string]string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make(map[string]string, len(n.mappings))
	for k, v := range n.mappings {
		out[k] = v
	}
	return out
}

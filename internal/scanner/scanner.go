// Package scanner orchestrates a full inbox scan: it reads candidate
// messages from an injected source, runs them through the classifier and
// extractor, and resolves the collected events into current mandate state.
package scanner

import (
	"context"

	"upisubs/mandate-scan/internal/classifier"
	"upisubs/mandate-scan/internal/extractor"
	"upisubs/mandate-scan/internal/logging"
	"upisubs/mandate-scan/internal/models"
	"upisubs/mandate-scan/internal/normalizer"
	"upisubs/mandate-scan/internal/patterns"
	"upisubs/mandate-scan/internal/resolver"
)

// DefaultMaxMessages bounds how many messages a single scan requests from
// the source, keeping worst-case scan latency predictable.
const DefaultMaxMessages = 500

// MessageSource supplies the candidate message batch. The sender filter is
// a performance hint only: sources are free to ignore it, and messages from
// unknown senders must still be considered when they do.
// Implementations return an error when the platform denies the read.
type MessageSource interface {
	ReadMessages(ctx context.Context, maxCount int, senderFilter []string) ([]models.RawMessage, error)
}

// Scanner coordinates one scan over a message source. Each Scan call is
// independent and idempotent with respect to its inputs; the Scanner keeps
// no state between scans.
type Scanner struct {
	source       MessageSource
	extractor    *extractor.Extractor
	resolver     *resolver.Resolver
	logger       logging.Logger
	maxMessages  int
	senderFilter []string
}

// New creates a Scanner over the given source. A nil normalizer gets the
// built-in merchant mappings, a nil logger the package default. The sender
// filter defaults to the known bank short-codes.
func New(source MessageSource, norm *normalizer.Normalizer, logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Scanner{
		source:       source,
		extractor:    extractor.New(norm, logger),
		resolver:     resolver.New(logger),
		logger:       logger,
		maxMessages:  DefaultMaxMessages,
		senderFilter: patterns.KnownSenders,
	}
}

// SetMaxMessages overrides the batch size ceiling. Values below one are
// ignored.
func (s *Scanner) SetMaxMessages(n int) {
	if n > 0 {
		s.maxMessages = n
	}
}

// SetSenderFilter overrides the sender hint passed to the source. Nil
// disables the hint entirely.
func (s *Scanner) SetSenderFilter(senders []string) {
	s.senderFilter = senders
}

// Scan reads the candidate batch, extracts mandate events and resolves
// them. A source failure is recovered here and reported as Success false
// with a human-readable ErrorDetail; it never propagates to the caller.
// Zero extracted mandates is a successful, empty result.
func (s *Scanner) Scan(ctx context.Context) models.ScanResult {
	messages, err := s.source.ReadMessages(ctx, s.maxMessages, s.senderFilter)
	if err != nil {
		s.logger.WithError(err).Warn("Message source unavailable, scan aborted")
		return models.ScanResult{
			Success:     false,
			Mandates:    []models.MandateEvent{},
			ErrorDetail: err.Error(),
		}
	}

	var events []models.MandateEvent
	for _, msg := range messages {
		if !classifier.IsMandateRelated(msg.Body) {
			continue
		}
		if event, ok := s.extractor.Extract(msg); ok {
			events = append(events, event)
		}
	}

	set := s.resolver.Resolve(events)
	set.TotalMessagesScanned = len(messages)

	s.logger.WithFields(
		logging.Field{Key: "scanned", Value: len(messages)},
		logging.Field{Key: "events", Value: len(events)},
		logging.Field{Key: "mandates", Value: len(set.Mandates)},
	).Info("Scan completed")

	return models.ScanResult{
		Success:              true,
		Mandates:             set.Events(),
		TotalMessagesScanned: len(messages),
	}
}

// Package extractor turns a raw bank SMS into a structured mandate event
// by applying the ordered pattern groups from the pattern library.
package extractor

import (
	"strings"

	"github.com/shopspring/decimal"

	"upisubs/mandate-scan/internal/classifier"
	"upisubs/mandate-scan/internal/logging"
	"upisubs/mandate-scan/internal/models"
	"upisubs/mandate-scan/internal/normalizer"
	"upisubs/mandate-scan/internal/patterns"
	"upisubs/mandate-scan/internal/scanerror"
)

// Extractor applies the pattern library to candidate messages.
type Extractor struct {
	normalizer *normalizer.Normalizer
	logger     logging.Logger
}

// New creates an Extractor. A nil normalizer gets the built-in mappings,
// a nil logger gets the package default.
func New(n *normalizer.Normalizer, logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if n == nil {
		n = normalizer.New(logger)
	}
	return &Extractor{
		normalizer: n,
		logger:     logger,
	}
}

// Extract parses one message into a MandateEvent. The boolean is false when
// the message is not mandate-related or matches no extraction rule; that is
// expected for mandate-adjacent noise and is not an error.
//
// Rule groups are tried in lifecycle order (created, debited, revoked) and
// within a group in declared order; the first usable match wins. A match
// whose amount does not parse or whose merchant normalizes to empty is
// treated as a non-match and falls through to the next rule.
func (e *Extractor) Extract(msg models.RawMessage) (models.MandateEvent, bool) {
	// Re-apply the keyword gate defensively; callers normally classify first.
	if !classifier.IsMandateRelated(msg.Body) {
		return models.MandateEvent{}, false
	}

	for _, eventType := range []models.EventType{models.EventCreated, models.EventDebited, models.EventRevoked} {
		event, ok := e.tryRules(msg, eventType)
		if ok {
			return event, true
		}
	}

	e.logger.WithField("message_id", msg.ID).Debug("Mandate-adjacent message matched no extraction rule")
	return models.MandateEvent{}, false
}

func (e *Extractor) tryRules(msg models.RawMessage, eventType models.EventType) (models.MandateEvent, bool) {
	needsAmount := eventType != models.EventRevoked

	for _, rule := range patterns.RulesFor(eventType) {
		match := rule.Pattern.FindStringSubmatch(msg.Body)
		if match == nil {
			continue
		}

		amount := decimal.Zero
		if needsAmount {
			raw := group(match, rule.AmountGroup)
			parsed, err := models.ParseAmount(raw)
			if err != nil {
				extractErr := &scanerror.ExtractionError{Field: "amount", Value: raw, Err: err}
				e.logger.WithError(extractErr).WithField("message_id", msg.ID).
					Debug("Rule matched but amount unparseable, trying next rule")
				continue
			}
			amount = parsed
		}

		merchant := e.normalizer.Normalize(group(match, rule.MerchantGroup))
		if merchant == "" {
			e.logger.WithField("message_id", msg.ID).
				Debug("Rule matched but merchant empty, trying next rule")
			continue
		}

		combined := msg.Sender + " " + msg.Body
		return models.MandateEvent{
			MerchantName:      merchant,
			Amount:            amount,
			Frequency:         detectFrequency(msg.Body),
			EventType:         eventType,
			BankAccountSuffix: accountSuffix(group(match, rule.AccountGroup), combined),
			PaymentApp:        detectApp(combined),
			OccurredAt:        msg.Timestamp,
			SourceText:        msg.Body,
		}, true
	}
	return models.MandateEvent{}, false
}

// group returns the capture at index, or empty when the rule does not
// capture that field or the group did not participate in the match.
func group(match []string, index int) string {
	if index <= 0 || index >= len(match) {
		return ""
	}
	return match[index]
}

// detectFrequency scans the full body for cadence markers, independently of
// which rule matched.
func detectFrequency(body string) models.Frequency {
	lower := strings.ToLower(body)
	for _, marker := range patterns.FrequencyMarkers {
		for _, sub := range marker.Substrings {
			if strings.Contains(lower, sub) {
				return marker.Frequency
			}
		}
	}
	return patterns.DefaultFrequency
}

// detectApp scans the combined sender+body text for known UPI app
// fragments. Absence is not an error; the hint is optional.
func detectApp(combined string) string {
	lower := strings.ToLower(combined)
	for _, marker := range patterns.AppMarkers {
		for _, fragment := range marker.Fragments {
			if strings.Contains(lower, fragment) {
				return marker.Name
			}
		}
	}
	return ""
}

// accountSuffix prefers the digits a rule captured, then falls back to
// scanning the combined text for a masked account reference. Either way
// only the last four digits are kept.
func accountSuffix(captured, combined string) string {
	digits := captured
	if digits == "" {
		if m := patterns.AccountPattern.FindStringSubmatch(combined); m != nil {
			digits = m[1]
		}
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return digits
}

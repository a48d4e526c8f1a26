// Package models defines the data types shared by the mandate scan engine:
// raw inbox messages, extracted mandate events and the resolved scan output.
package models

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawMessage is an inbound text message as observed by the device inbox.
// Messages are owned by the message source and read-only for the engine.
type RawMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// EventType identifies the lifecycle stage a mandate SMS reports.
type EventType string

const (
	EventCreated EventType = "created"
	EventDebited EventType = "debited"
	EventRevoked EventType = "revoked"
)

// Frequency is the billing cadence of a mandate.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
	FrequencyOneTime   Frequency = "one_time"
)

// MandateEvent is the structured result of extracting mandate information
// from one message. Created once by the extractor, never mutated.
type MandateEvent struct {
	MerchantName      string          `json:"merchant_name"`
	Amount            decimal.Decimal `json:"amount"`
	Frequency         Frequency       `json:"frequency"`
	EventType         EventType       `json:"event_type"`
	BankAccountSuffix string          `json:"bank_account_suffix,omitempty"`
	PaymentApp        string          `json:"payment_app,omitempty"`
	OccurredAt        time.Time       `json:"occurred_at"`
	SourceText        string          `json:"source_text"`
}

// MerchantKey returns the case-insensitive identity used to deduplicate
// events referring to the same subscription.
func (e MandateEvent) MerchantKey() string {
	return strings.ToLower(strings.TrimSpace(e.MerchantName))
}

// IsRevocation reports whether this event cancels a mandate.
func (e MandateEvent) IsRevocation() bool {
	return e.EventType == EventRevoked
}

// ResolvedMandateSet is the final output of a scan: one surviving event per
// merchant key plus scan metadata.
type ResolvedMandateSet struct {
	Mandates             map[string]MandateEvent `json:"mandates"`
	TotalMessagesScanned int                     `json:"total_messages_scanned"`
	Succeeded            bool                    `json:"succeeded"`
	ErrorDetail          string                  `json:"error_detail,omitempty"`
}

// Events flattens the surviving mandates into a slice ordered by merchant
// key, so callers get deterministic output regardless of map iteration.
func (s ResolvedMandateSet) Events() []MandateEvent {
	keys := make([]string, 0, len(s.Mandates))
	for k := range s.Mandates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	events := make([]MandateEvent, 0, len(keys))
	for _, k := range keys {
		events = append(events, s.Mandates[k])
	}
	return events
}

// ScanResult is what the orchestrator hands back to the host application.
// Success false with an ErrorDetail means the source could not be read;
// Success true with zero mandates means the inbox held no subscriptions.
type ScanResult struct {
	Success              bool           `json:"success"`
	Mandates             []MandateEvent `json:"mandates"`
	TotalMessagesScanned int            `json:"total_messages_scanned"`
	ErrorDetail          string         `json:"error_detail,omitempty"`
}

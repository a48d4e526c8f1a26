package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upisubs/mandate-scan/internal/logging"
	"upisubs/mandate-scan/internal/models"
)

func newTestExtractor() *Extractor {
	return New(nil, &logging.MockLogger{})
}

func msg(sender, body string) models.RawMessage {
	return models.RawMessage{
		ID:        "test",
		Sender:    sender,
		Body:      body,
		Timestamp: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestExtractMandateCreation(t *testing.T) {
	e := newTestExtractor()

	event, ok := e.Extract(msg("HDFCBK", "UPI Mandate for Rs.199.00 created for NETFLIX on A/C XX4521."))
	require.True(t, ok)

	assert.Equal(t, "Netflix", event.MerchantName)
	assert.Equal(t, "199.00", event.Amount.StringFixed(2))
	assert.Equal(t, models.EventCreated, event.EventType)
	assert.Equal(t, "4521", event.BankAccountSuffix)
	assert.Equal(t, models.FrequencyMonthly, event.Frequency)
	assert.Empty(t, event.PaymentApp)
	assert.Equal(t, "UPI Mandate for Rs.199.00 created for NETFLIX on A/C XX4521.", event.SourceText)
}

func TestExtractAutoPayRegistration(t *testing.T) {
	e := newTestExtractor()

	event, ok := e.Extract(msg("ICICIB", "AutoPay registered for Rs.119/month to SPOTIFY via PhonePe."))
	require.True(t, ok)

	assert.Equal(t, "Spotify", event.MerchantName)
	assert.Equal(t, "119.00", event.Amount.StringFixed(2))
	assert.Equal(t, models.EventCreated, event.EventType)
	assert.Equal(t, "PhonePe", event.PaymentApp)
	assert.Equal(t, models.FrequencyMonthly, event.Frequency)
}

func TestExtractRevocation(t *testing.T) {
	e := newTestExtractor()

	event, ok := e.Extract(msg("HDFCBK", "UPI Mandate for NETFLIX has been revoked."))
	require.True(t, ok)

	assert.Equal(t, "Netflix", event.MerchantName)
	assert.True(t, event.Amount.IsZero())
	assert.Equal(t, models.EventRevoked, event.EventType)
}

func TestExtractDebitWithAccountCapture(t *testing.T) {
	e := newTestExtractor()

	event, ok := e.Extract(msg("SBIINB", "Rs.499.00 debited from A/C XX7890 for AMAZON PRIME UPI AutoPay. Ref: 512345678902."))
	require.True(t, ok)

	assert.Equal(t, "Amazon Prime", event.MerchantName)
	assert.Equal(t, "499.00", event.Amount.StringFixed(2))
	assert.Equal(t, models.EventDebited, event.EventType)
	assert.Equal(t, "7890", event.BankAccountSuffix)
}

func TestExtractStandingInstruction(t *testing.T) {
	e := newTestExtractor()

	event, ok := e.Extract(msg("HDFCBK", "Standing instruction created for HDFC ERGO Rs.5000"))
	require.True(t, ok)

	// Merchant comes before the amount in this template.
	assert.Equal(t, "HDFC ERGO", event.MerchantName)
	assert.Equal(t, "5000.00", event.Amount.StringFixed(2))
	assert.Equal(t, models.EventCreated, event.EventType)
}

func TestExtractAutoDebitProcessed(t *testing.T) {
	e := newTestExtractor()

	event, ok := e.Extract(msg("HDFCBK", "Auto debit of Rs.199 for NETFLIX processed successfully. Balance: Rs.45,231.00"))
	require.True(t, ok)

	assert.Equal(t, "Netflix", event.MerchantName)
	assert.Equal(t, "199.00", event.Amount.StringFixed(2))
	assert.Equal(t, models.EventDebited, event.EventType)
}

func TestExtractThousandsSeparatorAmount(t *testing.T) {
	e := newTestExtractor()

	event, ok := e.Extract(msg("AXISBK", "UPI Mandate for Rs.1,999.00 created for NETFLIX on A/C XX4521."))
	require.True(t, ok)

	assert.Equal(t, "1999.00", event.Amount.StringFixed(2))
}

func TestExtractKeywordGate(t *testing.T) {
	e := newTestExtractor()

	// No mandate keyword: extraction must bail before any pattern runs,
	// even though the body carries an amount-like substring.
	_, ok := e.Extract(msg("HDFCBK", "Rs.199.00 sent to NETFLIX. Ref 12345."))
	assert.False(t, ok)
}

func TestExtractUnparseableAmountFallsThrough(t *testing.T) {
	e := newTestExtractor()

	// The creation rule matches but the "amount" is only separators, so
	// the rule is a non-match and nothing else fits.
	_, ok := e.Extract(msg("HDFCBK", "UPI Mandate for Rs.,, created for NETFLIX"))
	assert.False(t, ok)
}

func TestExtractMandateAdjacentNoise(t *testing.T) {
	e := newTestExtractor()

	// Keyword present, but no extraction template fits. Expected, not an
	// error.
	_, ok := e.Extract(msg("HDFCBK", "Learn how UPI AutoPay mandates work in our new guide."))
	assert.False(t, ok)
}

func TestExtractUnknownMerchantFallsBackToRawText(t *testing.T) {
	e := newTestExtractor()

	event, ok := e.Extract(msg("PHONPE", "UPI AutoPay of Rs.299 successful for CULTFIT membership. Next debit: 07-Feb-25."))
	require.True(t, ok)

	assert.Equal(t, "CULTFIT membership", event.MerchantName)
	assert.Equal(t, models.EventDebited, event.EventType)
	assert.Equal(t, "PhonePe", event.PaymentApp)
}

func TestDetectFrequency(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected models.Frequency
	}{
		{name: "Yearly", body: "AutoPay for Rs.999/year to HOTSTAR", expected: models.FrequencyYearly},
		{name: "Annual", body: "Annual mandate created for ICLOUD", expected: models.FrequencyYearly},
		{name: "Weekly", body: "Weekly autopay of Rs.49", expected: models.FrequencyWeekly},
		{name: "Quarterly", body: "Charged quarterly via mandate", expected: models.FrequencyQuarterly},
		{name: "Daily", body: "Daily auto debit of Rs.10", expected: models.FrequencyDaily},
		{name: "DefaultMonthly", body: "AutoPay registered for Rs.119/month", expected: models.FrequencyMonthly},
		{name: "NoMarker", body: "UPI Mandate created for NETFLIX", expected: models.FrequencyMonthly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectFrequency(tt.body))
		})
	}
}

func TestDetectApp(t *testing.T) {
	tests := []struct {
		name     string
		combined string
		expected string
	}{
		{name: "PhonePeInBody", combined: "HDFCBK paid via PhonePe app", expected: "PhonePe"},
		{name: "PhonePeSenderTypo", combined: "PHONPE autopay done", expected: "PhonePe"},
		{name: "GooglePay", combined: "KOTAKB set up via Google Pay", expected: "Google Pay"},
		{name: "GPayShortForm", combined: "AXISBK done on GPay", expected: "Google Pay"},
		{name: "Paytm", combined: "PYTM via paytm wallet", expected: "Paytm"},
		{name: "BHIM", combined: "UPIPAY bhim transaction", expected: "BHIM"},
		{name: "None", combined: "HDFCBK UPI mandate debit", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectApp(tt.combined))
		})
	}
}

func TestAccountSuffixPrefersRuleCapture(t *testing.T) {
	assert.Equal(t, "7890", accountSuffix("7890", "something with A/C XX1111"))
	assert.Equal(t, "4521", accountSuffix("", "HDFCBK mandate on A/C XX4521."))
	// Longer captures keep only the last four digits.
	assert.Equal(t, "6789", accountSuffix("123456789", ""))
	assert.Equal(t, "", accountSuffix("", "no account here"))
}

package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMandateRelated(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected bool
	}{
		{
			name:     "MandateKeyword",
			body:     "UPI Mandate for Rs.199.00 created for NETFLIX",
			expected: true,
		},
		{
			name:     "AutopayKeyword",
			body:     "AutoPay registered for Rs.119/month to SPOTIFY",
			expected: true,
		},
		{
			name:     "CaseInsensitive",
			body:     "RECURRING payment of Rs.499 set up",
			expected: true,
		},
		{
			name:     "StandingInstruction",
			body:     "Standing Instruction created for HDFC ERGO Rs.5000",
			expected: true,
		},
		{
			name:     "AutoDebit",
			body:     "Auto debit of Rs.199 for SPOTIFY processed",
			expected: true,
		},
		{
			name:     "SubscriptionKeyword",
			body:     "Your subscription renews tomorrow",
			expected: true,
		},
		{
			name:     "PlainOTP",
			body:     "Your OTP for login: 482919. Do not share it with anyone.",
			expected: false,
		},
		{
			name:     "AmountAloneIsNotEnough",
			body:     "Rs.1,999.00 credited to your account ending 4521",
			expected: false,
		},
		{
			name:     "Empty",
			body:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMandateRelated(tt.body))
		})
	}
}

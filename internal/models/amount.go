package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary substring captured from an SMS body.
// Indian bank messages write amounts with comma thousands separators
// ("1,999.00") and occasionally stray spaces; both are stripped before
// parsing. Negative amounts never appear in mandate messages, so they are
// rejected alongside non-numeric input.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", raw)
	}
	return amount, nil
}

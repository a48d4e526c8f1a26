package scanner

import (
	"time"

	"upisubs/mandate-scan/internal/models"
)

// DemoInbox returns a realistic sample inbox for environments where no real
// message store exists. Bodies mirror actual Indian bank mandate SMS
// templates across the created/debited lifecycle.
func DemoInbox(now time.Time) []models.RawMessage {
	day := 24 * time.Hour
	return []models.RawMessage{
		{
			ID:        "1",
			Sender:    "HDFCBK",
			Body:      "UPI Mandate for Rs.199.00 created for NETFLIX on A/C XX4521. Ref: 412345678901. Valid till 31-Dec-25.",
			Timestamp: now.Add(-30 * day),
		},
		{
			ID:        "2",
			Sender:    "ICICIB",
			Body:      "AutoPay registered for Rs.119/month to SPOTIFY via PhonePe. Mandate ID: MAND123456. First debit on 15-Jan.",
			Timestamp: now.Add(-45 * day),
		},
		{
			ID:        "3",
			Sender:    "SBIINB",
			Body:      "Rs.499.00 debited from A/C XX7890 for AMAZON PRIME UPI AutoPay. Ref: 512345678902.",
			Timestamp: now.Add(-5 * day),
		},
		{
			ID:        "4",
			Sender:    "AXISBK",
			Body:      "UPI Mandate for Rs.299.00 created for DISNEY HOTSTAR on A/C XX1234. Next debit: 20-Jan-25.",
			Timestamp: now.Add(-60 * day),
		},
		{
			ID:        "5",
			Sender:    "KOTAKB",
			Body:      "Recurring payment of Rs.79 set up for YOUTUBE PREMIUM via Google Pay. Monthly auto-debit enabled.",
			Timestamp: now.Add(-90 * day),
		},
		{
			ID:        "6",
			Sender:    "HDFCBK",
			Body:      "Auto debit of Rs.199 for NETFLIX processed successfully. Balance: Rs.45,231.00",
			Timestamp: now.Add(-2 * day),
		},
		{
			ID:        "7",
			Sender:    "PHONPE",
			Body:      "UPI AutoPay of Rs.299 successful for CULTFIT membership. Next debit: 07-Feb-25.",
			Timestamp: now.Add(-7 * day),
		},
	}
}

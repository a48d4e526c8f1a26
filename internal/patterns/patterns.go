// Package patterns holds the fixed matching data for mandate SMS detection:
// per-stage extraction rules, the classifier keyword set, known bank sender
// codes and the built-in merchant name mappings. Everything here is compiled
// once at init and treated as immutable.
//
// The rule set is tuned for common Indian bank SMS templates. It favors
// precision over recall: a template the rules do not know is an accepted
// false negative, not a defect.
package patterns

import (
	"regexp"

	"upisubs/mandate-scan/internal/models"
)

// Rule is a single extraction pattern. Capture indices name which submatch
// carries which field; zero means the rule does not capture that field.
type Rule struct {
	Pattern       *regexp.Regexp
	AmountGroup   int
	MerchantGroup int
	AccountGroup  int
}

// DefaultFrequency is used when no cadence marker appears in the message
// body. Debit confirmations rarely spell out the cadence, so monthly is the
// deliberate default rather than a silent fallthrough.
const DefaultFrequency = models.FrequencyMonthly

// CreatedRules match mandate registration messages. Rules are tried in
// declared order and the first match wins.
var CreatedRules = []Rule{
	// "UPI Mandate for Rs.299.00 created for NETFLIX"
	{
		Pattern:       regexp.MustCompile(`(?i)(?:upi\s*)?mandate\s*(?:for\s*)?(?:rs\.?\s*)?([0-9,]+(?:\.[0-9]{2})?)\s*(?:created|registered|set\s*up)\s*(?:for|to)\s+([a-z0-9\s]+?)(?:\s+on|\s+via|\s+from|\.|\s*$)`),
		AmountGroup:   1,
		MerchantGroup: 2,
	},
	// "AutoPay registered for Rs.199/month to SPOTIFY"
	{
		Pattern:       regexp.MustCompile(`(?i)autopay\s*(?:registered|created|set\s*up)\s*(?:for\s*)?(?:rs\.?\s*)?([0-9,]+(?:\.[0-9]{2})?)\s*(?:/\w+)?\s*(?:to|for)\s+([a-z0-9\s]+?)(?:\s+on|\s+via|\s+from|\.|\s*$)`),
		AmountGroup:   1,
		MerchantGroup: 2,
	},
	// "Standing instruction created for HDFC ERGO Rs.5000"
	{
		Pattern:       regexp.MustCompile(`(?i)standing\s*instruction\s*(?:created|registered)\s*(?:for)?\s*([a-z0-9\s]+?)\s*(?:rs\.?\s*)?([0-9,]+)`),
		AmountGroup:   2,
		MerchantGroup: 1,
	},
	// "Recurring payment of Rs.499 set up for AMAZON PRIME"
	{
		Pattern:       regexp.MustCompile(`(?i)recurring\s*payment\s*(?:of\s*)?(?:rs\.?\s*)?([0-9,]+(?:\.[0-9]{2})?)\s*(?:set\s*up|created)\s*(?:for|to)\s+([a-z0-9\s]+?)(?:\s+on|\s+via|\s+from|\.|\s*$)`),
		AmountGroup:   1,
		MerchantGroup: 2,
	},
}

// DebitedRules match debit confirmation messages.
var DebitedRules = []Rule{
	// "Rs.299.00 debited from A/C XX1234 for NETFLIX UPI AutoPay"
	{
		Pattern:       regexp.MustCompile(`(?i)(?:rs\.?\s*)?([0-9,]+(?:\.[0-9]{2})?)\s*debited\s*(?:from\s*)?(?:a/c\s*)?(?:xx)?(\d+)?\s*(?:for|towards)\s+([a-z0-9\s]+?)\s*(?:upi\s*)?(?:autopay|mandate|recurring)`),
		AmountGroup:   1,
		AccountGroup:  2,
		MerchantGroup: 3,
	},
	// "UPI Autopay of Rs.499 successful for AMAZON PRIME"
	{
		Pattern:       regexp.MustCompile(`(?i)(?:upi\s*)?autopay\s*(?:of\s*)?(?:rs\.?\s*)?([0-9,]+(?:\.[0-9]{2})?)\s*(?:successful|completed|processed)\s*(?:for|to)\s+([a-z0-9\s]+?)(?:\s+via|\s+on|\s+from|\.|\s*$)`),
		AmountGroup:   1,
		MerchantGroup: 2,
	},
	// "Auto debit of Rs.199 for SPOTIFY processed"
	{
		Pattern:       regexp.MustCompile(`(?i)auto\s*debit\s*(?:of\s*)?(?:rs\.?\s*)?([0-9,]+(?:\.[0-9]{2})?)\s*(?:for|to)\s+([a-z0-9\s]+?)\s*(?:processed|successful|completed)`),
		AmountGroup:   1,
		MerchantGroup: 2,
	},
}

// RevokedRules match cancellation messages. Revocations carry no amount.
var RevokedRules = []Rule{
	// "UPI Mandate for NETFLIX has been revoked"
	{
		Pattern:       regexp.MustCompile(`(?i)(?:upi\s*)?mandate\s*(?:for)?\s*([a-z0-9\s]+?)\s*(?:has\s*been\s*)?(?:revoked|cancelled|stopped)`),
		MerchantGroup: 1,
	},
	// "AutoPay cancelled for SPOTIFY"
	{
		Pattern:       regexp.MustCompile(`(?i)autopay\s*(?:cancelled|revoked|stopped)\s*(?:for|to)\s+([a-z0-9\s]+?)(?:\s+via|\s+on|\s+from|\.|\s*$)`),
		MerchantGroup: 1,
	},
	// "Standing instruction for HDFC cancelled"
	{
		Pattern:       regexp.MustCompile(`(?i)standing\s*instruction\s*(?:for)?\s*([a-z0-9\s]+?)\s*(?:cancelled|revoked)`),
		MerchantGroup: 1,
	},
}

// RulesFor returns the rule group for a lifecycle stage.
func RulesFor(eventType models.EventType) []Rule {
	switch eventType {
	case models.EventCreated:
		return CreatedRules
	case models.EventDebited:
		return DebitedRules
	case models.EventRevoked:
		return RevokedRules
	}
	return nil
}

// Keywords gate the classifier. A message containing none of these is not
// mandate-related. The bare "si" variants catch standing-instruction
// shorthand without matching every word containing the letters.
var Keywords = []string{
	"mandate", "autopay", "auto-pay", "recurring", "standing instruction",
	"si ", " si", "upi auto", "auto debit", "subscription",
}

// KnownSenders lists bank and UPI app short-codes. Sources may use it as a
// pre-filter hint; it is never a correctness gate, messages from unknown
// senders still go through the classifier.
var KnownSenders = []string{
	"HDFCBK", "ICICIB", "SBIINB", "AXISBK", "KOTAKB", "PNBSMS",
	"BOIIND", "IABORB", "UNIONB", "ABORIN", "CANBNK", "CENTBK",
	"PHONPE", "GPAYTM", "PYTM", "AMAZONP", "BHIM", "UPIPAY",
	"PAYTMB", "AIRTEL", "JIOPAY", "MOBIKWK", "FREECHARGE",
}

// AccountPattern extracts the last digits of a masked account reference
// such as "A/C XX4521" or "Account No. XXXX1234".
var AccountPattern = regexp.MustCompile(`(?i)(?:a/c|account|ac)\s*(?:no\.?)?\s*(?:xx|x+)?([0-9]{4})`)

// FrequencyMarker maps body substrings to a billing cadence.
type FrequencyMarker struct {
	Substrings []string
	Frequency  models.Frequency
}

// FrequencyMarkers are checked in order against the lowercased body; the
// first hit wins, monthly otherwise. The slash forms ("/year") match the
// "Rs.199/year" phrasing banks use.
var FrequencyMarkers = []FrequencyMarker{
	{Substrings: []string{"/year", "yearly", "annual"}, Frequency: models.FrequencyYearly},
	{Substrings: []string{"/week", "weekly"}, Frequency: models.FrequencyWeekly},
	{Substrings: []string{"/quarter", "quarterly"}, Frequency: models.FrequencyQuarterly},
	{Substrings: []string{"/day", "daily"}, Frequency: models.FrequencyDaily},
}

// AppMarker maps sender/body fragments to a UPI app display name.
type AppMarker struct {
	Fragments []string
	Name      string
}

// AppMarkers are checked in order against the lowercased sender+body text.
var AppMarkers = []AppMarker{
	{Fragments: []string{"phonepe", "phonpe"}, Name: "PhonePe"},
	{Fragments: []string{"gpay", "google pay"}, Name: "Google Pay"},
	{Fragments: []string{"paytm"}, Name: "Paytm"},
	{Fragments: []string{"amazon pay"}, Name: "Amazon Pay"},
	{Fragments: []string{"bhim"}, Name: "BHIM"},
	{Fragments: []string{"cred"}, Name: "CRED"},
}

// DefaultMerchants maps noisy uppercase merchant substrings to clean
// display names. User overrides from the merchant store are layered on top.
var DefaultMerchants = map[string]string{
	"NETFLIX":         "Netflix",
	"NETFLIXINC":      "Netflix",
	"SPOTIFY":         "Spotify",
	"SPOTIFYINDIA":    "Spotify",
	"AMAZONPRIME":     "Amazon Prime",
	"AMAZON PRIME":    "Amazon Prime",
	"PRIMEVIDEO":      "Amazon Prime",
	"HOTSTAR":         "Disney+ Hotstar",
	"DISNEYHOTSTAR":   "Disney+ Hotstar",
	"DISNEY HOTSTAR":  "Disney+ Hotstar",
	"YOUTUBEPREMUIM":  "YouTube Premium",
	"YOUTUBE PREMIUM": "YouTube Premium",
	"GOOGLESTORAGE":   "Google One",
	"GOOGLEONE":       "Google One",
	"ICLOUD":          "iCloud",
	"APPLEMUSIC":      "Apple Music",
	"JIOSAAVN":        "JioSaavn",
	"GAANA":           "Gaana",
	"WYNK":            "Wynk Music",
	"ZEEPLEX":         "Zee5",
	"ZEE5":            "Zee5",
	"SONYLIV":         "SonyLIV",
	"MXPLAYER":        "MX Player",
	"VOOT":            "Voot",
	"ALTBALAJI":       "ALTBalaji",
	"CULTFIT":         "Cult.fit",
	"CUREFIT":         "Cult.fit",
}

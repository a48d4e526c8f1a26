// Package export writes resolved mandates to CSV for the host application
// or a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"upisubs/mandate-scan/internal/logging"
	"upisubs/mandate-scan/internal/models"
)

const dateLayout = "2006-01-02 15:04:05"

// Delimiter used for CSV output, configurable for locales that expect
// semicolons.
var Delimiter rune = ','

// SetDelimiter changes the CSV output delimiter.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// mandateCSVRow maps a resolved mandate onto CSV columns via gocsv tags.
type mandateCSVRow struct {
	Merchant      string `csv:"Merchant"`
	Amount        string `csv:"Amount"`
	Frequency     string `csv:"Frequency"`
	LastEvent     string `csv:"Last Event"`
	AccountSuffix string `csv:"Account"`
	PaymentApp    string `csv:"UPI App"`
	LastSeen      string `csv:"Last Seen"`
}

// WriteMandates writes resolved mandates to the given writer as CSV.
func WriteMandates(mandates []models.MandateEvent, w io.Writer) error {
	rows := make([]*mandateCSVRow, 0, len(mandates))
	for _, m := range mandates {
		rows = append(rows, &mandateCSVRow{
			Merchant:      m.MerchantName,
			Amount:        m.Amount.StringFixed(2),
			Frequency:     string(m.Frequency),
			LastEvent:     string(m.EventType),
			AccountSuffix: m.BankAccountSuffix,
			PaymentApp:    m.PaymentApp,
			LastSeen:      m.OccurredAt.Format(dateLayout),
		})
	}

	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		writer := csv.NewWriter(out)
		writer.Comma = Delimiter
		return gocsv.NewSafeCSVWriter(writer)
	})

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("error writing mandates CSV: %w", err)
	}
	return nil
}

// WriteMandatesToFile writes resolved mandates to a CSV file.
func WriteMandatesToFile(mandates []models.MandateEvent, csvFile string) error {
	log := logging.GetLogger()
	log.WithFields(
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(mandates)},
	).Info("Writing mandates to CSV file")

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close CSV file")
		}
	}()

	return WriteMandates(mandates, file)
}

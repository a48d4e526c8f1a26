// Package scan implements the scan subcommand: run the extraction engine
// over a message source and report the resolved subscriptions.
package scan

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"upisubs/mandate-scan/cmd/root"
	"upisubs/mandate-scan/internal/export"
	"upisubs/mandate-scan/internal/logging"
	"upisubs/mandate-scan/internal/normalizer"
	"upisubs/mandate-scan/internal/scanner"
	"upisubs/mandate-scan/internal/smsbackup"
	"upisubs/mandate-scan/internal/store"
)

var (
	inputFile  string
	outputFile string
	maxMsgs    int
	noFilter   bool
	demo       bool
)

// Cmd is the scan command.
var Cmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan an SMS backup export for UPI mandates",
	Long: `Scan reads messages from an SMS Backup & Restore XML export (or the
built-in demo inbox), extracts mandate events and resolves them into the
current subscription list.`,
	Run: run,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "SMS backup XML file to scan")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write resolved mandates to this CSV file")
	Cmd.Flags().IntVarP(&maxMsgs, "max", "m", 0, "Maximum messages to read (default from config)")
	Cmd.Flags().BoolVar(&noFilter, "no-sender-filter", false, "Consider messages from unknown senders too")
	Cmd.Flags().BoolVar(&demo, "demo", false, "Scan the built-in demo inbox instead of a file")
}

func run(cmd *cobra.Command, args []string) {
	log := root.Log

	var source scanner.MessageSource
	switch {
	case demo || inputFile == "":
		if inputFile == "" && !demo {
			log.Info("No input file given, scanning the built-in demo inbox")
		}
		source = &scanner.StaticSource{Messages: scanner.DemoInbox(time.Now())}
	default:
		valid, err := smsbackup.ValidateFormat(inputFile)
		if err != nil {
			log.Fatalf("Error validating backup file: %v", err)
		}
		if !valid {
			log.Fatalf("%s is not an SMS backup export", inputFile)
		}
		source = smsbackup.NewFileSource(inputFile, logging.GetLogger())
	}

	merchantStore := store.NewMerchantStore(root.Cfg.Data.MerchantsFile, logging.GetLogger())
	norm := normalizer.NewWithStore(merchantStore, logging.GetLogger())

	s := scanner.New(source, norm, logging.GetLogger())
	if maxMsgs > 0 {
		s.SetMaxMessages(maxMsgs)
	} else {
		s.SetMaxMessages(root.Cfg.Scan.MaxMessages)
	}
	if noFilter || !root.Cfg.Scan.UseSenderFilter {
		s.SetSenderFilter(nil)
	}

	result := s.Scan(context.Background())
	if !result.Success {
		log.Fatalf("Scan failed: %s", result.ErrorDetail)
	}

	if len(result.Mandates) == 0 {
		log.Infof("No subscriptions found in %d messages", result.TotalMessagesScanned)
		return
	}

	log.Infof("Found %d subscriptions in %d messages", len(result.Mandates), result.TotalMessagesScanned)
	for _, m := range result.Mandates {
		log.Infof("  %-20s Rs.%-10s %-10s last %s on %s",
			m.MerchantName, m.Amount.StringFixed(2), m.Frequency,
			m.EventType, m.OccurredAt.Format("2006-01-02"))
	}

	if outputFile != "" {
		if err := export.WriteMandatesToFile(result.Mandates, outputFile); err != nil {
			log.Fatalf("Error writing CSV: %v", err)
		}
		log.Infof("Wrote %s", outputFile)
	}
}

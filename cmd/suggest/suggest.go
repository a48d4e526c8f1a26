// Package suggest implements the suggest subcommand: resolve an unknown
// merchant substring to a clean display name via the Gemini API.
package suggest

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"upisubs/mandate-scan/cmd/root"
	"upisubs/mandate-scan/internal/logging"
	"upisubs/mandate-scan/internal/normalizer"
	"upisubs/mandate-scan/internal/store"
)

var (
	merchant string
	save     bool
)

// Cmd is the suggest command.
var Cmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest a display name for an unknown merchant",
	Long: `Suggest asks the configured AI model for a clean consumer brand name
behind a raw merchant string as it appeared in a bank SMS. Known merchants
resolve locally without an API call.`,
	Run: run,
}

func init() {
	Cmd.Flags().StringVarP(&merchant, "merchant", "p", "", "Raw merchant string from the SMS (required)")
	Cmd.Flags().BoolVarP(&save, "save", "s", false, "Save the suggestion to the merchant mapping file")
	if err := Cmd.MarkFlagRequired("merchant"); err != nil {
		panic(err)
	}
}

func run(cmd *cobra.Command, args []string) {
	log := root.Log
	cfg := root.Cfg

	merchantStore := store.NewMerchantStore(cfg.Data.MerchantsFile, logging.GetLogger())
	norm := normalizer.NewWithStore(merchantStore, logging.GetLogger())

	if norm.Known(merchant) {
		log.Infof("%q is already mapped to %q", merchant, norm.Normalize(merchant))
		return
	}

	if !cfg.AI.Enabled {
		log.Fatal("AI suggestions are disabled; set UPISUBS_AI_ENABLED=true and GEMINI_API_KEY")
	}

	client := normalizer.NewGeminiClient(cfg.AI.APIKey, cfg.AI.Model, logging.GetLogger())
	defer func() {
		if err := client.Close(); err != nil {
			log.Warnf("Failed to close Gemini client: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name, err := norm.SuggestUnknown(ctx, client, merchant)
	if err != nil {
		log.Fatalf("Suggestion failed: %v", err)
	}
	log.Infof("%q -> %q", merchant, name)

	if save {
		if err := merchantStore.SaveMerchants(norm.Mappings()); err != nil {
			log.Fatalf("Failed to save merchant mappings: %v", err)
		}
		log.Info("Saved merchant mappings")
	}
}

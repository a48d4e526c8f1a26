package normalizer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"upisubs/mandate-scan/internal/logging"
)

// AIClient suggests a clean display name for a merchant substring the
// mapping table does not know. Implementations call an external service;
// the interface keeps the rest of the engine testable without one.
type AIClient interface {
	SuggestDisplayName(ctx context.Context, rawMerchant string) (string, error)
}

// GeminiClient implements AIClient against the Google Gemini API.
// The underlying client is created lazily on first use so that merely
// constructing one without an API key costs nothing.
type GeminiClient struct {
	apiKey string
	model  string
	logger logging.Logger

	mu     sync.Mutex
	client *genai.Client
	gen    *genai.GenerativeModel
}

// NewGeminiClient creates a GeminiClient for the given model name.
func NewGeminiClient(apiKey, model string, logger logging.Logger) *GeminiClient {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiClient{
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}
}

func (c *GeminiClient) ensureClient(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return nil
	}
	if c.apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	c.gen = client.GenerativeModel(c.model)
	return nil
}

// SuggestDisplayName asks the model for the consumer brand behind a raw
// merchant string as it appeared in a bank SMS.
func (c *GeminiClient) SuggestDisplayName(ctx context.Context, rawMerchant string) (string, error) {
	if strings.TrimSpace(rawMerchant) == "" {
		return "", fmt.Errorf("empty merchant string")
	}
	if err := c.ensureClient(ctx); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"The string %q is a merchant name as it appeared in an Indian bank SMS "+
			"about a UPI AutoPay subscription. Reply with only the clean consumer "+
			"brand name for display, e.g. \"Disney+ Hotstar\" for \"DISNEYHOTSTAR\".",
		strings.TrimSpace(rawMerchant))

	resp, err := c.gen.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	name := firstText(resp)
	if name == "" {
		return "", fmt.Errorf("gemini returned no text for %q", rawMerchant)
	}

	c.logger.WithFields(
		logging.Field{Key: "merchant", Value: rawMerchant},
		logging.Field{Key: "suggestion", Value: name},
	).Debug("Gemini suggested merchant display name")
	return name, nil
}

// Close releases the underlying API client, if one was created.
func (c *GeminiClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	c.gen = nil
	return err
}

func firstText(resp *genai.GenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				trimmed := strings.TrimSpace(string(text))
				if trimmed != "" {
					return strings.Trim(trimmed, `"`)
				}
			}
		}
	}
	return ""
}

// SuggestUnknown resolves a merchant through the mapping table first and
// falls back to the AI client, learning the answer on success so the next
// scan resolves it locally.
func (n *Normalizer) SuggestUnknown(ctx context.Context, client AIClient, raw string) (string, error) {
	if n.Known(raw) {
		return n.Normalize(raw), nil
	}
	if client == nil {
		return "", fmt.Errorf("no AI client configured")
	}

	name, err := client.SuggestDisplayName(ctx, raw)
	if err != nil {
		return "", err
	}
	n.AddMapping(raw, name)
	return name, nil
}

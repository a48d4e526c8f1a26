package normalizer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upisubs/mandate-scan/internal/logging"
)

func TestNormalizeBuiltInMappings(t *testing.T) {
	n := New(&logging.MockLogger{})

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "Exact", raw: "NETFLIX", expected: "Netflix"},
		{name: "Lowercase", raw: "netflix", expected: "Netflix"},
		{name: "MixedCase", raw: "NetFlix", expected: "Netflix"},
		{name: "SurroundingWhitespace", raw: "  SPOTIFY  ", expected: "Spotify"},
		{name: "InternalWhitespaceCollapsed", raw: "AMAZON   PRIME", expected: "Amazon Prime"},
		{name: "MultiWord", raw: "disney hotstar", expected: "Disney+ Hotstar"},
		{name: "UnknownFallsBackToTrimmed", raw: "  CULTFIT membership ", expected: "CULTFIT membership"},
		{name: "Empty", raw: "", expected: ""},
		{name: "WhitespaceOnly", raw: "   ", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, n.Normalize(tc.raw))
		})
	}
}

func TestKnown(t *testing.T) {
	n := New(&logging.MockLogger{})

	assert.True(t, n.Known("netflix"))
	assert.True(t, n.Known("  AMAZON  PRIME "))
	assert.False(t, n.Known("RANDOMGYM"))
	assert.False(t, n.Known(""))
}

func TestAddMapping(t *testing.T) {
	n := New(&logging.MockLogger{})
	require.False(t, n.Known("RANDOMGYM"))

	n.AddMapping(" randomgym ", "Random Gym")

	assert.True(t, n.Known("RANDOMGYM"))
	assert.Equal(t, "Random Gym", n.Normalize("randomgym"))
}

func TestAddMappingIgnoresEmpty(t *testing.T) {
	n := New(&logging.MockLogger{})
	before := len(n.Mappings())

	n.AddMapping("", "Something")
	n.AddMapping("SOMETHING", "  ")

	assert.Len(t, n.Mappings(), before)
}

type fakeStore struct {
	mappings map[string]string
	err      error
}

func (s *fakeStore) LoadMerchants() (map[string]string, error) {
	return s.mappings, s.err
}

func TestNewWithStoreLayersOverrides(t *testing.T) {
	store := &fakeStore{mappings: map[string]string{
		"randomgym": "Random Gym",
		"NETFLIX":   "Netflix India", // user override beats the built-in
	}}

	n := NewWithStore(store, &logging.MockLogger{})

	assert.Equal(t, "Random Gym", n.Normalize("RANDOMGYM"))
	assert.Equal(t, "Netflix India", n.Normalize("netflix"))
	assert.Equal(t, "Spotify", n.Normalize("SPOTIFY"))
}

func TestNewWithStoreLoadFailureKeepsBuiltIns(t *testing.T) {
	log := &logging.MockLogger{}
	store := &fakeStore{err: fmt.Errorf("disk unhappy")}

	n := NewWithStore(store, log)

	assert.Equal(t, "Netflix", n.Normalize("NETFLIX"))
	assert.True(t, log.HasMessage("Failed to load merchant mapping overrides"))
}

func TestNewWithStoreNilStore(t *testing.T) {
	n := NewWithStore(nil, &logging.MockLogger{})
	assert.Equal(t, "Netflix", n.Normalize("NETFLIX"))
}

func TestMappingsReturnsCopy(t *testing.T) {
	n := New(&logging.MockLogger{})

	m := n.Mappings()
	m["NETFLIX"] = "Clobbered"

	assert.Equal(t, "Netflix", n.Normalize("NETFLIX"))
}

type fakeAIClient struct {
	suggestion string
	err        error
	calls      int
	lastRaw    string
}

func (c *fakeAIClient) SuggestDisplayName(_ context.Context, rawMerchant string) (string, error) {
	c.calls++
	c.lastRaw = rawMerchant
	if c.err != nil {
		return "", c.err
	}
	return c.suggestion, nil
}

func TestSuggestUnknownPrefersLocalMapping(t *testing.T) {
	n := New(&logging.MockLogger{})
	ai := &fakeAIClient{suggestion: "should not be used"}

	name, err := n.SuggestUnknown(context.Background(), ai, "NETFLIX")

	require.NoError(t, err)
	assert.Equal(t, "Netflix", name)
	assert.Zero(t, ai.calls)
}

func TestSuggestUnknownLearnsFromAI(t *testing.T) {
	n := New(&logging.MockLogger{})
	ai := &fakeAIClient{suggestion: "Cult.fit"}

	name, err := n.SuggestUnknown(context.Background(), ai, "CULTFIT MEMBERSHIP")

	require.NoError(t, err)
	assert.Equal(t, "Cult.fit", name)
	assert.Equal(t, "CULTFIT MEMBERSHIP", ai.lastRaw)

	// Second call resolves locally.
	name, err = n.SuggestUnknown(context.Background(), ai, "cultfit membership")
	require.NoError(t, err)
	assert.Equal(t, "Cult.fit", name)
	assert.Equal(t, 1, ai.calls)
}

func TestSuggestUnknownPropagatesAIError(t *testing.T) {
	n := New(&logging.MockLogger{})
	ai := &fakeAIClient{err: fmt.Errorf("quota exceeded")}

	_, err := n.SuggestUnknown(context.Background(), ai, "RANDOMGYM")

	require.Error(t, err)
	assert.False(t, n.Known("RANDOMGYM"))
}

func TestSuggestUnknownWithoutClient(t *testing.T) {
	n := New(&logging.MockLogger{})

	_, err := n.SuggestUnknown(context.Background(), nil, "RANDOMGYM")

	assert.Error(t, err)
}

func TestGeminiClientRequiresAPIKey(t *testing.T) {
	c := NewGeminiClient("", "", &logging.MockLogger{})

	_, err := c.SuggestDisplayName(context.Background(), "CULTFIT")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.NoError(t, c.Close())
}

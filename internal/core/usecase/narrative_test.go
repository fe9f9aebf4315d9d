package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

func narrativeCfg() NarrativeConfig {
	return NarrativeConfig{
		MaxOutputTokens:      2048,
		RetryMaxOutputTokens: 4096,
		TruncationThreshold:  60,
		DefaultResultLimit:   15,
	}
}

func longAnswer(tail string) string {
	return strings.Repeat("The market in this area is stable and growing. ", 3) + "Great news! " + tail
}

func sampleListings(n int) []domain.ListingRecord {
	listings := make([]domain.ListingRecord, n)
	for i := range listings {
		listings[i] = domain.ListingRecord{
			StreetAddress: "1 Elm St",
			City:          "Austin",
			State:         "TX",
			ZPID:          "100",
		}
	}
	return listings
}

func TestGenerateWithRetry(t *testing.T) {
	t.Run("long answer accepted on the first call", func(t *testing.T) {
		llm := &fakeCompletion{answers: []string{longAnswer("Done.")}}
		gen := NewNarrativeGenerator(llm, narrativeCfg())

		text, err := gen.GenerateReport(context.Background(), "{}", "{}")
		require.NoError(t, err)
		assert.Equal(t, longAnswer("Done."), text)
		assert.Len(t, llm.requests, 1)
		assert.Equal(t, int32(2048), llm.requests[0].MaxOutputTokens)
	})

	t.Run("short answer triggers exactly one retry with a higher limit", func(t *testing.T) {
		llm := &fakeCompletion{answers: []string{"Cut off", longAnswer("Complete.")}}
		gen := NewNarrativeGenerator(llm, narrativeCfg())

		text, err := gen.GenerateReport(context.Background(), "{}", "{}")
		require.NoError(t, err)
		assert.Equal(t, longAnswer("Complete."), text)

		require.Len(t, llm.requests, 2)
		assert.Equal(t, int32(4096), llm.requests[1].MaxOutputTokens)
		assert.Greater(t, len(llm.requests[1].User), len(llm.requests[0].User))
	})

	t.Run("second short answer accepted without a third call", func(t *testing.T) {
		llm := &fakeCompletion{answers: []string{"Cut off", "Still short"}}
		gen := NewNarrativeGenerator(llm, narrativeCfg())

		text, err := gen.GenerateReport(context.Background(), "{}", "{}")
		require.NoError(t, err)
		assert.Equal(t, "Still short", text)
		assert.Len(t, llm.requests, 2)
	})

	t.Run("markdown fences are stripped from the answer", func(t *testing.T) {
		llm := &fakeCompletion{answers: []string{"```html\n<p>" + longAnswer("Done.") + "</p>\n```"}}
		gen := NewNarrativeGenerator(llm, narrativeCfg())

		text, err := gen.GenerateReport(context.Background(), "{}", "{}")
		require.NoError(t, err)
		assert.Equal(t, "<p>"+longAnswer("Done.")+"</p>", text)
		assert.NotContains(t, text, "```")
	})

	t.Run("transport failure maps to a domain error", func(t *testing.T) {
		llm := &fakeCompletion{err: errors.New("quota exceeded")}
		gen := NewNarrativeGenerator(llm, narrativeCfg())

		_, err := gen.GenerateReport(context.Background(), "{}", "{}")
		assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	})
}

func TestGenerateListing(t *testing.T) {
	t.Run("follow-up extracted only for an explicit count", func(t *testing.T) {
		llm := &fakeCompletion{answers: []string{longAnswer("Want to see price history for these?!!!")}}
		gen := NewNarrativeGenerator(llm, narrativeCfg())

		narrative, err := gen.GenerateListing(context.Background(), "show me 2 houses in Austin", sampleListings(5), &domain.MarketContext{})
		require.NoError(t, err)
		assert.Equal(t, "Want to see price history for these?", narrative.LastTitle)
	})

	t.Run("no follow-up without an explicit count", func(t *testing.T) {
		llm := &fakeCompletion{answers: []string{longAnswer("Want to see price history for these?!!!")}}
		gen := NewNarrativeGenerator(llm, narrativeCfg())

		narrative, err := gen.GenerateListing(context.Background(), "houses in Austin", sampleListings(5), &domain.MarketContext{})
		require.NoError(t, err)
		assert.Empty(t, narrative.LastTitle)
	})

	t.Run("prompt carries only the requested number of listings", func(t *testing.T) {
		llm := &fakeCompletion{answers: []string{longAnswer("Done.")}}
		gen := NewNarrativeGenerator(llm, narrativeCfg())

		_, err := gen.GenerateListing(context.Background(), "show me 2 houses in Austin", sampleListings(5), &domain.MarketContext{})
		require.NoError(t, err)
		require.Len(t, llm.requests, 1)
		assert.Equal(t, 2, strings.Count(llm.requests[0].User, `"StreetAddress"`))
	})
}

func TestGenerateAnalysis(t *testing.T) {
	llm := &fakeCompletion{answers: []string{longAnswer("Curious about rental yields in this area?!!!")}}
	gen := NewNarrativeGenerator(llm, narrativeCfg())

	narrative, err := gen.GenerateAnalysis(context.Background(), "how is the Dallas market doing", nil, &domain.MarketContext{})
	require.NoError(t, err)
	// Для аналитического нарратива follow-up извлекается всегда
	assert.Equal(t, "Curious about rental yields in this area?", narrative.LastTitle)
}

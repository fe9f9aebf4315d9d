package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

func TestMarketAggregatorCollect(t *testing.T) {
	t.Run("all branches succeed", func(t *testing.T) {
		market := &fakeMarketData{
			saleOverview: json.RawMessage(`{"median":450000}`),
			housing:      json.RawMessage(`{"temp":"hot"}`),
			rentals:      json.RawMessage(`{"rent":2100}`),
			mortgage:     json.RawMessage(`{"rate":6.5}`),
		}
		snippets := &fakeSnippets{enabled: true, snippets: []string{"Austin prices up 4%"}}
		agg := NewMarketAggregator(market, snippets)

		result := agg.Collect(context.Background(), sampleListings(1), "houses in Austin")

		require.NotNil(t, result)
		assert.JSONEq(t, `{"median":450000}`, string(result.SaleOverview))
		assert.JSONEq(t, `{"rate":6.5}`, string(result.MortgageRate))
		assert.Equal(t, []string{"Austin prices up 4%"}, result.WebSnippets)
		assert.False(t, result.IsEmpty())
	})

	t.Run("single branch failure degrades only its field", func(t *testing.T) {
		market := &fakeMarketData{
			saleOverview: json.RawMessage(`{"median":450000}`),
			housingErr:   errors.New("upstream 500"),
			rentals:      json.RawMessage(`{"rent":2100}`),
			mortgage:     json.RawMessage(`{"rate":6.5}`),
		}
		agg := NewMarketAggregator(market, &fakeSnippets{})

		result := agg.Collect(context.Background(), sampleListings(1), "houses in Austin")

		assert.Nil(t, result.Housing)
		assert.NotNil(t, result.SaleOverview)
		assert.NotNil(t, result.Rentals)
		assert.NotNil(t, result.MortgageRate)
	})

	t.Run("no listings skips market branches", func(t *testing.T) {
		market := &fakeMarketData{saleOverview: json.RawMessage(`{}`)}
		snippets := &fakeSnippets{enabled: true, snippets: []string{"snippet"}}
		agg := NewMarketAggregator(market, snippets)

		result := agg.Collect(context.Background(), nil, "what drives home prices?")

		assert.Nil(t, result.SaleOverview)
		assert.Empty(t, market.locations)
		assert.Equal(t, []string{"snippet"}, result.WebSnippets)
	})

	t.Run("location comes from the first listing", func(t *testing.T) {
		market := &fakeMarketData{}
		agg := NewMarketAggregator(market, &fakeSnippets{})

		listings := []domain.ListingRecord{
			{StreetAddress: "9 Ocean Dr", City: "Miami", State: "FL"},
			{StreetAddress: "1 Elm St", City: "Austin", State: "TX"},
		}
		agg.Collect(context.Background(), listings, "find houses")

		// Три рыночные ветки получают "city, state", ипотечная - штат
		assert.ElementsMatch(t, []string{"Miami, FL", "Miami, FL", "Miami, FL", "FL"}, market.locations)
	})

	t.Run("city-less listing falls back to state only", func(t *testing.T) {
		market := &fakeMarketData{}
		agg := NewMarketAggregator(market, &fakeSnippets{})

		agg.Collect(context.Background(), []domain.ListingRecord{{State: "TX"}}, "find houses")

		assert.ElementsMatch(t, []string{"TX", "TX", "TX", "TX"}, market.locations)
	})

	t.Run("snippets skipped without credentials", func(t *testing.T) {
		snippets := &fakeSnippets{enabled: false, snippets: []string{"never"}}
		agg := NewMarketAggregator(&fakeMarketData{}, snippets)

		result := agg.Collect(context.Background(), sampleListings(1), "houses")

		assert.Empty(t, snippets.queries)
		assert.Nil(t, result.WebSnippets)
	})

	t.Run("total failure returns an empty aggregate, not nil", func(t *testing.T) {
		failing := errors.New("down")
		market := &fakeMarketData{saleErr: failing, housingErr: failing, rentalsErr: failing, mortgageErr: failing}
		agg := NewMarketAggregator(market, &fakeSnippets{})

		result := agg.Collect(context.Background(), sampleListings(1), "houses")

		require.NotNil(t, result)
		assert.True(t, result.IsEmpty())
	})
}

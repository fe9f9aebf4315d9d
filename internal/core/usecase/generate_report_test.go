package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

func reportCfg() ReportConfig {
	return ReportConfig{
		MaxRenderAttempts: 3,
		BackoffBase:       time.Millisecond,
		BackoffCap:        4 * time.Millisecond,
		ArtifactTTL:       10 * time.Minute,
		BaseURL:           "http://localhost:8080",
	}
}

func newReportFixture(renderer *fakeRenderer) (*GenerateReportUseCase, *fakeListings, *fakeArtifacts, *fakeCompletion) {
	llm := &fakeCompletion{answers: []string{longAnswer("A solid buy.")}}
	listings := &fakeListings{lookupData: json.RawMessage(`{"zpid":123,"price":450000}`)}
	artifacts := &fakeArtifacts{}

	uc := NewGenerateReportUseCase(
		listings,
		&fakeTaxes{data: json.RawMessage(`{"effective_rate":1.8}`)},
		NewNarrativeGenerator(llm, narrativeCfg()),
		fakeComposer{},
		renderer,
		artifacts,
		reportCfg(),
	)
	return uc, listings, artifacts, llm
}

func validReportListing() domain.ReportListing {
	return domain.ReportListing{
		StreetAddress: "123 Main St",
		City:          "Austin",
		State:         "TX",
		Zipcode:       "78701",
		Price:         450000,
	}
}

func TestGenerateReport(t *testing.T) {
	t.Run("happy path renders once", func(t *testing.T) {
		renderer := &fakeRenderer{pdf: []byte("%PDF-fake")}
		uc, _, artifacts, _ := newReportFixture(renderer)

		result, err := uc.Execute(context.Background(), validReportListing())
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, 1, renderer.calls)
		assert.Equal(t, 1, artifacts.putCalls)
		assert.Equal(t, 10*time.Minute, artifacts.lastTTL)
		assert.Equal(t, "http://localhost:8080/temp-pdfs/property-report-test-1.pdf", result.DownloadURL)
		assert.Equal(t, int64(len("%PDF-fake")), result.FileSize)

		generatedAt, err := time.Parse(time.RFC3339, result.Timestamp)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), generatedAt, time.Minute)
	})

	t.Run("recovers within the allowed attempts", func(t *testing.T) {
		renderer := &fakeRenderer{failures: 2, pdf: []byte("%PDF-fake")}
		uc, _, artifacts, _ := newReportFixture(renderer)

		result, err := uc.Execute(context.Background(), validReportListing())
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, 3, renderer.calls)
		assert.Equal(t, 1, artifacts.putCalls)
	})

	t.Run("exhausted attempts surface a typed error", func(t *testing.T) {
		renderer := &fakeRenderer{failures: 10}
		uc, _, artifacts, _ := newReportFixture(renderer)

		_, err := uc.Execute(context.Background(), validReportListing())
		require.Error(t, err)

		var exhausted *domain.RenderExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, 3, exhausted.Attempts)
		assert.ErrorIs(t, exhausted, errRenderBroken)

		// Ровно бюджет попыток, ни одной сверх него, артефакта нет
		assert.Equal(t, 3, renderer.calls)
		assert.Zero(t, artifacts.putCalls)
	})

	t.Run("incomplete address fails before any upstream call", func(t *testing.T) {
		renderer := &fakeRenderer{pdf: []byte("%PDF-fake")}
		uc, listings, _, llm := newReportFixture(renderer)

		_, err := uc.Execute(context.Background(), domain.ReportListing{City: "Austin"})
		require.ErrorIs(t, err, domain.ErrInvalidListingInput)
		assert.Contains(t, err.Error(), "streetAddress")
		assert.Contains(t, err.Error(), "state")

		assert.Zero(t, listings.lookupCalls)
		assert.Zero(t, renderer.calls)
		assert.Empty(t, llm.requests)
	})

	t.Run("lookup failure is fatal", func(t *testing.T) {
		renderer := &fakeRenderer{pdf: []byte("%PDF-fake")}
		uc, listings, _, _ := newReportFixture(renderer)
		listings.lookupErr = errors.New("address not found")

		_, err := uc.Execute(context.Background(), validReportListing())
		assert.Error(t, err)
		assert.Zero(t, renderer.calls)
	})

	t.Run("tax failure does not block the report", func(t *testing.T) {
		renderer := &fakeRenderer{pdf: []byte("%PDF-fake")}
		llm := &fakeCompletion{answers: []string{longAnswer("A solid buy.")}}
		uc := NewGenerateReportUseCase(
			&fakeListings{lookupData: json.RawMessage(`{"zpid":123}`)},
			&fakeTaxes{err: errors.New("smartasset down")},
			NewNarrativeGenerator(llm, narrativeCfg()),
			fakeComposer{},
			renderer,
			&fakeArtifacts{},
			reportCfg(),
		)

		result, err := uc.Execute(context.Background(), validReportListing())
		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("cancelled context aborts between attempts", func(t *testing.T) {
		renderer := &fakeRenderer{failures: 10}
		llm := &fakeCompletion{answers: []string{longAnswer("A solid buy.")}}
		cfg := reportCfg()
		cfg.BackoffBase = time.Minute
		uc := NewGenerateReportUseCase(
			&fakeListings{lookupData: json.RawMessage(`{"zpid":123}`)},
			&fakeTaxes{data: json.RawMessage(`{}`)},
			NewNarrativeGenerator(llm, narrativeCfg()),
			fakeComposer{},
			renderer,
			&fakeArtifacts{},
			cfg,
		)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		_, err := uc.Execute(ctx, validReportListing())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, renderer.calls)
	})
}

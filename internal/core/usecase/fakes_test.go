package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

// fakeCompletion отвечает заранее заданными строками, по одной на вызов.
// Запросы запоминаются для проверки промптов и лимитов токенов.
type fakeCompletion struct {
	answers  []string
	err      error
	requests []port.CompletionRequest
}

func (f *fakeCompletion) Complete(ctx context.Context, req port.CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	idx := len(f.requests) - 1
	if idx >= len(f.answers) {
		idx = len(f.answers) - 1
	}
	return f.answers[idx], nil
}

type fakeListings struct {
	searchResults []domain.ListingRecord
	searchErr     error
	lookupData    json.RawMessage
	lookupErr     error
	photos        []string
	photosErr     error

	searchCalls int
	lookupCalls int
}

func (f *fakeListings) SearchByQuery(ctx context.Context, spec *domain.SearchSpecification) ([]domain.ListingRecord, error) {
	f.searchCalls++
	return f.searchResults, f.searchErr
}

func (f *fakeListings) LookupByAddress(ctx context.Context, address string) (json.RawMessage, error) {
	f.lookupCalls++
	return f.lookupData, f.lookupErr
}

func (f *fakeListings) PhotosByAddress(ctx context.Context, address string) ([]string, error) {
	return f.photos, f.photosErr
}

// fakeMarketData позволяет уронить любую из веток независимо и
// запоминает локации, с которыми его вызывали. Ветки работают
// параллельно, поэтому запись идет под мьютексом.
type fakeMarketData struct {
	saleOverview json.RawMessage
	housing      json.RawMessage
	rentals      json.RawMessage
	mortgage     json.RawMessage

	saleErr     error
	housingErr  error
	rentalsErr  error
	mortgageErr error

	mu        sync.Mutex
	locations []string
}

func (f *fakeMarketData) record(location string) {
	f.mu.Lock()
	f.locations = append(f.locations, location)
	f.mu.Unlock()
}

func (f *fakeMarketData) SaleOverview(ctx context.Context, location string) (json.RawMessage, error) {
	f.record(location)
	return f.saleOverview, f.saleErr
}

func (f *fakeMarketData) HousingMarket(ctx context.Context, location string) (json.RawMessage, error) {
	f.record(location)
	return f.housing, f.housingErr
}

func (f *fakeMarketData) RentalMarket(ctx context.Context, location string) (json.RawMessage, error) {
	f.record(location)
	return f.rentals, f.rentalsErr
}

func (f *fakeMarketData) MortgageTrend(ctx context.Context, state string) (json.RawMessage, error) {
	f.record(state)
	return f.mortgage, f.mortgageErr
}

type fakeSnippets struct {
	enabled  bool
	snippets []string
	err      error
	queries  []string
}

func (f *fakeSnippets) Enabled() bool { return f.enabled }

func (f *fakeSnippets) Search(ctx context.Context, query string) ([]string, error) {
	f.queries = append(f.queries, query)
	return f.snippets, f.err
}

// fakeHistory записывает сохраненные результаты в память.
type fakeHistory struct {
	saved   []domain.AnalysisResult
	updated map[uuid.UUID]domain.AnalysisResult
	saveErr error
}

func (f *fakeHistory) Save(ctx context.Context, result domain.AnalysisResult) (*domain.HistoryRecord, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, result)
	return recordFromResult(uuid.New(), result), nil
}

func (f *fakeHistory) Update(ctx context.Context, id uuid.UUID, result domain.AnalysisResult) (*domain.HistoryRecord, error) {
	if f.updated == nil {
		f.updated = make(map[uuid.UUID]domain.AnalysisResult)
	}
	f.updated[id] = result
	return recordFromResult(id, result), nil
}

func (f *fakeHistory) GetByEmail(ctx context.Context, email string) ([]domain.HistoryRecord, error) {
	var records []domain.HistoryRecord
	for _, result := range f.saved {
		if result.Email == email {
			records = append(records, *recordFromResult(uuid.New(), result))
		}
	}
	return records, nil
}

func (f *fakeHistory) GetByID(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	if result, ok := f.updated[id]; ok {
		return recordFromResult(id, result), nil
	}
	return nil, domain.ErrHistoryNotFound
}

func recordFromResult(id uuid.UUID, result domain.AnalysisResult) *domain.HistoryRecord {
	return &domain.HistoryRecord{
		ID:          id,
		Email:       result.Email,
		Date:        time.Now(),
		Title:       result.Title,
		LastTitle:   result.LastTitle,
		Description: result.Description,
		Type:        result.Category.String(),
		Results:     result.Results,
	}
}

type fakeTaxes struct {
	data json.RawMessage
	err  error
}

func (f *fakeTaxes) PropertyTaxes(ctx context.Context, city, state string) (json.RawMessage, error) {
	return f.data, f.err
}

// fakeRenderer падает первые failures вызовов, затем отдает pdf.
type fakeRenderer struct {
	failures int
	pdf      []byte
	calls    int
}

var errRenderBroken = errors.New("renderer produced an empty document")

func (f *fakeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errRenderBroken
	}
	return f.pdf, nil
}

type fakeArtifacts struct {
	putCalls int
	lastTTL  time.Duration
	putErr   error
}

func (f *fakeArtifacts) Put(ctx context.Context, streetAddress string, data []byte, ttl time.Duration) (*domain.ReportArtifact, error) {
	f.putCalls++
	f.lastTTL = ttl
	if f.putErr != nil {
		return nil, f.putErr
	}
	now := time.Now()
	return &domain.ReportArtifact{
		FileName:  "property-report-test-1.pdf",
		Path:      "/tmp/property-report-test-1.pdf",
		Size:      int64(len(data)),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

func (f *fakeArtifacts) Resolve(fileName string) (*domain.ReportArtifact, error) {
	return nil, domain.ErrArtifactNotFound
}

type fakeComposer struct{}

func (fakeComposer) ComposeHTML(listing domain.ReportListing, narrative string, generatedAt time.Time) (string, error) {
	return "<html><body>" + narrative + "</body></html>", nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(fileName string, data []byte) (string, error) {
	return f.text, f.err
}

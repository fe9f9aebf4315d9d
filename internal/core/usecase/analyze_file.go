package usecase

import (
	"context"
	"strings"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/textparse"
)

// AnalyzeFileUseCase - анализ загруженного документа. Текст извлекается
// из файла и проходит тот же пайплайн, что и текстовый вопрос, но
// результат НЕ сохраняется в историю: он возвращается напрямую.
type AnalyzeFileUseCase struct {
	extractor  port.TextExtractorPort
	classifier *Classifier
	listings   port.ListingProviderPort
	aggregator *MarketAggregator
	narrative  *NarrativeGenerator

	defaultResultLimit int
}

func NewAnalyzeFileUseCase(
	extractor port.TextExtractorPort,
	classifier *Classifier,
	listings port.ListingProviderPort,
	aggregator *MarketAggregator,
	narrative *NarrativeGenerator,
	defaultResultLimit int,
) *AnalyzeFileUseCase {
	return &AnalyzeFileUseCase{
		extractor:          extractor,
		classifier:         classifier,
		listings:           listings,
		aggregator:         aggregator,
		narrative:          narrative,
		defaultResultLimit: defaultResultLimit,
	}
}

func (uc *AnalyzeFileUseCase) Execute(ctx context.Context, fileName string, data []byte) (*domain.AnalysisResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"usecase":   "AnalyzeFile",
		"file_name": fileName,
	})

	// 1. Извлекаем плоский текст из документа
	document, err := uc.extractor.Extract(fileName, data)
	if err != nil {
		ucLogger.Error("Failed to extract text from file", err, nil)
		return nil, err
	}
	document = strings.TrimSpace(strings.ReplaceAll(document, "\n", " "))
	ucLogger.Info("Text extracted from file", port.Fields{"text_chars": len(document)})

	// 2. Дальше документ идет по обычному пайплайну анализа
	category, err := uc.classifier.Classify(ctx, document)
	if err != nil {
		return nil, err
	}

	var foundListings []domain.ListingRecord
	spec, err := uc.classifier.ExtractSpecification(ctx, document)
	if err != nil {
		if category == domain.CategoryListing {
			return nil, err
		}
	} else {
		foundListings, _ = uc.listings.SearchByQuery(ctx, spec)
	}
	if category == domain.CategoryListing && len(foundListings) == 0 {
		return nil, domain.ErrNoListings
	}

	market := uc.aggregator.Collect(ctx, foundListings, document)

	result := &domain.AnalysisResult{
		Category: category,
		Title:    document,
	}
	switch category {
	case domain.CategoryListing:
		narrative, err := uc.narrative.GenerateListing(ctx, document, foundListings, market)
		if err != nil {
			return nil, err
		}
		limit := textparse.LimitOrDefault(document, uc.defaultResultLimit)
		result.Description = narrative.Description
		result.LastTitle = narrative.LastTitle
		result.Results = ReconcileResults(foundListings, limit)
	case domain.CategoryAnalysis:
		narrative, err := uc.narrative.GenerateAnalysis(ctx, document, foundListings, market)
		if err != nil {
			return nil, err
		}
		result.Description = narrative.Description
		result.LastTitle = narrative.LastTitle
	}

	ucLogger.Info("File analysis completed", port.Fields{"category": category.String()})
	return result, nil
}

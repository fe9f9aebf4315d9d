package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/textparse"
)

// AnalyzePropertyUseCase - главный пайплайн анализа: уточняющий вопрос,
// классификация, извлечение спецификации, поиск объектов, сбор рыночного
// контекста, генерация нарратива, согласование результатов и запись
// в историю.
type AnalyzePropertyUseCase struct {
	classifier *Classifier
	listings   port.ListingProviderPort
	aggregator *MarketAggregator
	narrative  *NarrativeGenerator
	history    port.HistoryRepositoryPort

	defaultResultLimit int
}

func NewAnalyzePropertyUseCase(
	classifier *Classifier,
	listings port.ListingProviderPort,
	aggregator *MarketAggregator,
	narrative *NarrativeGenerator,
	history port.HistoryRepositoryPort,
	defaultResultLimit int,
) *AnalyzePropertyUseCase {
	return &AnalyzePropertyUseCase{
		classifier:         classifier,
		listings:           listings,
		aggregator:         aggregator,
		narrative:          narrative,
		history:            history,
		defaultResultLimit: defaultResultLimit,
	}
}

// Execute проводит один вопрос пользователя через весь пайплайн.
// historyID непустой, когда ответ должен перезаписать существующую
// запись истории вместо создания новой.
func (uc *AnalyzePropertyUseCase) Execute(ctx context.Context, userInput, lastQuestion, historyID, email string) (*domain.AnalyzeOutcome, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"usecase": "AnalyzeProperty",
	})

	// 1. Если в прошлый раз задавался уточняющий вопрос, проверяем,
	// не ответил ли пользователь на него "да" или "нет".
	inputData := userInput
	if lastQuestion != "" {
		switch uc.classifier.CheckAffirmation(ctx, userInput) {
		case domain.AffirmationYes:
			// Пользователь согласился: анализируем сам уточняющий вопрос
			inputData = lastQuestion
		case domain.AffirmationNo:
			ucLogger.Info("User declined the follow-up question", nil)
			return &domain.AnalyzeOutcome{
				Declined:    true,
				Description: "Then ask a question again!",
			}, nil
		default:
			// Не "да" и не "нет" - обычный новый вопрос
		}
	}

	// 2. Классифицируем вопрос
	category, err := uc.classifier.Classify(ctx, inputData)
	if err != nil {
		return nil, err
	}
	ucLogger.Info("Starting analysis pipeline", port.Fields{"category": category.String()})

	// 3. Извлекаем спецификацию и ищем объекты. Для листингового
	// вопроса объекты обязательны; для аналитического их отсутствие -
	// допустимая деградация.
	var foundListings []domain.ListingRecord

	spec, err := uc.classifier.ExtractSpecification(ctx, inputData)
	if err != nil {
		if category == domain.CategoryListing {
			return nil, err
		}
		ucLogger.Warn("Specification extraction failed, continuing analysis without listings", port.Fields{"reason": err.Error()})
	} else {
		foundListings, err = uc.listings.SearchByQuery(ctx, spec)
		if err != nil {
			if category == domain.CategoryListing {
				return nil, fmt.Errorf("%w: %v", domain.ErrNoListings, err)
			}
			ucLogger.Warn("Listing search failed, continuing analysis without listings", port.Fields{"reason": err.Error()})
		}
	}
	if category == domain.CategoryListing && len(foundListings) == 0 {
		return nil, domain.ErrNoListings
	}

	// 4. Параллельно собираем рыночный контекст по локации найденных объектов
	market := uc.aggregator.Collect(ctx, foundListings, inputData)

	// 5. Генерируем нарратив и согласуем публичные результаты
	result := domain.AnalysisResult{
		Category: category,
		Title:    inputData,
		Email:    email,
	}

	switch category {
	case domain.CategoryListing:
		narrative, err := uc.narrative.GenerateListing(ctx, inputData, foundListings, market)
		if err != nil {
			return nil, err
		}
		limit := textparse.LimitOrDefault(inputData, uc.defaultResultLimit)
		result.Description = narrative.Description
		result.LastTitle = narrative.LastTitle
		result.Results = ReconcileResults(foundListings, limit)
	case domain.CategoryAnalysis:
		narrative, err := uc.narrative.GenerateAnalysis(ctx, inputData, foundListings, market)
		if err != nil {
			return nil, err
		}
		result.Description = narrative.Description
		result.LastTitle = narrative.LastTitle
	}

	// 6. Сохраняем результат: новая запись либо перезапись существующей
	store, err := uc.persist(ctx, historyID, result)
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Analysis pipeline completed", port.Fields{
		"category":      category.String(),
		"results_count": len(result.Results),
	})
	return &domain.AnalyzeOutcome{Store: store}, nil
}

func (uc *AnalyzePropertyUseCase) persist(ctx context.Context, historyID string, result domain.AnalysisResult) (*domain.StoreResult, error) {
	if historyID == "" {
		record, err := uc.history.Save(ctx, result)
		if err != nil {
			return nil, err
		}
		return &domain.StoreResult{
			Status:  true,
			Message: "Saved the data successfully!",
			Data:    []domain.HistoryRecord{*record},
		}, nil
	}

	id, err := uuid.Parse(historyID)
	if err != nil {
		return nil, fmt.Errorf("invalid history id: %w", err)
	}
	record, err := uc.history.Update(ctx, id, result)
	if err != nil {
		return nil, err
	}
	return &domain.StoreResult{
		Status:  true,
		Message: "Updated the data successfully!",
		Data:    []domain.HistoryRecord{*record},
	}, nil
}

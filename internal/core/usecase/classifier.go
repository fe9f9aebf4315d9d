package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/contracts"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/textparse"
)

// Classifier - граница между свободным текстом пользователя и закрытыми
// доменными типами. Все сырые ответы модели декодируются здесь и только
// здесь; дальше по пайплайну строки от LLM не гуляют.
type Classifier struct {
	llm port.CompletionPort
}

func NewClassifier(llm port.CompletionPort) *Classifier {
	return &Classifier{llm: llm}
}

// CheckAffirmation определяет, является ли ввод ответом "да/нет" на
// уточняющий вопрос. Отказ транспорта не валит пайплайн: ввод
// трактуется как новый независимый вопрос.
func (c *Classifier) CheckAffirmation(ctx context.Context, userInput string) domain.Affirmation {
	logger := contextkeys.LoggerFromContext(ctx)

	answer, err := c.llm.Complete(ctx, port.CompletionRequest{
		User:        buildAffirmationPrompt(userInput),
		Temperature: 0,
	})
	if err != nil {
		logger.Warn("Affirmation check failed, treating input as a new question", port.Fields{"reason": err.Error()})
		return domain.AffirmationUnknown
	}

	return domain.ParseAffirmation(answer)
}

// Classify относит вопрос к листинговому поиску или рыночному анализу.
// Неопознанная категория - доменная ошибка, а не третья ветка.
func (c *Classifier) Classify(ctx context.Context, userInput string) (domain.Category, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	answer, err := c.llm.Complete(ctx, port.CompletionRequest{
		System:      classifyPrompt,
		User:        userInput,
		Temperature: 0,
	})
	if err != nil {
		logger.Error("Failed to classify question", err, nil)
		return domain.CategoryUnknown, domain.ErrUnknownCategory
	}

	category := domain.ParseCategory(answer)
	if category == domain.CategoryUnknown {
		logger.Warn("Model returned an unrecognized category", port.Fields{"answer": answer})
		return domain.CategoryUnknown, domain.ErrUnknownCategory
	}

	logger.Debug("Question classified", port.Fields{"category": category.String()})
	return category, nil
}

// ExtractSpecification переводит свободный текст в структурированную
// спецификацию поиска. Ответ модели очищается от кодовых оград,
// проверяется по JSON-схеме и только после этого десериализуется.
func (c *Classifier) ExtractSpecification(ctx context.Context, userInput string) (*domain.SearchSpecification, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	answer, err := c.llm.Complete(ctx, port.CompletionRequest{
		System:      extractSpecPrompt,
		User:        userInput,
		Temperature: 0,
	})
	if err != nil {
		logger.Error("Failed to extract search specification", err, nil)
		return nil, domain.ErrExtractionFailed
	}

	cleaned := textparse.StripCodeFences(answer)

	// Схема валидируется по generic-представлению: так ловятся поля
	// неверных типов, которые json.Unmarshal в строгую структуру
	// просто бы отбросил с малопонятной ошибкой.
	var generic interface{}
	if err := json.Unmarshal([]byte(cleaned), &generic); err != nil {
		logger.Error("Model returned non-JSON specification", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	if err := contracts.ValidateSearchQueryState(generic); err != nil {
		logger.Error("Extracted specification failed schema validation", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	var spec domain.SearchSpecification
	if err := json.Unmarshal([]byte(cleaned), &spec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	logger.Debug("Search specification extracted", port.Fields{
		"city":  spec.City,
		"state": spec.State,
	})
	return &spec, nil
}

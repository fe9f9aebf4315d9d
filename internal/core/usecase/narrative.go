package usecase

import (
	"context"
	"encoding/json"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/textparse"
)

// NarrativeConfig - параметры генерации текстового анализа.
type NarrativeConfig struct {
	// MaxOutputTokens - потолок первой генерации.
	MaxOutputTokens int32
	// RetryMaxOutputTokens - увеличенный потолок единственного повтора.
	RetryMaxOutputTokens int32
	// TruncationThreshold - ответ короче этого числа символов считается
	// оборванным и генерируется повторно.
	TruncationThreshold int
	// DefaultResultLimit подставляется в правило лимита внутри промпта.
	DefaultResultLimit int
}

// NarrativeGenerator строит текстовый анализ по собранным данным.
// Подозрение на обрыв лечится РОВНО ОДНОЙ повторной генерацией с
// повышенным потолком токенов; второй короткий ответ принимается как есть.
type NarrativeGenerator struct {
	llm port.CompletionPort
	cfg NarrativeConfig
}

func NewNarrativeGenerator(llm port.CompletionPort, cfg NarrativeConfig) *NarrativeGenerator {
	return &NarrativeGenerator{llm: llm, cfg: cfg}
}

// Narrative - итог генерации: полный текст и извлеченный из его хвоста
// follow-up вопрос.
type Narrative struct {
	Description string
	LastTitle   string
}

// GenerateListing строит листинговый нарратив по выбранным объектам.
// Follow-up извлекается только когда пользователь явно назвал количество.
func (g *NarrativeGenerator) GenerateListing(ctx context.Context, userInput string, listings []domain.ListingRecord, market *domain.MarketContext) (*Narrative, error) {
	limit := textparse.LimitOrDefault(userInput, g.cfg.DefaultResultLimit)
	if limit > len(listings) {
		limit = len(listings)
	}

	propertyJSON, err := json.Marshal(listings[:limit])
	if err != nil {
		return nil, err
	}
	marketJSON, err := json.Marshal(market)
	if err != nil {
		return nil, err
	}

	prompt := buildListingNarrativePrompt(userInput, string(propertyJSON), string(marketJSON), g.cfg.DefaultResultLimit)
	description, err := g.generateWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var lastTitle string
	if _, explicit := textparse.ExplicitLimit(userInput); explicit {
		lastTitle = textparse.TrailingTitle(description)
	}

	return &Narrative{Description: description, LastTitle: lastTitle}, nil
}

// GenerateAnalysis строит макро-аналитический нарратив.
// Follow-up извлекается всегда.
func (g *NarrativeGenerator) GenerateAnalysis(ctx context.Context, userInput string, listings []domain.ListingRecord, market *domain.MarketContext) (*Narrative, error) {
	propertyJSON, err := json.Marshal(listings)
	if err != nil {
		return nil, err
	}
	marketJSON, err := json.Marshal(market)
	if err != nil {
		return nil, err
	}

	prompt := buildAnalysisNarrativePrompt(userInput, string(propertyJSON), string(marketJSON))
	description, err := g.generateWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &Narrative{
		Description: description,
		LastTitle:   textparse.TrailingTitle(description),
	}, nil
}

// GenerateReport строит нарратив печатного отчета по одному объекту.
// Правило обрыва и здесь то же: один повтор с повышенным потолком.
func (g *NarrativeGenerator) GenerateReport(ctx context.Context, propertyJSON, taxJSON string) (string, error) {
	prompt := buildReportNarrativePrompt(propertyJSON, taxJSON)
	return g.generateWithRetry(ctx, prompt)
}

func (g *NarrativeGenerator) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	description, err := g.llm.Complete(ctx, port.CompletionRequest{
		User:            prompt,
		Temperature:     0.3,
		MaxOutputTokens: g.cfg.MaxOutputTokens,
	})
	if err != nil {
		return "", domain.ErrGenerationFailed
	}

	if len(description) < g.cfg.TruncationThreshold {
		logger.Warn("Narrative appears truncated, regenerating with a higher token limit", port.Fields{
			"length":    len(description),
			"threshold": g.cfg.TruncationThreshold,
		})

		retried, err := g.llm.Complete(ctx, port.CompletionRequest{
			User:            prompt + truncationRetrySuffix,
			Temperature:     0.3,
			MaxOutputTokens: g.cfg.RetryMaxOutputTokens,
		})
		if err != nil {
			return "", domain.ErrGenerationFailed
		}
		// Результат повтора принимается без дальнейших проверок
		description = retried
	}

	// Модель иногда оборачивает ответ в markdown-блок вопреки промпту,
	// поэтому маркеры срезаются постобработкой.
	return textparse.StripCodeFences(description), nil
}

package usecase

import (
	"context"
	"sync"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

// MarketAggregator собирает рыночный контекст из независимых источников.
// Ветки выполняются параллельно; отказ любой из них деградирует
// только свое поле агрегата и никогда не валит сбор целиком.
type MarketAggregator struct {
	market   port.MarketDataPort
	snippets port.SnippetSearchPort
}

func NewMarketAggregator(market port.MarketDataPort, snippets port.SnippetSearchPort) *MarketAggregator {
	return &MarketAggregator{
		market:   market,
		snippets: snippets,
	}
}

// Collect запускает пять веток: сводка продаж, рынок жилья, рынок
// аренды, тренд ипотеки и веб-сниппеты. Локация берется из первого
// найденного объекта ("city, state", либо только штат); без объектов
// рыночные ветки пропускаются.
func (a *MarketAggregator) Collect(ctx context.Context, listings []domain.ListingRecord, userInput string) *domain.MarketContext {
	logger := contextkeys.LoggerFromContext(ctx)
	aggLogger := logger.WithFields(port.Fields{
		"component": "MarketAggregator",
		"method":    "Collect",
	})

	var city, state string
	if len(listings) > 0 {
		city, state = listings[0].City, listings[0].State
	}
	location := state
	if city != "" {
		location = city + ", " + state
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	result := &domain.MarketContext{}

	// branch запускает одну ветку: результат пишется под мьютексом,
	// ошибка логируется и глотается.
	branch := func(name string, fetch func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(ctx); err != nil {
				aggLogger.Warn("Market context branch failed", port.Fields{
					"branch": name,
					"reason": err.Error(),
				})
			}
		}()
	}

	if state != "" {
		branch("sale_overview", func(ctx context.Context) error {
			data, err := a.market.SaleOverview(ctx, location)
			if err != nil {
				return err
			}
			mu.Lock()
			result.SaleOverview = data
			mu.Unlock()
			return nil
		})

		branch("housing_market", func(ctx context.Context) error {
			data, err := a.market.HousingMarket(ctx, location)
			if err != nil {
				return err
			}
			mu.Lock()
			result.Housing = data
			mu.Unlock()
			return nil
		})

		branch("rental_market", func(ctx context.Context) error {
			data, err := a.market.RentalMarket(ctx, location)
			if err != nil {
				return err
			}
			mu.Lock()
			result.Rentals = data
			mu.Unlock()
			return nil
		})

		branch("mortgage_trend", func(ctx context.Context) error {
			data, err := a.market.MortgageTrend(ctx, state)
			if err != nil {
				return err
			}
			mu.Lock()
			result.MortgageRate = data
			mu.Unlock()
			return nil
		})
	}

	// Ветка сниппетов не зависит от штата, но требует настроенного
	// провайдера: без учетных данных пропускается молча.
	if a.snippets != nil && a.snippets.Enabled() {
		branch("web_snippets", func(ctx context.Context) error {
			snippets, err := a.snippets.Search(ctx, userInput)
			if err != nil {
				return err
			}
			mu.Lock()
			result.WebSnippets = snippets
			mu.Unlock()
			return nil
		})
	}

	wg.Wait()

	if result.IsEmpty() {
		aggLogger.Warn("All market context branches failed or were skipped", nil)
	}
	return result
}

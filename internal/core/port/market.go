package port

import (
	"context"
	"encoding/json"
)

// MarketDataPort - четыре независимых источника рыночных данных.
// Каждый метод самодостаточен: ошибка одной ветки не влияет на остальные,
// агрегатор собирает то, что удалось получить.
type MarketDataPort interface {
	// SaleOverview - сводка рынка продаж по локации ("city, state" или штат).
	SaleOverview(ctx context.Context, location string) (json.RawMessage, error)

	// HousingMarket - показатели рынка жилья по локации.
	HousingMarket(ctx context.Context, location string) (json.RawMessage, error)

	// RentalMarket - показатели рынка аренды по локации.
	RentalMarket(ctx context.Context, location string) (json.RawMessage, error)

	// MortgageTrend - тренд ипотечных ставок по штату.
	MortgageTrend(ctx context.Context, state string) (json.RawMessage, error)
}

// SnippetSearchPort - веб-поиск коротких фрагментов для обогащения контекста.
// Провайдер опционален: при отсутствии учётных данных Enabled возвращает false
// и ветка пропускается без ошибки.
type SnippetSearchPort interface {
	Enabled() bool
	Search(ctx context.Context, query string) ([]string, error)
}

// TaxDataPort - данные о налогах на недвижимость для страницы отчёта.
type TaxDataPort interface {
	PropertyTaxes(ctx context.Context, city, state string) (json.RawMessage, error)
}

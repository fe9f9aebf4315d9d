package port

import (
	"context"
	"encoding/json"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

// ListingProviderPort - поиск объявлений через внешний Zillow-провайдер.
type ListingProviderPort interface {
	// SearchByQuery выполняет поиск объявлений по структурированной
	// спецификации. Порядок результата сохраняется как в ответе провайдера.
	SearchByQuery(ctx context.Context, spec *domain.SearchSpecification) ([]domain.ListingRecord, error)

	// LookupByAddress возвращает "сырое" описание объекта по полному адресу
	// (для страницы отчёта - поля, цены, характеристики).
	LookupByAddress(ctx context.Context, address string) (json.RawMessage, error)

	// PhotosByAddress возвращает URL фотографий объекта по полному адресу.
	PhotosByAddress(ctx context.Context, address string) ([]string, error)
}

package usecase

import (
	"context"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

// GetHomeDetailsUseCase возвращает детали объекта по адресу:
// сырой ответ провайдера и прямые ссылки на фотографии.
type GetHomeDetailsUseCase struct {
	listings port.ListingProviderPort
}

func NewGetHomeDetailsUseCase(listings port.ListingProviderPort) *GetHomeDetailsUseCase {
	return &GetHomeDetailsUseCase{listings: listings}
}

func (uc *GetHomeDetailsUseCase) Execute(ctx context.Context, address string) (*domain.HomeDetails, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	details, err := uc.listings.LookupByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	photos, err := uc.listings.PhotosByAddress(ctx, address)
	if err != nil {
		// Детали уже есть: отсутствие фотографий не срывает ответ
		logger.Warn("Failed to fetch property photos", port.Fields{"reason": err.Error()})
		photos = nil
	}

	return &domain.HomeDetails{
		Details: details,
		Photos:  photos,
	}, nil
}

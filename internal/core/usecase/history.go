package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

// GetHistoriesUseCase возвращает список записей истории пользователя.
type GetHistoriesUseCase struct {
	history port.HistoryRepositoryPort
}

func NewGetHistoriesUseCase(history port.HistoryRepositoryPort) *GetHistoriesUseCase {
	return &GetHistoriesUseCase{history: history}
}

func (uc *GetHistoriesUseCase) Execute(ctx context.Context, email string) ([]domain.HistoryRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	records, err := uc.history.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	logger.Debug("History records fetched", port.Fields{"email": email, "records_count": len(records)})
	return records, nil
}

// GetHistoryUseCase возвращает одну запись истории со всеми полями.
type GetHistoryUseCase struct {
	history port.HistoryRepositoryPort
}

func NewGetHistoryUseCase(history port.HistoryRepositoryPort) *GetHistoryUseCase {
	return &GetHistoryUseCase{history: history}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error) {
	return uc.history.GetByID(ctx, id)
}

package usecases_port

import (
	"context"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

type GetHistoriesUseCase interface {
	Execute(ctx context.Context, email string) ([]domain.HistoryRecord, error)
}

package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

type GetHistoryUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error)
}

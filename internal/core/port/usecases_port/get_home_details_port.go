package usecases_port

import (
	"context"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

type GetHomeDetailsUseCase interface {
	Execute(ctx context.Context, address string) (*domain.HomeDetails, error)
}

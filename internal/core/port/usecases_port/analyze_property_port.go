package usecases_port

import (
	"context"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

type AnalyzePropertyUseCase interface {
	Execute(ctx context.Context, userInput, lastQuestion, historyID, email string) (*domain.AnalyzeOutcome, error)
}

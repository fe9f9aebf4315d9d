package usecases_port

import (
	"context"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

type AnalyzeFileUseCase interface {
	Execute(ctx context.Context, fileName string, data []byte) (*domain.AnalysisResult, error)
}

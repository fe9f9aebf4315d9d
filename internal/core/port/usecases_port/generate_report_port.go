package usecases_port

import (
	"context"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

type GenerateReportUseCase interface {
	Execute(ctx context.Context, listing domain.ReportListing) (*domain.ReportResult, error)
}

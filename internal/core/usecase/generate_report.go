package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

// ReportConfig - параметры генерации отчета: границы повторов рендера
// и время жизни готового файла.
type ReportConfig struct {
	MaxRenderAttempts int
	BackoffBase       time.Duration
	BackoffCap        time.Duration
	ArtifactTTL       time.Duration
	// BaseURL - внешний адрес сервиса для построения ссылки скачивания.
	BaseURL string
}

// GenerateReportUseCase - пайплайн печатного отчета: валидация входа,
// авторитетный поиск объекта по адресу, налоговые данные, нарратив,
// рендер в PDF с ограниченными повторами и регистрация артефакта с TTL.
type GenerateReportUseCase struct {
	listings  port.ListingProviderPort
	taxes     port.TaxDataPort
	narrative *NarrativeGenerator
	composer  port.ReportComposerPort
	renderer  port.DocumentRendererPort
	artifacts port.ArtifactStorePort
	cfg       ReportConfig
}

func NewGenerateReportUseCase(
	listings port.ListingProviderPort,
	taxes port.TaxDataPort,
	narrative *NarrativeGenerator,
	composer port.ReportComposerPort,
	renderer port.DocumentRendererPort,
	artifacts port.ArtifactStorePort,
	cfg ReportConfig,
) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		listings:  listings,
		taxes:     taxes,
		narrative: narrative,
		composer:  composer,
		renderer:  renderer,
		artifacts: artifacts,
		cfg:       cfg,
	}
}

func (uc *GenerateReportUseCase) Execute(ctx context.Context, listing domain.ReportListing) (*domain.ReportResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"usecase": "GenerateReport",
		"address": listing.StreetAddress,
	})

	// 1. Без полного адреса рендер не запускается вовсе
	if missing := listing.Validate(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidListingInput, strings.Join(missing, ", "))
	}

	// 2. Авторитетные данные объекта по полному адресу
	propertyData, err := uc.listings.LookupByAddress(ctx, listing.FullAddress())
	if err != nil {
		ucLogger.Error("Failed to look up property by address", err, nil)
		return nil, err
	}

	// 3. Налоговые данные. Их отсутствие не срывает отчет:
	// нарратив честно отметит пробел в данных.
	taxJSON := "{}"
	taxData, err := uc.taxes.PropertyTaxes(ctx, listing.City, listing.State)
	if err != nil {
		ucLogger.Warn("Failed to fetch property tax data, report will omit it", port.Fields{"reason": err.Error()})
	} else {
		taxJSON = string(taxData)
	}

	// 4. Нарратив отчета
	narrative, err := uc.narrative.GenerateReport(ctx, string(propertyData), taxJSON)
	if err != nil {
		ucLogger.Error("Failed to generate report narrative", err, nil)
		return nil, err
	}

	// 5. Печатный документ
	html, err := uc.composer.ComposeHTML(listing, narrative, time.Now())
	if err != nil {
		return nil, err
	}

	// 6. Рендер с ограниченными повторами
	pdfData, err := uc.renderWithRetries(ctx, html, ucLogger)
	if err != nil {
		return nil, err
	}

	// 7. Регистрируем артефакт: файл живет ровно ArtifactTTL
	artifact, err := uc.artifacts.Put(ctx, listing.StreetAddress, pdfData, uc.cfg.ArtifactTTL)
	if err != nil {
		ucLogger.Error("Failed to store report artifact", err, nil)
		return nil, err
	}

	ucLogger.Info("Report generated", port.Fields{
		"file_name":  artifact.FileName,
		"size_bytes": artifact.Size,
	})
	return &domain.ReportResult{
		Success:     true,
		Message:     "Report generated successfully",
		DownloadURL: fmt.Sprintf("%s/temp-pdfs/%s", uc.cfg.BaseURL, artifact.FileName),
		FileName:    artifact.FileName,
		FileSize:    artifact.Size,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// renderWithRetries выполняет до MaxRenderAttempts попыток рендера.
// Между попытками задержка удваивается от BackoffBase до BackoffCap.
// Каждая попытка изолирована: ресурсы браузера не переживают отказ.
func (uc *GenerateReportUseCase) renderWithRetries(ctx context.Context, html string, logger port.LoggerPort) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= uc.cfg.MaxRenderAttempts; attempt++ {
		logger.Info("Attempting PDF generation", port.Fields{
			"attempt":      attempt,
			"max_attempts": uc.cfg.MaxRenderAttempts,
		})

		pdfData, err := uc.renderer.RenderPDF(ctx, html)
		if err == nil {
			return pdfData, nil
		}
		lastErr = err
		logger.Warn("PDF generation attempt failed", port.Fields{
			"attempt": attempt,
			"reason":  err.Error(),
		})

		if attempt == uc.cfg.MaxRenderAttempts {
			break
		}

		delay := uc.cfg.BackoffBase << (attempt - 1)
		if delay > uc.cfg.BackoffCap {
			delay = uc.cfg.BackoffCap
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, &domain.RenderExhaustedError{
		Attempts: uc.cfg.MaxRenderAttempts,
		Cause:    lastErr,
	}
}

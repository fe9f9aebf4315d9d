package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port/usecases_port"
)

// ReportHandler обслуживает генерацию и выдачу PDF-отчетов.
type ReportHandler struct {
	generateReportUC usecases_port.GenerateReportUseCase
	artifacts        port.ArtifactStorePort
}

func NewReportHandler(generateReportUC usecases_port.GenerateReportUseCase, artifacts port.ArtifactStorePort) *ReportHandler {
	return &ReportHandler{
		generateReportUC: generateReportUC,
		artifacts:        artifacts,
	}
}

// GetReport обрабатывает POST /api/v1/simpai/get-report
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	// --- Шаг 1: Декодируем тело запроса ---
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing data provided")
		return
	}

	// --- Шаг 2: Запускаем пайплайн отчета ---
	result, err := h.generateReportUC.Execute(r.Context(), req.Listing)
	if err != nil {
		// Неполный адрес: рендер даже не запускался
		if errors.Is(err, domain.ErrInvalidListingInput) {
			WriteJSONError(w, http.StatusBadRequest, "Missing required listing information (streetAddress, city, state)")
			return
		}

		var exhausted *domain.RenderExhaustedError
		if errors.As(err, &exhausted) {
			logger.Error("PDF generation exhausted all attempts", err, port.Fields{"attempts": exhausted.Attempts})
			WriteReportError(w, http.StatusInternalServerError, "Failed to generate report", exhausted.Error())
			return
		}

		logger.Error("Failed to generate report", err, nil)
		WriteReportError(w, http.StatusInternalServerError, "Failed to generate report", err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, result)
}

// DownloadReport обрабатывает GET /api/v1/simpai/download-report?fileName=...
func (h *ReportHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	if fileName == "" {
		WriteJSONError(w, http.StatusBadRequest, "fileName is required")
		return
	}
	h.serveArtifact(w, r, fileName, true)
}

// ServeArtifact обрабатывает GET /temp-pdfs/{fileName}
func (h *ReportHandler) ServeArtifact(w http.ResponseWriter, r *http.Request) {
	h.serveArtifact(w, r, chi.URLParam(r, "fileName"), false)
}

// serveArtifact выдает живой артефакт. Истекший или неизвестный файл
// неотличимы: оба дают 404.
func (h *ReportHandler) serveArtifact(w http.ResponseWriter, r *http.Request, fileName string, asAttachment bool) {
	artifact, err := h.artifacts.Resolve(fileName)
	if err != nil {
		WriteJSONError(w, http.StatusNotFound, "Report not found or expired")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	if asAttachment {
		w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.FileName+`"`)
	}
	http.ServeFile(w, r, artifact.Path)
}

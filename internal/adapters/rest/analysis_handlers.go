package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port/usecases_port"
)

// Загружаемые документы больше этого размера отклоняются.
const maxUploadBytes = 20 << 20

// AnalysisHandler обслуживает пайплайн анализа и историю.
type AnalysisHandler struct {
	analyzePropertyUC usecases_port.AnalyzePropertyUseCase
	analyzeFileUC     usecases_port.AnalyzeFileUseCase
	getHistoriesUC    usecases_port.GetHistoriesUseCase
	getHistoryUC      usecases_port.GetHistoryUseCase
	getHomeDetailsUC  usecases_port.GetHomeDetailsUseCase
}

func NewAnalysisHandler(
	analyzePropertyUC usecases_port.AnalyzePropertyUseCase,
	analyzeFileUC usecases_port.AnalyzeFileUseCase,
	getHistoriesUC usecases_port.GetHistoriesUseCase,
	getHistoryUC usecases_port.GetHistoryUseCase,
	getHomeDetailsUC usecases_port.GetHomeDetailsUseCase,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyzePropertyUC: analyzePropertyUC,
		analyzeFileUC:     analyzeFileUC,
		getHistoriesUC:    getHistoriesUC,
		getHistoryUC:      getHistoryUC,
		getHomeDetailsUC:  getHomeDetailsUC,
	}
}

// AnalyzeProperty обрабатывает POST /api/v1/simpai/analyze-property
func (h *AnalysisHandler) AnalyzeProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	// --- Шаг 1: Декодируем тело запроса ---
	var req analyzePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserInput == "" {
		WriteJSONError(w, http.StatusBadRequest, "userInput is required")
		return
	}

	// --- Шаг 2: Запускаем пайплайн анализа ---
	outcome, err := h.analyzePropertyUC.Execute(r.Context(), req.UserInput, req.LastQuestion, req.ID, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCategory) {
			WriteJSONError(w, http.StatusBadRequest, "Invalid question type")
			return
		}
		logger.Error("Failed to analyze property", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to analyze property")
		return
	}

	// --- Шаг 3: Отдаем результат ---
	if outcome.Declined {
		RespondWithJSON(w, http.StatusOK, noMessageResponse{
			Description: outcome.Description,
			Type:        "noMessage",
		})
		return
	}
	RespondWithJSON(w, http.StatusOK, outcome.Store)
}

// AnalyzeFile обрабатывает POST /api/v1/simpai/analyze-file
func (h *AnalysisHandler) AnalyzeFile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	// --- Шаг 1: Читаем файл из multipart-формы ---
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	// --- Шаг 2: Анализируем содержимое документа ---
	result, err := h.analyzeFileUC.Execute(r.Context(), header.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedFileType):
			WriteJSONError(w, http.StatusBadRequest, "Unsupported file type")
		case errors.Is(err, domain.ErrUnknownCategory):
			WriteJSONError(w, http.StatusBadRequest, "Invalid question type")
		default:
			logger.Error("Failed to analyze file", err, port.Fields{"file_name": header.Filename})
			WriteJSONError(w, http.StatusInternalServerError, "Failed to analyze file")
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"type":        result.Category.String(),
		"description": result.Description,
		"title":       result.Title,
		"lastTitle":   result.LastTitle,
		"results":     result.Results,
	})
}

// GetHistories обрабатывает GET /api/v1/simpai/gethistories?email=...
func (h *AnalysisHandler) GetHistories(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	email := r.URL.Query().Get("email")
	if email == "" {
		WriteJSONError(w, http.StatusBadRequest, "email is required")
		return
	}

	records, err := h.getHistoriesUC.Execute(r.Context(), email)
	if err != nil {
		logger.Error("Failed to get histories", err, nil)
		RespondWithJSON(w, http.StatusOK, domain.StoreResult{Status: false, Message: err.Error()})
		return
	}

	RespondWithJSON(w, http.StatusOK, domain.StoreResult{
		Status:  true,
		Message: "Got all history successfully!",
		Data:    records,
	})
}

// GetHistory обрабатывает GET /api/v1/simpai/gethistory?id=...
func (h *AnalysisHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid history id")
		return
	}

	record, err := h.getHistoryUC.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrHistoryNotFound) {
			WriteJSONError(w, http.StatusNotFound, "History record not found")
			return
		}
		logger.Error("Failed to get history record", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Get a history error!")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Got a history successfully",
		"data":    []domain.HistoryRecord{*record},
	})
}

// GetHomeDetails обрабатывает GET /api/v1/simpai/get-homeDetails?address=...
func (h *AnalysisHandler) GetHomeDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	address := r.URL.Query().Get("address")
	if address == "" {
		WriteJSONError(w, http.StatusBadRequest, "address is required")
		return
	}

	details, err := h.getHomeDetailsUC.Execute(r.Context(), address)
	if err != nil {
		logger.Error("Failed to get home details", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Get home details error!")
		return
	}

	RespondWithJSON(w, http.StatusOK, details)
}

package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// WriteReportError отправляет расширенный ответ об ошибке отчета:
// помимо текста - детали, метка времени и идентификатор запроса.
func WriteReportError(w http.ResponseWriter, statusCode int, message, details string) {
	RespondWithJSON(w, statusCode, map[string]string{
		"error":     message,
		"details":   details,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"requestId": strconv.FormatInt(time.Now().UnixMilli(), 10),
	})
}

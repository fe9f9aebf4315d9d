package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisResult - единица результата пайплайна анализа.
// Именно она сохраняется в историю и возвращается клиенту.
type AnalysisResult struct {
	Category    Category
	Description string
	// Title - исходный текст запроса пользователя
	Title string
	// LastTitle - извлеченный из конца ответа follow-up вопрос
	LastTitle string
	Email     string
	// Results заполняется только для Category == CategoryListing,
	// порядок совпадает с порядком провайдера.
	Results []PublicListing
}

// StoreResult - результат записи в историю в том виде, в каком
// он уходит клиенту: флаг успеха, сообщение и свежие записи.
type StoreResult struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    []HistoryRecord `json:"data,omitempty"`
}

// AnalyzeOutcome - итог пайплайна анализа. Declined означает, что
// пользователь отрицательно ответил на уточняющий вопрос и новый
// анализ не выполнялся.
type AnalyzeOutcome struct {
	Declined    bool
	Description string
	Store       *StoreResult
}

// HistoryRecord - сохраненный AnalysisResult с идентификатором и датой.
type HistoryRecord struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	Date        time.Time       `json:"date"`
	Title       string          `json:"title"`
	LastTitle   string          `json:"lasttitle"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Results     []PublicListing `json:"results,omitempty"`
}

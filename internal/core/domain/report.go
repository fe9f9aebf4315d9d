package domain

import (
	"encoding/json"
	"time"
)

// ReportListing - входные данные запроса отчета. Обязательны только
// streetAddress, city и state; остальное опционально.
type ReportListing struct {
	StreetAddress string  `json:"streetAddress"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Zipcode       string  `json:"zipcode"`
	Price         float64 `json:"price"`
	Bedrooms      float64 `json:"bedrooms"`
	Bathrooms     float64 `json:"bathrooms"`
	LivingArea    float64 `json:"livingArea"`
}

// Validate проверяет обязательные адресные поля и возвращает список
// отсутствующих. Без полного адреса рендер не запускается вовсе.
func (r ReportListing) Validate() []string {
	var missing []string
	if r.StreetAddress == "" {
		missing = append(missing, "streetAddress")
	}
	if r.City == "" {
		missing = append(missing, "city")
	}
	if r.State == "" {
		missing = append(missing, "state")
	}
	return missing
}

// FullAddress - адресная строка для авторитетного поиска объекта.
func (r ReportListing) FullAddress() string {
	return r.StreetAddress + " " + r.City + " " + r.State + " " + r.Zipcode
}

// ReportResult - успешный ответ на запрос генерации отчета.
type ReportResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	DownloadURL string `json:"downloadUrl"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	Timestamp   string `json:"timestamp"`
}

// HomeDetails - детали объекта для страницы просмотра: сырой ответ
// провайдера плюс прямые URL фотографий.
type HomeDetails struct {
	Details json.RawMessage `json:"details"`
	Photos  []string        `json:"photos"`
}

// ReportArtifact - сгенерированный документ с ограниченным временем жизни.
// Жизненным циклом артефакта (создание, выдача, удаление по истечении)
// владеет исключительно реестр артефактов.
type ReportArtifact struct {
	FileName  string
	Path      string
	Size      int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

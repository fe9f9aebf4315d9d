package usecase

import "github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"

// ReconcileResults строит публичный список результатов к нарративу:
// первые limit записей в исходном порядке провайдера, спроецированные
// в публичный вид. Порядок обязан совпадать с нумерацией в тексте
// анализа. Список никогда не дополняется до лимита: если объектов
// меньше, возвращаются все имеющиеся.
func ReconcileResults(listings []domain.ListingRecord, limit int) []domain.PublicListing {
	if limit < 0 {
		limit = 0
	}
	if limit > len(listings) {
		limit = len(listings)
	}

	results := make([]domain.PublicListing, limit)
	for i := 0; i < limit; i++ {
		results[i] = listings[i].ToPublic()
	}
	return results
}

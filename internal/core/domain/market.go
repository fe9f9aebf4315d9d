package domain

import "encoding/json"

// MarketContext - агрегат рыночных данных для одного запроса.
// Каждое поле независимо может быть nil, если соответствующий
// источник упал или пропущен; весь агрегат целиком nil не бывает -
// частичные отказы представляются по-полевого, а не отказом агрегации.
//
// Данные храним сырыми (json.RawMessage): их единственный потребитель -
// промпт генератора, которому нужен исходный JSON провайдера.
type MarketContext struct {
	SaleOverview json.RawMessage `json:"marketData,omitempty"`
	Housing      json.RawMessage `json:"housingMarket,omitempty"`
	Rentals      json.RawMessage `json:"housingMarketRentals,omitempty"`
	MortgageRate json.RawMessage `json:"marketTrend,omitempty"`
	WebSnippets  []string        `json:"googleData,omitempty"`
}

// IsEmpty сообщает, что не удалось получить ни одного источника.
func (m MarketContext) IsEmpty() bool {
	return m.SaleOverview == nil && m.Housing == nil && m.Rentals == nil &&
		m.MortgageRate == nil && len(m.WebSnippets) == 0
}

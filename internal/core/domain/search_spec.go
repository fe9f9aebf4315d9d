package domain

// SearchSpecification - структурированный фильтр поиска, который LLM
// извлекает из свободного текста. Форма фиксирована (совместима с
// searchQueryState Zillow), но все поля опциональны: фильтр, который
// пользователь не называл явно, должен ОТСУТСТВОВАТЬ, а не получать
// значение по умолчанию, иначе поиск окажется пережат.
type SearchSpecification struct {
	City            string           `json:"city,omitempty"`
	State           string           `json:"state,omitempty"`
	UsersSearchTerm string           `json:"usersSearchTerm,omitempty"`
	MapBounds       *MapBounds       `json:"mapBounds,omitempty"`
	FilterState     *FilterState     `json:"filterState,omitempty"`
	IsMapVisible    *bool            `json:"isMapVisible,omitempty"`
	IsListVisible   *bool            `json:"isListVisible,omitempty"`
	MapZoom         *int             `json:"mapZoom,omitempty"`
	RegionSelection []RegionSelector `json:"regionSelection,omitempty"`
	SchoolID        *int             `json:"schoolId,omitempty"`
}

type MapBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

type FilterState struct {
	Sort  *SortValue  `json:"sort,omitempty"`
	Price *RangeValue `json:"price,omitempty"`
	Beds  *RangeValue `json:"beds,omitempty"`
	Baths *RangeValue `json:"baths,omitempty"`
	// Булевы флаги типов жилья и удобств в том виде, в каком их
	// понимает провайдер: mf - multi-family, con - condo, apa/apco -
	// apartment, pool - бассейн.
	MultiFamily *BoolValue `json:"mf,omitempty"`
	Condo       *BoolValue `json:"con,omitempty"`
	Apartment   *BoolValue `json:"apa,omitempty"`
	ApartmentCo *BoolValue `json:"apco,omitempty"`
	Pool        *BoolValue `json:"pool,omitempty"`
}

type SortValue struct {
	Value string `json:"value"`
}

type RangeValue struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type BoolValue struct {
	Value bool `json:"value"`
}

type RegionSelector struct {
	RegionID   int `json:"regionId"`
	RegionType int `json:"regionType"`
}

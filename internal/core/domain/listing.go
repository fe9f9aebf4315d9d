package domain

import (
	"fmt"
	"strings"
)

// ListingRecord - один объект недвижимости в том порядке и составе,
// в каком его вернул провайдер. Запись неизменяема после получения,
// порядок в массиве значим: нумерация в тексте анализа и порядок
// публичных результатов обязаны совпадать с позицией в массиве.
type ListingRecord struct {
	StreetAddress string
	City          string
	State         string
	Zipcode       string
	Price         float64
	Bedrooms      float64
	Bathrooms     float64
	LivingArea    float64
	ImgSrc        string
	// ZPID - внутренний идентификатор провайдера; наружу не отдается,
	// участвует только в построении канонической ссылки.
	ZPID string
}

// PublicListing - публичная проекция ListingRecord без внутренних
// полей провайдера, с синтезированной канонической ссылкой.
type PublicListing struct {
	Bathrooms     float64 `json:"bathrooms"`
	Bedrooms      float64 `json:"bedrooms"`
	ImgSrc        string  `json:"imgSrc"`
	LivingArea    float64 `json:"livingArea"`
	Price         float64 `json:"price"`
	StreetAddress string  `json:"streetAddress"`
	State         string  `json:"state"`
	City          string  `json:"city"`
	Zipcode       string  `json:"zipcode"`
	ZillowURL     string  `json:"zillowUrl"`
}

// ToPublic строит публичную проекцию записи.
func (l ListingRecord) ToPublic() PublicListing {
	return PublicListing{
		Bathrooms:     l.Bathrooms,
		Bedrooms:      l.Bedrooms,
		ImgSrc:        l.ImgSrc,
		LivingArea:    l.LivingArea,
		Price:         l.Price,
		StreetAddress: l.StreetAddress,
		State:         l.State,
		City:          l.City,
		Zipcode:       l.Zipcode,
		ZillowURL:     l.DetailURL(),
	}
}

// DetailURL синтезирует каноническую ссылку на страницу объекта.
func (l ListingRecord) DetailURL() string {
	slug := strings.ReplaceAll(
		fmt.Sprintf("%s-%s-%s-%s", l.StreetAddress, l.City, l.State, l.Zipcode), " ", "-")
	return fmt.Sprintf("https://www.zillow.com/homedetails/%s/%s_zpid/", slug, l.ZPID)
}

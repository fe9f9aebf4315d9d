package zillow

import "encoding/json"

// searchResponse - конверт ответа search_url.
type searchResponse struct {
	Results []listingDTO `json:"results"`
}

// listingDTO - один объект в ответе провайдера. zpid приходит числом,
// поэтому читаем его через json.Number и переводим в строку сами.
type listingDTO struct {
	StreetAddress string      `json:"streetAddress"`
	City          string      `json:"city"`
	State         string      `json:"state"`
	Zipcode       string      `json:"zipcode"`
	Price         float64     `json:"price"`
	Bedrooms      float64     `json:"bedrooms"`
	Bathrooms     float64     `json:"bathrooms"`
	LivingArea    float64     `json:"livingArea"`
	ImgSrc        string      `json:"imgSrc"`
	Zpid          json.Number `json:"zpid"`
}

// addressResponse - фрагмент ответа search_address, который нам нужен
// для извлечения фотографий. Остальное отдаем наружу как есть.
type addressResponse struct {
	OriginalPhotos []struct {
		MixedSources struct {
			Jpeg []struct {
				URL string `json:"url"`
			} `json:"jpeg"`
		} `json:"mixedSources"`
	} `json:"originalPhotos"`
}

package zillow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

const (
	searchHost = "zillow56.p.rapidapi.com"

	// Провайдер принимает не параметры поиска, а готовый URL страницы
	// выдачи с сериализованным searchQueryState.
	searchPageTemplate = "https://www.zillow.com/homes/for_sale/LOCATION_rb/?searchQueryState=%s"
)

// Client - адаптер к Zillow-провайдеру через RapidAPI.
// Реализует port.ListingProviderPort.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// doRequest - внутренний хелпер: общие заголовки RapidAPI и трассировка.
func (c *Client) doRequest(ctx context.Context, host, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", host)
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// readSuccess проверяет статус и возвращает тело ответа.
func readSuccess(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("zillow provider returned non-success status code %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *Client) SearchByQuery(ctx context.Context, spec *domain.SearchSpecification) ([]domain.ListingRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "ZillowClient",
		"method":    "SearchByQuery",
	})

	// 1. Сериализуем спецификацию в searchQueryState и собираем URL
	// страницы выдачи, который провайдер будет разбирать на своей стороне.
	stateJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search specification: %w", err)
	}
	pageURL := fmt.Sprintf(searchPageTemplate, url.QueryEscape(string(stateJSON)))

	params := url.Values{}
	params.Set("url", pageURL)
	params.Set("page", "1")
	params.Set("output", "json")
	params.Set("listing_type", "by_agent")
	requestURL := fmt.Sprintf("https://%s/search_url?%s", searchHost, params.Encode())

	clientLogger.Debug("Sending search request to zillow provider", nil)

	// 2. Выполняем запрос и разбираем конверт с результатами
	resp, err := c.doRequest(ctx, searchHost, requestURL)
	if err != nil {
		clientLogger.Error("Failed to perform request to zillow provider", err, nil)
		return nil, err
	}
	body, err := readSuccess(resp)
	if err != nil {
		clientLogger.Error("Received error response from zillow provider", err, nil)
		return nil, err
	}

	var envelope searchResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		clientLogger.Error("Failed to decode zillow search response", err, nil)
		return nil, err
	}

	// 3. Маппим DTO в доменную модель, сохраняя порядок провайдера
	records := make([]domain.ListingRecord, len(envelope.Results))
	for i, item := range envelope.Results {
		records[i] = domain.ListingRecord{
			StreetAddress: item.StreetAddress,
			City:          item.City,
			State:         item.State,
			Zipcode:       item.Zipcode,
			Price:         item.Price,
			Bedrooms:      item.Bedrooms,
			Bathrooms:     item.Bathrooms,
			LivingArea:    item.LivingArea,
			ImgSrc:        item.ImgSrc,
			ZPID:          item.Zpid.String(),
		}
	}

	clientLogger.Info("Successfully received listings from zillow provider", port.Fields{"listings_count": len(records)})
	return records, nil
}

func (c *Client) LookupByAddress(ctx context.Context, address string) (json.RawMessage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "ZillowClient",
		"method":    "LookupByAddress",
	})

	params := url.Values{}
	params.Set("address", address)
	requestURL := fmt.Sprintf("https://%s/search_address?%s", searchHost, params.Encode())

	resp, err := c.doRequest(ctx, searchHost, requestURL)
	if err != nil {
		clientLogger.Error("Failed to perform request to zillow provider", err, nil)
		return nil, err
	}
	body, err := readSuccess(resp)
	if err != nil {
		clientLogger.Error("Received error response from zillow provider", err, nil)
		return nil, err
	}

	clientLogger.Debug("Successfully received address lookup response", port.Fields{"bytes": len(body)})
	return json.RawMessage(body), nil
}

func (c *Client) PhotosByAddress(ctx context.Context, address string) ([]string, error) {
	raw, err := c.LookupByAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	var details addressResponse
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, fmt.Errorf("failed to decode address details: %w", err)
	}

	// Берем первый jpeg-вариант каждой фотографии
	photos := make([]string, 0, len(details.OriginalPhotos))
	for _, photo := range details.OriginalPhotos {
		if len(photo.MixedSources.Jpeg) > 0 {
			photos = append(photos, photo.MixedSources.Jpeg[0].URL)
		}
	}
	return photos, nil
}

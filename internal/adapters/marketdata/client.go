package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

// Хосты RapidAPI для четырех независимых источников.
const (
	saleOverviewHost = "zillow56.p.rapidapi.com"
	housingHost      = "zillow-working-api.p.rapidapi.com"
	trendHost        = "zillow-api-data.p.rapidapi.com"
)

// Client - адаптер рыночных данных поверх трех RapidAPI-хостов.
// Реализует port.MarketDataPort. Ответы не разбираются по полям:
// ядро передает их LLM как непрозрачные JSON-блоки.
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

// fetchRaw - общий хелпер: запрос к хосту и возврат тела как есть.
func (c *Client) fetchRaw(ctx context.Context, host, path string, params url.Values) (json.RawMessage, error) {
	requestURL := fmt.Sprintf("https://%s%s?%s", host, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("market data provider returned non-success status code %d: %s", resp.StatusCode, string(body))
	}
	return json.RawMessage(body), nil
}

// logged оборачивает вызов fetchRaw логированием в стиле остальных адаптеров.
func (c *Client) logged(ctx context.Context, method, host, path string, params url.Values) (json.RawMessage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "MarketDataClient",
		"method":    method,
	})

	raw, err := c.fetchRaw(ctx, host, path, params)
	if err != nil {
		clientLogger.Error("Failed to fetch market data", err, port.Fields{"host": host})
		return nil, err
	}
	clientLogger.Debug("Successfully fetched market data", port.Fields{"host": host, "bytes": len(raw)})
	return raw, nil
}

func (c *Client) SaleOverview(ctx context.Context, location string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("location", location)
	return c.logged(ctx, "SaleOverview", saleOverviewHost, "/market_sale_overview", params)
}

func (c *Client) HousingMarket(ctx context.Context, location string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("search_query", location)
	params.Set("home_type", "All_Homes")
	params.Set("exclude_rentalMarketTrends", "true")
	params.Set("exclude_neighborhoods_zhvi", "true")
	return c.logged(ctx, "HousingMarket", housingHost, "/housing_market", params)
}

func (c *Client) RentalMarket(ctx context.Context, location string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("search_query", location)
	params.Set("bedrooom_type", "All_Bedrooms")
	params.Set("home_type", "All_Property_Types")
	return c.logged(ctx, "RentalMarket", housingHost, "/rental_market", params)
}

func (c *Client) MortgageTrend(ctx context.Context, state string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("durationDays", "21")
	params.Set("includeCurrentRate", "true")
	params.Set("limit", "5")
	params.Set("program", "Fixed30Year")
	params.Set("stateAbbreviation", titleCase(state))
	return c.logged(ctx, "MortgageTrend", trendHost, "/trend", params)
}

// titleCase приводит аббревиатуру штата к виду "Tx", который ждет провайдер.
func titleCase(s string) string {
	lower := strings.ToLower(s)
	if lower == "" {
		return ""
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

package googlesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
	"github.com/fortunatoman/Real-estate-AI-backend/pkg/retry"
)

const endpoint = "https://www.googleapis.com/customsearch/v1"

// rateLimitedError помечает ответ 429, единственный повторяемый класс ошибок.
type rateLimitedError struct {
	body string
}

func (e *rateLimitedError) Error() string {
	return fmt.Sprintf("google search rate limited (429): %s", e.body)
}

// Client - адаптер Google Custom Search. Реализует port.SnippetSearchPort.
// Провайдер опционален: без учетных данных Enabled возвращает false,
// и ветка сниппетов в агрегаторе пропускается молча.
type Client struct {
	apiKey     string
	cseID      string
	httpClient *http.Client
	retryCfg   retry.Config
}

func NewClient(apiKey, cseID string) *Client {
	return &Client{
		apiKey:     apiKey,
		cseID:      cseID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retryCfg: retry.Config{
			MaxAttempts: 3,
			BaseDelay:   2 * time.Second,
			MaxDelay:    30 * time.Second,
		},
	}
}

func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.cseID != ""
}

func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "GoogleSearchClient",
		"method":    "Search",
	})

	if !c.Enabled() {
		// Сюда попадать не должны: агрегатор сам проверяет Enabled.
		return nil, errors.New("google search credentials are not configured")
	}

	// Повторяем только 429: остальные ошибки возвращаются немедленно.
	snippets, err := retry.Do(ctx, c.retryCfg, func(err error) bool {
		var rl *rateLimitedError
		return errors.As(err, &rl)
	}, func(ctx context.Context) ([]string, error) {
		return c.searchOnce(ctx, query)
	})
	if err != nil {
		clientLogger.Error("Failed to fetch web snippets", err, nil)
		return nil, err
	}

	clientLogger.Debug("Successfully fetched web snippets", port.Fields{"snippets_count": len(snippets)})
	return snippets, nil
}

func (c *Client) searchOnce(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.cseID)
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &rateLimitedError{body: string(body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("google search returned non-success status code %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Items []struct {
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode google search response: %w", err)
	}

	snippets := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		snippets = append(snippets, item.Snippet)
	}
	return snippets, nil
}

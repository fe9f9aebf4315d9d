package taxdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

const endpoint = "https://smartasset.com/taxes/property-taxes?render=json"

// Client - адаптер налоговых данных SmartAsset. Реализует port.TaxDataPort.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) PropertyTaxes(ctx context.Context, city, state string) (json.RawMessage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "TaxDataClient",
		"method":    "PropertyTaxes",
	})

	// Провайдер принимает локацию одной multipart-формой
	// в формате "CITY|<city>|<state>".
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("ud-current-location", fmt.Sprintf("CITY|%s|%s", city, state)); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		clientLogger.Error("Failed to perform request to tax provider", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("tax provider returned non-success status code %d: %s", resp.StatusCode, string(body))
		clientLogger.Error("Received error response from tax provider", err, nil)
		return nil, err
	}

	// Наружу уходит только содержательная часть ответа.
	var envelope struct {
		PageData json.RawMessage `json:"page_data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		clientLogger.Error("Failed to decode tax provider response", err, nil)
		return nil, err
	}

	clientLogger.Debug("Successfully fetched property tax data", port.Fields{"bytes": len(envelope.PageData)})
	return envelope.PageData, nil
}

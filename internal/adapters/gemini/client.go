package gemini

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
	"github.com/fortunatoman/Real-estate-AI-backend/pkg/retry"
)

// Client - адаптер LLM-провайдера поверх официального genai SDK.
// Реализует port.CompletionPort.
type Client struct {
	client   *genai.Client
	model    string
	timeout  time.Duration
	retryCfg retry.Config
}

func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		client:  client,
		model:   model,
		timeout: timeout,
		retryCfg: retry.Config{
			MaxAttempts: 3,
			BaseDelay:   2 * time.Second,
			MaxDelay:    30 * time.Second,
		},
	}, nil
}

// isRateLimited распознает ответ об исчерпании квоты провайдера.
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func (c *Client) Complete(ctx context.Context, req port.CompletionRequest) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "GeminiClient",
		"method":    "Complete",
	})

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.MaxOutputTokens > 0 {
		config.MaxOutputTokens = req.MaxOutputTokens
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.User, genai.RoleUser),
	}

	// Повторяем только исчерпание квоты: остальные ошибки транспорта
	// отдаются вызывающему сразу.
	text, err := retry.Do(ctx, c.retryCfg, isRateLimited, func(ctx context.Context) (string, error) {
		result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
		if err != nil {
			return "", err
		}
		answer := strings.TrimSpace(result.Text())
		if answer == "" {
			return "", errors.New("model returned an empty response")
		}
		return answer, nil
	})
	if err != nil {
		clientLogger.Error("Failed to get completion from model", err, port.Fields{"model": c.model})
		return "", err
	}

	clientLogger.Debug("Successfully received completion", port.Fields{
		"model":        c.model,
		"answer_chars": len(text),
	})
	return text, nil
}

package port

import "context"

// CompletionRequest - один вызов LLM: системная инструкция, пользовательский
// текст, температура сэмплирования и потолок размера ответа.
type CompletionRequest struct {
	System          string
	User            string
	Temperature     float32
	MaxOutputTokens int32
}

// CompletionPort абстрагирует чат-комплишен провайдера.
// Пустой ответ считается транспортной ошибкой и возвращается как error.
type CompletionPort interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

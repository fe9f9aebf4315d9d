package domain

import (
	"errors"
	"fmt"
)

// Определяем переменные-ошибки, которые могут быть возвращены из Use Cases.
var (
	// ErrUnknownCategory - классификатор не смог отнести вопрос ни к
	// listing, ни к analysis (включая отказ LLM-транспорта).
	ErrUnknownCategory = errors.New("unknown question category")
	// ErrExtractionFailed - не удалось извлечь валидную спецификацию поиска.
	ErrExtractionFailed = errors.New("search specification extraction failed")
	// ErrGenerationFailed - LLM не вернула текст даже после повторной генерации.
	ErrGenerationFailed = errors.New("narrative generation failed")
	// ErrNoListings - провайдер не вернул ни одного объекта по запросу.
	ErrNoListings = errors.New("no listings found for the query")
	// ErrInvalidListingInput - в запросе отчета нет обязательных адресных полей.
	ErrInvalidListingInput = errors.New("missing required listing information")
	// ErrArtifactNotFound - файл отчета не существует или уже истек.
	ErrArtifactNotFound = errors.New("report artifact not found or expired")
	// ErrUnsupportedFileType - формат загруженного файла не поддерживается.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrHistoryNotFound - запись истории с указанным ID не существует.
	ErrHistoryNotFound = errors.New("history record not found")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrTokenInvalid       = errors.New("invalid jwt token")
	ErrTokenExpired       = errors.New("jwt token has expired")
)

// RenderExhaustedError - суб-машина рендера исчерпала все попытки.
// Несет количество попыток и последнюю причину отказа.
type RenderExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *RenderExhaustedError) Error() string {
	return fmt.Sprintf("PDF generation failed after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *RenderExhaustedError) Unwrap() error {
	return e.Cause
}

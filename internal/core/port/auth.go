package port

import (
	"context"
	"time"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

// TokenServicePort - выпуск и проверка JWT-токенов.
type TokenServicePort interface {
	GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error)
}

// EmailSenderPort отправляет транзакционные письма (подтверждение адреса,
// сброс пароля). Тело письма - готовый HTML.
type EmailSenderPort interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

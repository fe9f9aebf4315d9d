package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

// HistoryRepositoryPort - хранилище истории анализов пользователя.
type HistoryRepositoryPort interface {
	// Save создаёт новую запись истории и возвращает её с заполненным ID.
	Save(ctx context.Context, result domain.AnalysisResult) (*domain.HistoryRecord, error)

	// Update перезаписывает существующую запись по ID. Возвращает
	// domain.ErrHistoryNotFound, если записи нет.
	Update(ctx context.Context, id uuid.UUID, result domain.AnalysisResult) (*domain.HistoryRecord, error)

	// GetByEmail возвращает все записи пользователя, новые первыми.
	GetByEmail(ctx context.Context, email string) ([]domain.HistoryRecord, error)

	// GetByID возвращает одну запись со всеми полями, включая дамп результатов.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.HistoryRecord, error)
}

// UserRepositoryPort - хранилище учётных записей.
type UserRepositoryPort interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	MarkVerified(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

package usecases_port

import (
	"context"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

type RegisterUserUseCase interface {
	Execute(ctx context.Context, fullName, email, phone, password string) error
}

type LoginUserUseCase interface {
	Execute(ctx context.Context, email, password string) (string, *domain.User, error)
}

type VerifyEmailUseCase interface {
	Execute(ctx context.Context, token string) error
}

type RequestPasswordResetUseCase interface {
	Execute(ctx context.Context, email string) error
}

type ResetPasswordUseCase interface {
	Execute(ctx context.Context, token, newPassword string) error
}

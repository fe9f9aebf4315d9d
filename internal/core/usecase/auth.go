package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

// Время жизни служебных токенов подтверждения и сброса.
const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = 1 * time.Hour
)

// AuthConfig - параметры аутентификации.
type AuthConfig struct {
	// TokenTTL - время жизни сессионного JWT.
	TokenTTL time.Duration
	// FrontendURL - база для ссылок в письмах.
	FrontendURL string
}

// RegisterUserUseCase создает учетную запись и отправляет письмо
// со ссылкой подтверждения адреса.
type RegisterUserUseCase struct {
	users  port.UserRepositoryPort
	tokens port.TokenServicePort
	mailer port.EmailSenderPort
	cfg    AuthConfig
}

func NewRegisterUserUseCase(users port.UserRepositoryPort, tokens port.TokenServicePort, mailer port.EmailSenderPort, cfg AuthConfig) *RegisterUserUseCase {
	return &RegisterUserUseCase{users: users, tokens: tokens, mailer: mailer, cfg: cfg}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, fullName, email, phone, password string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"usecase": "RegisterUser",
		"email":   email,
	})

	// 1. Создаем пользователя с захэшированным паролем
	user, err := domain.NewUser(fullName, email, phone, password)
	if err != nil {
		return err
	}
	created, err := uc.users.Create(ctx, *user)
	if err != nil {
		return err
	}

	// 2. Отправляем письмо подтверждения. Отказ почты не откатывает
	// регистрацию: пользователь может запросить письмо повторно.
	token, err := uc.tokens.GenerateToken(ctx, created, verificationTokenTTL)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/verify-email?token=%s", uc.cfg.FrontendURL, token)
	body := fmt.Sprintf(`<p>Welcome to Simple Deals!</p><p>Please confirm your email address by following <a href="%s">this link</a>.</p><p>The link is valid for 24 hours.</p>`, link)
	if err := uc.mailer.Send(ctx, created.Email, "Confirm your email", body); err != nil {
		ucLogger.Warn("Failed to send verification email", port.Fields{"reason": err.Error()})
	}

	ucLogger.Info("User registered", nil)
	return nil
}

// LoginUserUseCase проверяет учетные данные и выпускает сессионный JWT.
type LoginUserUseCase struct {
	users  port.UserRepositoryPort
	tokens port.TokenServicePort
	cfg    AuthConfig
}

func NewLoginUserUseCase(users port.UserRepositoryPort, tokens port.TokenServicePort, cfg AuthConfig) *LoginUserUseCase {
	return &LoginUserUseCase{users: users, tokens: tokens, cfg: cfg}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, email, password string) (string, *domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"usecase": "LoginUser",
		"email":   email,
	})

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		// Не раскрываем, существует ли адрес
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		ucLogger.Warn("Login attempt with wrong password", nil)
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", nil, domain.ErrEmailNotVerified
	}

	token, err := uc.tokens.GenerateToken(ctx, user, uc.cfg.TokenTTL)
	if err != nil {
		return "", nil, err
	}

	ucLogger.Info("User logged in", nil)
	return token, user, nil
}

// VerifyEmailUseCase подтверждает адрес по токену из письма.
type VerifyEmailUseCase struct {
	users  port.UserRepositoryPort
	tokens port.TokenServicePort
}

func NewVerifyEmailUseCase(users port.UserRepositoryPort, tokens port.TokenServicePort) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{users: users, tokens: tokens}
}

func (uc *VerifyEmailUseCase) Execute(ctx context.Context, token string) error {
	claims, err := uc.tokens.ValidateToken(ctx, token)
	if err != nil {
		return err
	}
	return uc.users.MarkVerified(ctx, claims.Email)
}

// RequestPasswordResetUseCase отправляет письмо со ссылкой сброса пароля.
type RequestPasswordResetUseCase struct {
	users  port.UserRepositoryPort
	tokens port.TokenServicePort
	mailer port.EmailSenderPort
	cfg    AuthConfig
}

func NewRequestPasswordResetUseCase(users port.UserRepositoryPort, tokens port.TokenServicePort, mailer port.EmailSenderPort, cfg AuthConfig) *RequestPasswordResetUseCase {
	return &RequestPasswordResetUseCase{users: users, tokens: tokens, mailer: mailer, cfg: cfg}
}

func (uc *RequestPasswordResetUseCase) Execute(ctx context.Context, email string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"usecase": "RequestPasswordReset",
		"email":   email,
	})

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		// Наружу всегда успех: существование адреса не раскрывается
		ucLogger.Warn("Password reset requested for unknown email", nil)
		return nil
	}

	token, err := uc.tokens.GenerateToken(ctx, user, resetTokenTTL)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", uc.cfg.FrontendURL, token)
	body := fmt.Sprintf(`<p>We received a request to reset your password.</p><p>Follow <a href="%s">this link</a> to choose a new one. The link is valid for 1 hour.</p><p>If you did not request a reset, ignore this email.</p>`, link)
	return uc.mailer.Send(ctx, user.Email, "Reset your password", body)
}

// ResetPasswordUseCase устанавливает новый пароль по токену сброса.
type ResetPasswordUseCase struct {
	users  port.UserRepositoryPort
	tokens port.TokenServicePort
}

func NewResetPasswordUseCase(users port.UserRepositoryPort, tokens port.TokenServicePort) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{users: users, tokens: tokens}
}

func (uc *ResetPasswordUseCase) Execute(ctx context.Context, token, newPassword string) error {
	claims, err := uc.tokens.ValidateToken(ctx, token)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.users.UpdatePassword(ctx, claims.Email, string(hashed))
}

package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

// UserRepository - реализация UserRepositoryPort для PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &UserRepository{pool: pool}, nil
}

// Create создает нового пользователя в БД.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "UserRepository",
		"method":    "Create",
		"email":     user.Email,
	})

	query := `INSERT INTO users (id, full_name, email, phone, password_hash, is_verified, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	repoLogger.Debug("Executing query to create user.", nil)
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.FullName, user.Email, user.Phone, user.PasswordHash, user.IsVerified, user.CreatedAt)
	if err != nil {
		// 23505 - нарушение уникальности email
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			repoLogger.Warn("Email already in use.", nil)
			return nil, domain.ErrEmailInUse
		}
		repoLogger.Error("Failed to create user", err, nil)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	repoLogger.Debug("User created successfully.", nil)
	return &user, nil
}

// GetByEmail находит пользователя по email.
// Возвращает domain.ErrUserNotFound, если пользователя нет.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "UserRepository",
		"method":    "GetByEmail",
		"email":     email,
	})

	query := `SELECT id, full_name, email, phone, password_hash, is_verified, created_at
	          FROM users WHERE email = $1`

	repoLogger.Debug("Executing query to find user by email.", nil)
	var user domain.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.IsVerified,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("User not found by email.", nil)
			return nil, domain.ErrUserNotFound
		}
		repoLogger.Error("Failed to find user by email", err, nil)
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &user, nil
}

// MarkVerified помечает email пользователя как подтвержденный.
func (r *UserRepository) MarkVerified(ctx context.Context, email string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "UserRepository",
		"method":    "MarkVerified",
		"email":     email,
	})

	query := `UPDATE users SET is_verified = TRUE WHERE email = $1`

	tag, err := r.pool.Exec(ctx, query, email)
	if err != nil {
		repoLogger.Error("Failed to mark user as verified", err, nil)
		return fmt.Errorf("failed to mark user as verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		repoLogger.Warn("User not found for verification.", nil)
		return domain.ErrUserNotFound
	}

	repoLogger.Debug("User marked as verified.", nil)
	return nil
}

// UpdatePassword заменяет хэш пароля пользователя.
func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "UserRepository",
		"method":    "UpdatePassword",
		"email":     email,
	})

	query := `UPDATE users SET password_hash = $2 WHERE email = $1`

	tag, err := r.pool.Exec(ctx, query, email, passwordHash)
	if err != nil {
		repoLogger.Error("Failed to update user password", err, nil)
		return fmt.Errorf("failed to update user password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		repoLogger.Warn("User not found for password update.", nil)
		return domain.ErrUserNotFound
	}

	repoLogger.Debug("User password updated.", nil)
	return nil
}

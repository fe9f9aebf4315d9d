package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

type fakeUsers struct {
	byEmail  map[string]*domain.User
	verified []string
	created  []domain.User

	createErr error
}

func (f *fakeUsers) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, user)
	return &user, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) MarkVerified(ctx context.Context, email string) error {
	f.verified = append(f.verified, email)
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	if user, ok := f.byEmail[email]; ok {
		user.PasswordHash = passwordHash
		return nil
	}
	return domain.ErrUserNotFound
}

type fakeTokens struct {
	token       string
	lastTTL     time.Duration
	claims      *domain.Claims
	validateErr error
}

func (f *fakeTokens) GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	f.lastTTL = ttl
	return f.token, nil
}

func (f *fakeTokens) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return f.claims, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func verifiedUser(t *testing.T, email, password string) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Jane Roe", email, "+15550100", password)
	require.NoError(t, err)
	user.IsVerified = true
	return user
}

func TestRegisterUser(t *testing.T) {
	t.Run("creates the account and mails a verification link", func(t *testing.T) {
		users := &fakeUsers{}
		tokens := &fakeTokens{token: "tok"}
		mailer := &fakeMailer{}
		uc := NewRegisterUserUseCase(users, tokens, mailer, AuthConfig{FrontendURL: "https://app.example"})

		err := uc.Execute(context.Background(), "Jane Roe", "jane@example.com", "+15550100", "s3cret")
		require.NoError(t, err)

		require.Len(t, users.created, 1)
		assert.False(t, users.created[0].IsVerified)
		assert.NotEqual(t, "s3cret", users.created[0].PasswordHash)
		assert.Equal(t, []string{"jane@example.com"}, mailer.sent)
		assert.Equal(t, verificationTokenTTL, tokens.lastTTL)
	})

	t.Run("mail failure does not roll back the registration", func(t *testing.T) {
		users := &fakeUsers{}
		uc := NewRegisterUserUseCase(users, &fakeTokens{token: "tok"}, &fakeMailer{err: errors.New("smtp down")}, AuthConfig{})

		err := uc.Execute(context.Background(), "Jane Roe", "jane@example.com", "", "s3cret")
		require.NoError(t, err)
		assert.Len(t, users.created, 1)
	})

	t.Run("duplicate email propagates", func(t *testing.T) {
		users := &fakeUsers{createErr: domain.ErrEmailInUse}
		uc := NewRegisterUserUseCase(users, &fakeTokens{}, &fakeMailer{}, AuthConfig{})

		err := uc.Execute(context.Background(), "Jane Roe", "jane@example.com", "", "s3cret")
		assert.ErrorIs(t, err, domain.ErrEmailInUse)
	})
}

func TestLoginUser(t *testing.T) {
	user := verifiedUser(t, "jane@example.com", "s3cret")

	t.Run("valid credentials yield a token", func(t *testing.T) {
		users := &fakeUsers{byEmail: map[string]*domain.User{user.Email: user}}
		tokens := &fakeTokens{token: "session-token"}
		uc := NewLoginUserUseCase(users, tokens, AuthConfig{TokenTTL: 12 * time.Hour})

		token, loggedIn, err := uc.Execute(context.Background(), "jane@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "session-token", token)
		assert.Equal(t, user.Email, loggedIn.Email)
		assert.Equal(t, 12*time.Hour, tokens.lastTTL)
	})

	t.Run("wrong password and unknown email look identical", func(t *testing.T) {
		users := &fakeUsers{byEmail: map[string]*domain.User{user.Email: user}}
		uc := NewLoginUserUseCase(users, &fakeTokens{}, AuthConfig{})

		_, _, errWrongPassword := uc.Execute(context.Background(), "jane@example.com", "wrong")
		_, _, errUnknownEmail := uc.Execute(context.Background(), "ghost@example.com", "s3cret")

		assert.ErrorIs(t, errWrongPassword, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknownEmail, domain.ErrInvalidCredentials)
	})

	t.Run("unverified email is rejected", func(t *testing.T) {
		unverified, err := domain.NewUser("Jane Roe", "new@example.com", "", "s3cret")
		require.NoError(t, err)
		users := &fakeUsers{byEmail: map[string]*domain.User{unverified.Email: unverified}}
		uc := NewLoginUserUseCase(users, &fakeTokens{}, AuthConfig{})

		_, _, err = uc.Execute(context.Background(), "new@example.com", "s3cret")
		assert.ErrorIs(t, err, domain.ErrEmailNotVerified)
	})
}

func TestVerifyEmail(t *testing.T) {
	users := &fakeUsers{}
	tokens := &fakeTokens{claims: &domain.Claims{Email: "jane@example.com"}}
	uc := NewVerifyEmailUseCase(users, tokens)

	require.NoError(t, uc.Execute(context.Background(), "tok"))
	assert.Equal(t, []string{"jane@example.com"}, users.verified)

	tokens.validateErr = domain.ErrTokenExpired
	assert.ErrorIs(t, uc.Execute(context.Background(), "tok"), domain.ErrTokenExpired)
}

func TestRequestPasswordReset(t *testing.T) {
	t.Run("known email gets a reset link", func(t *testing.T) {
		user := verifiedUser(t, "jane@example.com", "s3cret")
		users := &fakeUsers{byEmail: map[string]*domain.User{user.Email: user}}
		tokens := &fakeTokens{token: "reset-tok"}
		mailer := &fakeMailer{}
		uc := NewRequestPasswordResetUseCase(users, tokens, mailer, AuthConfig{FrontendURL: "https://app.example"})

		require.NoError(t, uc.Execute(context.Background(), "jane@example.com"))
		assert.Equal(t, []string{"jane@example.com"}, mailer.sent)
		assert.Equal(t, resetTokenTTL, tokens.lastTTL)
	})

	t.Run("unknown email still reports success", func(t *testing.T) {
		mailer := &fakeMailer{}
		uc := NewRequestPasswordResetUseCase(&fakeUsers{}, &fakeTokens{}, mailer, AuthConfig{})

		// Существование адреса не раскрывается
		assert.NoError(t, uc.Execute(context.Background(), "ghost@example.com"))
		assert.Empty(t, mailer.sent)
	})
}

func TestResetPassword(t *testing.T) {
	user := verifiedUser(t, "jane@example.com", "old-pass")
	users := &fakeUsers{byEmail: map[string]*domain.User{user.Email: user}}
	tokens := &fakeTokens{claims: &domain.Claims{Email: user.Email}}
	uc := NewResetPasswordUseCase(users, tokens)

	require.NoError(t, uc.Execute(context.Background(), "reset-tok", "new-pass"))
	assert.True(t, user.CheckPassword("new-pass"))
	assert.False(t, user.CheckPassword("old-pass"))
}

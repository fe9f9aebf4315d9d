package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port/usecases_port"
)

// AuthHandler обслуживает регистрацию и вход.
type AuthHandler struct {
	registerUC     usecases_port.RegisterUserUseCase
	loginUC        usecases_port.LoginUserUseCase
	verifyEmailUC  usecases_port.VerifyEmailUseCase
	requestResetUC usecases_port.RequestPasswordResetUseCase
	resetUC        usecases_port.ResetPasswordUseCase
}

func NewAuthHandler(
	registerUC usecases_port.RegisterUserUseCase,
	loginUC usecases_port.LoginUserUseCase,
	verifyEmailUC usecases_port.VerifyEmailUseCase,
	requestResetUC usecases_port.RequestPasswordResetUseCase,
	resetUC usecases_port.ResetPasswordUseCase,
) *AuthHandler {
	return &AuthHandler{
		registerUC:     registerUC,
		loginUC:        loginUC,
		verifyEmailUC:  verifyEmailUC,
		requestResetUC: requestResetUC,
		resetUC:        resetUC,
	}
}

// Signup обрабатывает POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteJSONError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if err := h.registerUC.Execute(r.Context(), req.FullName, req.Email, req.Phone, req.Password); err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			WriteJSONError(w, http.StatusConflict, "Email already in use")
			return
		}
		logger.Error("Failed to register user", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to sign up")
		return
	}

	RespondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered. Please check your email to verify the account.",
	})
}

// Signin обрабатывает POST /api/v1/auth/signin
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			WriteJSONError(w, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, domain.ErrEmailNotVerified):
			WriteJSONError(w, http.StatusForbidden, "Email is not verified")
		default:
			logger.Error("Failed to sign in user", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to sign in")
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, signinResponse{
		Token: token,
		User:  toUserDTO(user),
	})
}

// VerifyEmail обрабатывает GET /api/v1/auth/verify?token=...
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		WriteJSONError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.verifyEmailUC.Execute(r.Context(), token); err != nil {
		WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired verification token")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully"})
}

// ResetPassword обрабатывает POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		WriteJSONError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.requestResetUC.Execute(r.Context(), req.Email); err != nil {
		logger.Error("Failed to request password reset", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to send reset email")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "If the email exists, a reset link has been sent"})
}

// ResetPasswordWithToken обрабатывает PUT /api/v1/auth/reset-password
func (h *AuthHandler) ResetPasswordWithToken(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordWithTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.Password == "" {
		WriteJSONError(w, http.StatusBadRequest, "token and password are required")
		return
	}

	if err := h.resetUC.Execute(r.Context(), req.Token, req.Password); err != nil {
		WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired reset token")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

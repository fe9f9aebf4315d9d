package rest

import "github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"

// analyzePropertyRequest - тело POST /analyze-property.
// id непустой, когда ответ должен перезаписать существующую запись истории.
type analyzePropertyRequest struct {
	UserInput    string `json:"userInput"`
	LastQuestion string `json:"lastQuestion"`
	ID           string `json:"id"`
	Email        string `json:"email"`
}

// noMessageResponse - ответ на отрицательную реакцию пользователя
// на уточняющий вопрос.
type noMessageResponse struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

// reportRequest - тело POST /get-report.
type reportRequest struct {
	Listing domain.ReportListing `json:"listing"`
}

// signupRequest - тело POST /auth/signup.
type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// signinRequest - тело POST /auth/signin.
type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signinResponse - успешный ответ на вход.
type signinResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// resetPasswordRequest - тело POST /auth/reset-password.
type resetPasswordRequest struct {
	Email string `json:"email"`
}

// resetPasswordWithTokenRequest - тело PUT /auth/reset-password.
type resetPasswordWithTokenRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func toUserDTO(user *domain.User) userDTO {
	return userDTO{
		ID:       user.ID.String(),
		FullName: user.FullName,
		Email:    user.Email,
		Phone:    user.Phone,
	}
}

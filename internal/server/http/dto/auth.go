package dto

// RegisterRequest describes the sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest describes the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned after successful sign-up or sign-in.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// models/auth.go

package models

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Name            string `json:"name" validate:"max=100"`
	Email           string `json:"email"`
	Password        string `json:"password" validate:"max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"max=72"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// AuthResult is the data payload of sign-in, sign-up and verify-token.
type AuthResult struct {
	User  UserProfile `json:"user"`
	Token string      `json:"token"`
}

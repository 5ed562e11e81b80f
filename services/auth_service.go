package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/repositories"
	"github.com/cashflowx/cashflowx_backend/security"
	"github.com/cashflowx/cashflowx_backend/utils"
)

const (
	MinPasswordLength = 8

	msgUserNotFound       = "User not found"
	msgInvalidCredentials = "Invalid email or password"
	msgInvalidToken       = "Invalid or expired token"
	msgResetIssued        = "If the email exists, a temporary password has been sent"
)

// URLResolver turns a stored relative upload path into a public URL.
type URLResolver func(string) string

type AuthService struct {
	users    repositories.UserRepository
	tokens   *security.TokenManager
	mailer   Mailer
	throttle ResetThrottle
	resolve  URLResolver
}

func NewAuthService(users repositories.UserRepository, tokens *security.TokenManager, mailer Mailer, throttle ResetThrottle, resolve URLResolver) *AuthService {
	if mailer == nil {
		mailer = LogMailer{}
	}
	if throttle == nil {
		throttle = noThrottle{}
	}
	return &AuthService{users: users, tokens: tokens, mailer: mailer, throttle: throttle, resolve: resolve}
}

func (s *AuthService) result(user *models.User, token string) *models.AuthResult {
	return &models.AuthResult{User: user.Profile(s.resolve), Token: token}
}

func (s *AuthService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResult, error) {
	const failed = "An error occurred while creating user"

	name := strings.TrimSpace(req.Name)
	email := utils.SanitizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, InvalidInput("Name, email, password, and confirm password are required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, InvalidInput("Password and confirm password do not match")
	}
	if !utils.IsValidEmail(email) {
		return nil, InvalidInput("Please provide a valid email")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, InvalidInput("Password must be at least 8 characters")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, Conflict("User with this email already exists")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, Internal(failed, err)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, Internal(failed, err)
	}
	user := &models.User{Name: name, Email: email, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, Conflict("User with this email already exists")
		}
		return nil, Internal(failed, err)
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, Internal(failed, err)
	}
	return s.result(user, token), nil
}

// SignIn checks the stored password only; a temporary password issued by
// ForgotPassword is not accepted here.
func (s *AuthService) SignIn(ctx context.Context, req models.SignInRequest) (*models.AuthResult, error) {
	const failed = "An error occurred while signing in"

	email := utils.SanitizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, InvalidInput("Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, Internal(failed, err)
	}
	if !security.CheckPassword(user.Password, req.Password) {
		return nil, Unauthorized(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, Internal(failed, err)
	}
	return s.result(user, token), nil
}

// Authenticate resolves the principal behind a bearer token.
func (s *AuthService) Authenticate(token string) (primitive.ObjectID, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return primitive.NilObjectID, Unauthorized(msgInvalidToken)
	}
	id, err := primitive.ObjectIDFromHex(subject)
	if err != nil {
		return primitive.NilObjectID, Unauthorized(msgInvalidToken)
	}
	return id, nil
}

// VerifyToken returns fresh user data together with the same token.
func (s *AuthService) VerifyToken(ctx context.Context, req models.VerifyTokenRequest) (*models.AuthResult, error) {
	const failed = "An error occurred while verifying token"

	token := strings.TrimSpace(req.Token)
	if token == "" {
		return nil, InvalidInput("Token is required")
	}
	id, err := s.Authenticate(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgUserNotFound, failed)
	}
	return s.result(user, token), nil
}

// ForgotPassword answers the same way whether or not the email is registered.
// The temporary password is stored hashed and mailed; delivery failures are
// logged only.
func (s *AuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (string, error) {
	const failed = "An error occurred while processing your request"

	email := utils.SanitizeEmail(req.Email)
	if email == "" {
		return "", InvalidInput("Email is required")
	}

	allowed, err := s.throttle.Allow(ctx, email)
	if err != nil {
		log.Printf("Password reset throttle unavailable: %v", err)
	}
	if !allowed {
		log.Printf("Password reset limit reached for %s", email)
		return msgResetIssued, nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return msgResetIssued, nil
	}
	if err != nil {
		return "", Internal(failed, err)
	}

	tempPassword, err := security.GenerateTempPassword()
	if err != nil {
		return "", Internal(failed, err)
	}
	hash, err := security.HashPassword(tempPassword)
	if err != nil {
		return "", Internal(failed, err)
	}
	user.TempPassword = hash
	if err := s.users.Update(ctx, user); err != nil {
		return "", Internal(failed, err)
	}

	if err := s.mailer.SendTempPassword(ctx, user.Email, tempPassword); err != nil {
		log.Printf("Error sending temporary password email: %v", err)
	}
	return msgResetIssued, nil
}

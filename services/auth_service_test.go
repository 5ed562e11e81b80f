package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cashflowx/cashflowx_backend/models"
	"github.com/cashflowx/cashflowx_backend/repositories"
	"github.com/cashflowx/cashflowx_backend/security"
)

type sentMail struct {
	to, password string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) SendTempPassword(_ context.Context, to, tempPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, password: tempPassword})
	return m.err
}

type denyThrottle struct{}

func (denyThrottle) Allow(context.Context, string) (bool, error) { return false, nil }

type brokenThrottle struct{}

func (brokenThrottle) Allow(context.Context, string) (bool, error) {
	return true, errors.New("redis: connection refused")
}

func newAuth(t *testing.T, throttle ResetThrottle) (*AuthService, *repositories.Store, *recordingMailer) {
	t.Helper()
	store := repositories.NewMemoryStore()
	mailer := &recordingMailer{}
	tokens := security.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(store.Users, tokens, mailer, throttle, nil), store, mailer
}

func signUp(t *testing.T, auth *AuthService, email, password string) *models.AuthResult {
	t.Helper()
	result, err := auth.SignUp(context.Background(), models.SignUpRequest{
		Name: "Test User", Email: email, Password: password, ConfirmPassword: password,
	})
	require.NoError(t, err)
	return result
}

func TestSignUp(t *testing.T) {
	auth, store, _ := newAuth(t, nil)
	ctx := context.Background()

	result := signUp(t, auth, "  New@Example.COM ", "s3cretpass")
	assert.Equal(t, "new@example.com", result.User.Email)
	assert.NotEmpty(t, result.Token)
	assert.Nil(t, result.User.ProfileImageURL)

	stored, err := store.Users.FindByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", stored.Password)
	assert.True(t, security.CheckPassword(stored.Password, "s3cretpass"))

	_, err = auth.SignUp(ctx, models.SignUpRequest{Name: "Dup", Email: "new@example.com", Password: "otherpass", ConfirmPassword: "otherpass"})
	assertAppError(t, err, KindConflict, "User with this email already exists")

	tests := []struct {
		name string
		req  models.SignUpRequest
		msg  string
	}{
		{"missing", models.SignUpRequest{Email: "a@example.com"}, "Name, email, password, and confirm password are required"},
		{"mismatch", models.SignUpRequest{Name: "A", Email: "a@example.com", Password: "abcdefgh", ConfirmPassword: "abcdefgi"}, "Password and confirm password do not match"},
		{"email", models.SignUpRequest{Name: "A", Email: "not-an-email", Password: "abcdefgh", ConfirmPassword: "abcdefgh"}, "Please provide a valid email"},
		{"short", models.SignUpRequest{Name: "A", Email: "a@example.com", Password: "abc", ConfirmPassword: "abc"}, "Password must be at least 8 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.SignUp(ctx, tt.req)
			assertAppError(t, err, KindInvalidInput, tt.msg)
		})
	}
}

func TestSignIn(t *testing.T) {
	auth, _, _ := newAuth(t, nil)
	ctx := context.Background()
	created := signUp(t, auth, "user@example.com", "password123")

	result, err := auth.SignIn(ctx, models.SignInRequest{Email: "USER@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, result.User.ID)

	principal, err := auth.Authenticate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, principal)

	_, err = auth.SignIn(ctx, models.SignInRequest{Email: "user@example.com", Password: "wrong-password"})
	assertAppError(t, err, KindUnauthorized, msgInvalidCredentials)

	_, err = auth.SignIn(ctx, models.SignInRequest{Email: "ghost@example.com", Password: "password123"})
	assertAppError(t, err, KindUnauthorized, msgInvalidCredentials)

	_, err = auth.SignIn(ctx, models.SignInRequest{Email: "user@example.com"})
	assertAppError(t, err, KindInvalidInput, "Email and password are required")
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	auth, _, _ := newAuth(t, nil)
	other := security.NewTokenManager("other-secret", time.Hour)
	foreign, err := other.Issue(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	tokens := security.NewTokenManager("test-secret", time.Hour)
	notAnID, err := tokens.Issue("not-an-object-id")
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", foreign, notAnID} {
		_, err := auth.Authenticate(token)
		assertAppError(t, err, KindUnauthorized, msgInvalidToken)
	}
}

func TestVerifyToken(t *testing.T) {
	auth, _, _ := newAuth(t, nil)
	ctx := context.Background()
	created := signUp(t, auth, "verify@example.com", "password123")

	result, err := auth.VerifyToken(ctx, models.VerifyTokenRequest{Token: created.Token})
	require.NoError(t, err)
	assert.Equal(t, created.Token, result.Token)
	assert.Equal(t, "verify@example.com", result.User.Email)

	_, err = auth.VerifyToken(ctx, models.VerifyTokenRequest{})
	assertAppError(t, err, KindInvalidInput, "Token is required")

	_, err = auth.VerifyToken(ctx, models.VerifyTokenRequest{Token: "bad"})
	assertAppError(t, err, KindUnauthorized, msgInvalidToken)

	// A valid token for a user that no longer exists.
	tokens := security.NewTokenManager("test-secret", time.Hour)
	orphan, err := tokens.Issue(primitive.NewObjectID().Hex())
	require.NoError(t, err)
	_, err = auth.VerifyToken(ctx, models.VerifyTokenRequest{Token: orphan})
	assertAppError(t, err, KindNotFound, msgUserNotFound)
}

func TestForgotPassword(t *testing.T) {
	auth, store, mailer := newAuth(t, nil)
	ctx := context.Background()
	signUp(t, auth, "forgot@example.com", "original-pass")

	msg, err := auth.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: "forgot@example.com"})
	require.NoError(t, err)
	assert.Equal(t, msgResetIssued, msg)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "forgot@example.com", mailer.sent[0].to)
	temp := mailer.sent[0].password
	assert.Len(t, temp, security.TempPasswordLength)

	stored, err := store.Users.FindByEmail(ctx, "forgot@example.com")
	require.NoError(t, err)
	assert.True(t, security.CheckPassword(stored.TempPassword, temp), "temp password is stored hashed")
	assert.True(t, security.CheckPassword(stored.Password, "original-pass"), "main password is unchanged")

	// Sign-in only checks the main password.
	_, err = auth.SignIn(ctx, models.SignInRequest{Email: "forgot@example.com", Password: temp})
	assertAppError(t, err, KindUnauthorized, msgInvalidCredentials)

	unknown, err := auth.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.Equal(t, msg, unknown, "the reply does not reveal whether the email exists")
	assert.Len(t, mailer.sent, 1)

	_, err = auth.ForgotPassword(ctx, models.ForgotPasswordRequest{})
	assertAppError(t, err, KindInvalidInput, "Email is required")
}

func TestForgotPasswordMailFailureIsNotReported(t *testing.T) {
	auth, _, mailer := newAuth(t, nil)
	mailer.err = errors.New("smtp down")
	signUp(t, auth, "user@example.com", "password123")

	msg, err := auth.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "user@example.com"})
	require.NoError(t, err)
	assert.Equal(t, msgResetIssued, msg)
}

func TestForgotPasswordThrottle(t *testing.T) {
	auth, store, mailer := newAuth(t, denyThrottle{})
	signUp(t, auth, "limited@example.com", "password123")

	msg, err := auth.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "limited@example.com"})
	require.NoError(t, err)
	assert.Equal(t, msgResetIssued, msg)
	assert.Empty(t, mailer.sent)

	stored, err := store.Users.FindByEmail(context.Background(), "limited@example.com")
	require.NoError(t, err)
	assert.Empty(t, stored.TempPassword)

	open, _, openMailer := newAuth(t, brokenThrottle{})
	signUp(t, open, "open@example.com", "password123")
	_, err = open.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "open@example.com"})
	require.NoError(t, err)
	assert.Len(t, openMailer.sent, 1, "an unavailable throttle does not block resets")
}

func TestNewResetThrottleWithoutRedis(t *testing.T) {
	allowed, err := NewResetThrottle(nil).Allow(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

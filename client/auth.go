package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/cashflowx/cashflowx_backend/models"
)

// SignIn validates the form, signs in and stores the session.
func (c *Client) SignIn(ctx context.Context, form SignInForm) (*models.AuthResult, error) {
	return c.authenticate(ctx, "/api/auth/sign-in", form)
}

// SignUp validates the form, creates the account and stores the session.
func (c *Client) SignUp(ctx context.Context, form SignUpForm) (*models.AuthResult, error) {
	return c.authenticate(ctx, "/api/auth/sign-up", form)
}

func (c *Client) authenticate(ctx context.Context, path string, form interface{}) (*models.AuthResult, error) {
	if err := checkForm(c.validate, form); err != nil {
		return nil, err
	}
	req, err := jsonRequest(http.MethodPost, path, form, true)
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	var result models.AuthResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode auth result: %w", err)
	}
	user := result.User
	if err := c.session.Save(&Session{Token: result.Token, User: &user}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &result, nil
}

// SignOut forgets the stored session. The server keeps no session state.
func (c *Client) SignOut() error {
	return c.session.Clear()
}

// Restore re-verifies a persisted token. It returns nil when there is no
// session or the token was rejected, in which case the session is cleared.
func (c *Client) Restore(ctx context.Context) (*Session, error) {
	session, err := c.session.Load()
	if err != nil || session == nil {
		return nil, err
	}

	req, err := jsonRequest(http.MethodPost, "/api/auth/verify-token", models.VerifyTokenRequest{Token: session.Token}, false)
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, req)
	if err != nil {
		if clearErr := c.session.Clear(); clearErr != nil {
			return nil, clearErr
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, nil
		}
		return nil, err
	}

	var result models.AuthResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode auth result: %w", err)
	}
	user := result.User
	restored := &Session{Token: session.Token, User: &user}
	if err := c.session.Save(restored); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return restored, nil
}

const ForgotPasswordMessage = "If the email exists, a temporary password has been sent"

// ForgotPassword asks the server to mail a temporary password. The returned
// message is the same whether or not the email is registered.
func (c *Client) ForgotPassword(ctx context.Context, form ForgotPasswordForm) (string, error) {
	if err := checkForm(c.validate, form); err != nil {
		return "", err
	}
	req, err := jsonRequest(http.MethodPost, "/api/auth/forgot-password", form, true)
	if err != nil {
		return "", err
	}
	if _, err := c.do(ctx, req); err != nil {
		return "", err
	}
	return ForgotPasswordMessage, nil
}

// Profile fetches the signed-in user and refreshes the stored copy.
func (c *Client) Profile(ctx context.Context) (*models.UserProfile, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/api/user/profile"})
	if err != nil {
		return nil, err
	}
	return c.storeProfile(data)
}

// ProfileImage is an image upload for UpdateProfile.
type ProfileImage struct {
	Filename string
	Content  io.Reader
}

// UpdateProfile changes the display name, the image, or both. A nil name
// leaves it unchanged.
func (c *Client) UpdateProfile(ctx context.Context, name *string, image *ProfileImage) (*models.UserProfile, error) {
	if name != nil && len(*name) > 100 {
		return nil, FieldErrors{"name": "Name must be at most 100 characters"}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if name != nil {
		if err := writer.WriteField("name", *name); err != nil {
			return nil, err
		}
	}
	if image != nil {
		part, err := writer.CreateFormFile("profileImage", filepath.Base(image.Filename))
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, image.Content); err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	data, err := c.do(ctx, request{
		method:        http.MethodPut,
		path:          "/api/user/profile",
		body:          &body,
		contentType:   writer.FormDataContentType(),
		notifySuccess: true,
	})
	if err != nil {
		return nil, err
	}
	return c.storeProfile(data)
}

func (c *Client) ChangePassword(ctx context.Context, form ChangePasswordForm) error {
	if err := checkForm(c.validate, form); err != nil {
		return err
	}
	req, err := jsonRequest(http.MethodPut, "/api/user/change-password", form, true)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, req)
	return err
}

func (c *Client) storeProfile(data json.RawMessage) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := decodeField(data, "user", &user); err != nil {
		return nil, err
	}
	session, err := c.session.Load()
	if err != nil {
		return nil, err
	}
	if session != nil {
		session.User = &user
		if err := c.session.Save(session); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}
	return &user, nil
}

package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

type AuthClient struct{ c *Client }

func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

func (ac *AuthClient) Login(ctx context.Context, local storage.Local, creds model.Credentials) (*model.Session, error) {
	return ac.login(ctx, local, "/api/v1/auth/login", creds)
}

func (ac *AuthClient) AdminLogin(ctx context.Context, local storage.Local, creds model.Credentials) (*model.Session, error) {
	return ac.login(ctx, local, "/admin/v1/auth/login", creds)
}

func (ac *AuthClient) login(ctx context.Context, local storage.Local, path string, creds model.Credentials) (*model.Session, error) {
	var s model.Session
	if _, err := ac.c.call(ctx, local, http.MethodPost, path, nil, creds, &s); err != nil {
		return nil, err
	}
	if s.Token == "" {
		return nil, &APIError{Message: "login response carried no token"}
	}
	return &s, nil
}

func (ac *AuthClient) Register(ctx context.Context, local storage.Local, req model.RegisterRequest) (*model.User, error) {
	var u model.User
	if _, err := ac.c.call(ctx, local, http.MethodPost, "/api/v1/auth/register", nil, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ForgotPassword returns the backend's confirmation message.
func (ac *AuthClient) ForgotPassword(ctx context.Context, local storage.Local, req model.ForgotPasswordRequest) (string, error) {
	env, err := ac.c.call(ctx, local, http.MethodPost, "/api/v1/auth/forgot-password", nil, req, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// CheckLogin asks whether the account behind email may log in.
func (ac *AuthClient) CheckLogin(ctx context.Context, local storage.Local, email string) (bool, error) {
	var ok bool
	if _, err := ac.c.call(ctx, local, http.MethodGet, "/api/v1/auth/check-login/"+url.PathEscape(email), nil, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

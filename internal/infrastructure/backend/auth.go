package backend

import (
	"context"
	"net/http"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

// Login exchanges credentials for a bearer token. Any 4xx is reported as
// invalid credentials, carrying the backend message when it sent one.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	var w authWire
	err := c.do(ctx, call{
		op:     "login",
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"username": username, "password": password},
		login:  true,
	}, &w)
	if err != nil {
		return nil, err
	}
	res := w.domain()
	if res.Username == "" {
		res.Username = username
	}
	return res, nil
}

// SignUp registers a new account. The API may or may not return a token.
func (c *Client) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.AuthResult, error) {
	var w authWire
	err := c.do(ctx, call{
		op:     "signup",
		method: http.MethodPost,
		path:   "/auth/signup",
		body:   in,
	}, &w)
	if err != nil {
		return nil, err
	}
	res := w.domain()
	if res.Username == "" {
		res.Username = in.Username
	}
	return res, nil
}

func (c *Client) GetProfile(ctx context.Context, token string) (*domain.UserProfile, error) {
	var w profileWire
	if err := c.do(ctx, call{op: "get_profile", method: http.MethodGet, path: "/profile/me", token: token}, &w); err != nil {
		return nil, err
	}
	return w.domain(), nil
}

func (c *Client) UpdatePreferences(ctx context.Context, token, preferences string) (*domain.UserProfile, error) {
	var w profileWire
	err := c.do(ctx, call{
		op:     "update_preferences",
		method: http.MethodPut,
		path:   "/profile/me",
		token:  token,
		body:   map[string]string{"preferences": preferences},
	}, &w)
	if err != nil {
		return nil, err
	}
	return w.domain(), nil
}

func (c *Client) UpdateEmail(ctx context.Context, token, email string) error {
	return c.do(ctx, call{
		op:     "update_email",
		method: http.MethodPut,
		path:   "/profile/me/email",
		token:  token,
		body:   map[string]string{"email": email},
	}, nil)
}

func (c *Client) UpdatePassword(ctx context.Context, token, password string) error {
	return c.do(ctx, call{
		op:     "update_password",
		method: http.MethodPut,
		path:   "/profile/me/password",
		token:  token,
		body:   map[string]string{"password": password},
	}, nil)
}

package api

import (
	"context"
	"net/http"

	"github.com/sajilokaam/client-core/internal/core/domain"
	"github.com/sajilokaam/client-core/internal/core/ports"
)

// AuthAPI implements ports.AuthAPI against the /auth endpoints.
type AuthAPI struct {
	c *Client
}

var _ ports.AuthAPI = (*AuthAPI)(nil)

func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{c: c}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// meResponse is the backend profile shape. Backend fields outside the minimal
// identity are dropped by decoding into this struct.
type meResponse struct {
	ID       int64         `json:"id"`
	Email    string        `json:"email"`
	FullName string        `json:"fullName"`
	Roles    []domain.Role `json:"roles"`
}

func (m meResponse) user() *domain.User {
	roles := m.Roles
	if roles == nil {
		roles = []domain.Role{}
	}
	return &domain.User{ID: m.ID, Email: m.Email, FullName: m.FullName, Roles: roles}
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out tokenResponse
	err := a.c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "auth_login",
		path:     "/auth/login",
		body:     body,
		out:      &out,
	})
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

func (a *AuthAPI) Register(ctx context.Context, email, password, fullName, role string) (string, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
		"fullName": fullName,
	}
	if role != "" {
		body["role"] = role
	}

	var out tokenResponse
	err := a.c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "auth_register",
		path:     "/auth/register",
		body:     body,
		out:      &out,
	})
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

func (a *AuthAPI) GetMe(ctx context.Context, token string) (*domain.User, error) {
	var out meResponse
	err := a.c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "auth_me",
		path:     "/auth/me",
		token:    token,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return out.user(), nil
}

func (a *AuthAPI) UpdateProfile(ctx context.Context, token string, changes ports.ProfileChanges) (*domain.User, error) {
	var out meResponse
	err := a.c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: "auth_update_me",
		path:     "/auth/me",
		token:    token,
		body:     changes,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return out.user(), nil
}

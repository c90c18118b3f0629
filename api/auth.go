package api

import (
	"context"
	"net/http"

	"civicsync-client/models"
)

// Login exchanges a username and password for a credential.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, OpLogin, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a citizen account. The backend signs the new user in,
// so the response carries a credential just like Login.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, OpRegister, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

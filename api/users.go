package api

import (
	"context"
	"net/http"

	"civicsync-client/models"
)

// Profile returns the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.doJSON(ctx, OpProfile, http.MethodGet, "/users/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile changes the signed-in user's email.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.doJSON(ctx, OpUpdateProfile, http.MethodPut, "/users/me", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteAccount removes the signed-in user's account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.doJSON(ctx, OpDeleteAccount, http.MethodDelete, "/users/me", nil, nil)
}

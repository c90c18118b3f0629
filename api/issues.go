package api

import (
	"context"
	"fmt"
	"net/http"

	"civicsync-client/models"
)

// CreateIssue files a new issue for the signed-in citizen.
func (c *Client) CreateIssue(ctx context.Context, req models.IssueRequest) (*models.Issue, error) {
	var issue models.Issue
	if err := c.doJSON(ctx, OpCreateIssue, http.MethodPost, "/issues", req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// MyIssues lists the issues submitted by the signed-in user, newest first.
func (c *Client) MyIssues(ctx context.Context) ([]models.Issue, error) {
	var issues []models.Issue
	if err := c.doJSON(ctx, OpMyIssues, http.MethodGet, "/issues/my-issues", nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// AllIssues lists every issue for the admin dashboard, newest first.
func (c *Client) AllIssues(ctx context.Context) ([]models.Issue, error) {
	var issues []models.Issue
	if err := c.doJSON(ctx, OpAllIssues, http.MethodGet, "/admin/issues", nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// UpdateIssueStatus moves an issue to a new triage status.
func (c *Client) UpdateIssueStatus(ctx context.Context, id int64, status models.IssueStatus) (*models.Issue, error) {
	var issue models.Issue
	path := fmt.Sprintf("/admin/issues/%d/status", id)
	if err := c.doJSON(ctx, OpUpdateStatus, http.MethodPut, path, models.StatusUpdate{Status: status}, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// DeleteIssue removes an issue and its stored photo.
func (c *Client) DeleteIssue(ctx context.Context, id int64) error {
	return c.doJSON(ctx, OpDeleteIssue, http.MethodDelete, fmt.Sprintf("/admin/issues/%d", id), nil, nil)
}

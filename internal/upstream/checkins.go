package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cajimenez96/gym-console/internal/models"
)

// ListCheckIns returns attendance events, optionally filtered to one member.
func (c *Client) ListCheckIns(ctx context.Context, token, memberID string) ([]models.CheckIn, error) {
	const op = "upstream.ListCheckIns"
	path := CheckInsPath
	if memberID != "" {
		path += "?memberId=" + url.QueryEscape(memberID)
	}
	var checkIns []models.CheckIn
	if err := c.do(ctx, http.MethodGet, path, token, nil, &checkIns); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return checkIns, nil
}

// CreateCheckIn appends an attendance event for a member.
func (c *Client) CreateCheckIn(ctx context.Context, token string, req models.CreateCheckInRequest) (*models.CheckIn, error) {
	const op = "upstream.CreateCheckIn"
	var checkIn models.CheckIn
	if err := c.do(ctx, http.MethodPost, CheckInsPath, token, req, &checkIn); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &checkIn, nil
}

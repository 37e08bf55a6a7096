package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cajimenez96/gym-console/internal/models"
)

// Login exchanges credentials for a backend bearer token and identity.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	const op = "upstream.Login"
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resp, nil
}

// Logout invalidates the bearer token server-side.
func (c *Client) Logout(ctx context.Context, token string) error {
	const op = "upstream.Logout"
	if err := c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Me returns the identity the backend associates with the token. A failure
// here means the persisted session must be discarded.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	const op = "upstream.Me"
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

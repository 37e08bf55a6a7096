package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cajimenez96/gym-console/internal/models"
)

// ListMembers returns all members.
func (c *Client) ListMembers(ctx context.Context, token string) ([]models.Member, error) {
	const op = "upstream.ListMembers"
	var members []models.Member
	if err := c.do(ctx, http.MethodGet, MembersPath, token, nil, &members); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return members, nil
}

// GetMember returns one member by id.
func (c *Client) GetMember(ctx context.Context, token, id string) (*models.Member, error) {
	const op = "upstream.GetMember"
	var member models.Member
	if err := c.do(ctx, http.MethodGet, MembersPath+"/"+url.PathEscape(id), token, nil, &member); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &member, nil
}

// FindMemberByDNI looks a member up by national ID. The raw 404 passes
// through; callers decide whether absence is an error.
func (c *Client) FindMemberByDNI(ctx context.Context, token, dni string) (*models.Member, error) {
	const op = "upstream.FindMemberByDNI"
	var member models.Member
	if err := c.do(ctx, http.MethodGet, MembersPath+"/dni/"+url.PathEscape(dni), token, nil, &member); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &member, nil
}

// ListActiveMembers returns the backend-computed active subset.
func (c *Client) ListActiveMembers(ctx context.Context, token string) ([]models.Member, error) {
	const op = "upstream.ListActiveMembers"
	var members []models.Member
	if err := c.do(ctx, http.MethodGet, MembersPath+"/active", token, nil, &members); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return members, nil
}

// ListExpiredMembers returns the backend-computed expired subset.
func (c *Client) ListExpiredMembers(ctx context.Context, token string) ([]models.Member, error) {
	const op = "upstream.ListExpiredMembers"
	var members []models.Member
	if err := c.do(ctx, http.MethodGet, MembersPath+"/expired", token, nil, &members); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return members, nil
}

// CreateMember registers a new member.
func (c *Client) CreateMember(ctx context.Context, token string, req models.CreateMemberRequest) (*models.Member, error) {
	const op = "upstream.CreateMember"
	var member models.Member
	if err := c.do(ctx, http.MethodPost, MembersPath, token, req, &member); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &member, nil
}

// UpdateMember applies a partial update to a member.
func (c *Client) UpdateMember(ctx context.Context, token, id string, req models.UpdateMemberRequest) (*models.Member, error) {
	const op = "upstream.UpdateMember"
	var member models.Member
	if err := c.do(ctx, http.MethodPatch, MembersPath+"/"+url.PathEscape(id), token, req, &member); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &member, nil
}

// RenewMembership renews a membership addressed by national ID.
func (c *Client) RenewMembership(ctx context.Context, token string, req models.RenewMembershipRequest) (*models.Member, error) {
	const op = "upstream.RenewMembership"
	var member models.Member
	path := MembersPath + "/" + url.PathEscape(req.DNI) + "/renew"
	body := map[string]any{
		"renewalDate":      req.RenewalDate,
		"membershipPlanId": req.MembershipPlanID,
	}
	if err := c.do(ctx, http.MethodPatch, path, token, body, &member); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &member, nil
}

// DeleteMember removes a member.
func (c *Client) DeleteMember(ctx context.Context, token, id string) (*models.Member, error) {
	const op = "upstream.DeleteMember"
	var member models.Member
	if err := c.do(ctx, http.MethodDelete, MembersPath+"/"+url.PathEscape(id), token, nil, &member); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &member, nil
}

// RecomputeMemberStatuses asks the backend to recompute every membership
// status from the stored renewal dates.
func (c *Client) RecomputeMemberStatuses(ctx context.Context, token string) (string, error) {
	const op = "upstream.RecomputeMemberStatuses"
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, MembersPath+"/update-statuses", token, nil, &resp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return resp.Message, nil
}

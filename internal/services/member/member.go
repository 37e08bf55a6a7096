// Package member holds the member-facing business rules: cache-aside reads,
// invalidation of the member key family on every mutation, the membership
// status fallback and the check-in eligibility view.
package member

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cajimenez96/gym-console/internal/lib/sl"
	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/upstream"
)

// Cache keys for the member family. Mutations drop all of them: the active
// and expired subsets are computed by the backend and cannot be patched
// locally.
const (
	KeyMembers        = "members"
	KeyMembersActive  = "members:active"
	KeyMembersExpired = "members:expired"
	keyMemberPrefix   = "member:"
)

// Check-in desk verdict texts, as the console displays them.
const (
	StatusTextEnabled  = "Habilitado"
	StatusTextDisabled = "No Habilitado"
)

// Repository is the slice of the backend client this service needs.
type Repository interface {
	ListMembers(ctx context.Context, token string) ([]models.Member, error)
	GetMember(ctx context.Context, token, id string) (*models.Member, error)
	FindMemberByDNI(ctx context.Context, token, dni string) (*models.Member, error)
	ListActiveMembers(ctx context.Context, token string) ([]models.Member, error)
	ListExpiredMembers(ctx context.Context, token string) ([]models.Member, error)
	CreateMember(ctx context.Context, token string, req models.CreateMemberRequest) (*models.Member, error)
	UpdateMember(ctx context.Context, token, id string, req models.UpdateMemberRequest) (*models.Member, error)
	RenewMembership(ctx context.Context, token string, req models.RenewMembershipRequest) (*models.Member, error)
	DeleteMember(ctx context.Context, token, id string) (*models.Member, error)
	RecomputeMemberStatuses(ctx context.Context, token string) (string, error)
	ListPlans(ctx context.Context, token string) ([]models.MembershipPlan, error)
}

// Cache is the slice of the query cache this service needs.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Service implements the member operations.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	ttl   time.Duration
}

// New creates a member Service. ttl bounds how long cached reads survive.
func New(repo Repository, cache Cache, log *slog.Logger, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		ttl:   ttl,
	}
}

// List returns all members, cache-aside.
func (s *Service) List(ctx context.Context, token string) ([]models.Member, error) {
	return s.listCached(ctx, token, KeyMembers, s.repo.ListMembers)
}

// ListActive returns the backend-computed active subset, cache-aside.
func (s *Service) ListActive(ctx context.Context, token string) ([]models.Member, error) {
	return s.listCached(ctx, token, KeyMembersActive, s.repo.ListActiveMembers)
}

// ListExpired returns the backend-computed expired subset, cache-aside.
func (s *Service) ListExpired(ctx context.Context, token string) ([]models.Member, error) {
	return s.listCached(ctx, token, KeyMembersExpired, s.repo.ListExpiredMembers)
}

func (s *Service) listCached(ctx context.Context, token, key string, fetch func(context.Context, string) ([]models.Member, error)) ([]models.Member, error) {
	var cached []models.Member
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", key), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	members, err := fetch(ctx, token)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].MembershipStatus = s.effectiveStatus(members[i])
	}
	if err := s.cache.Set(ctx, key, members, s.ttl); err != nil {
		s.log.Warn("cache write failed", slog.String("key", key), sl.Err(err))
	}
	return members, nil
}

// Get returns one member by id, cache-aside.
func (s *Service) Get(ctx context.Context, token, id string) (*models.Member, error) {
	key := keyMemberPrefix + id
	var cached models.Member
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	member, err := s.repo.GetMember(ctx, token, id)
	if err != nil {
		return nil, err
	}
	member.MembershipStatus = s.effectiveStatus(*member)
	if err := s.cache.Set(ctx, key, member, s.ttl); err != nil {
		s.log.Warn("cache write failed", slog.String("key", key), sl.Err(err))
	}
	return member, nil
}

// FindByDNI looks a member up by national ID. Absence is not an error:
// a backend 404 maps to (nil, nil). Searches are never cached; the desk
// always sees fresh data.
func (s *Service) FindByDNI(ctx context.Context, token, dni string) (*models.Member, error) {
	member, err := s.repo.FindMemberByDNI(ctx, token, dni)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	member.MembershipStatus = s.effectiveStatus(*member)
	return member, nil
}

// Create registers a member and drops the member key family.
func (s *Service) Create(ctx context.Context, token string, req models.CreateMemberRequest) (*models.Member, error) {
	member, err := s.repo.CreateMember(ctx, token, req)
	if err != nil {
		return nil, err
	}
	s.invalidateFamily(ctx)
	s.log.Info("member registered", slog.String("id", member.ID))
	return member, nil
}

// Update applies a partial update and drops the member key family.
func (s *Service) Update(ctx context.Context, token, id string, req models.UpdateMemberRequest) (*models.Member, error) {
	member, err := s.repo.UpdateMember(ctx, token, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidateFamily(ctx)
	s.log.Info("member updated", slog.String("id", id))
	return member, nil
}

// Renew renews a membership by national ID and drops the member key family.
func (s *Service) Renew(ctx context.Context, token string, req models.RenewMembershipRequest) (*models.Member, error) {
	member, err := s.repo.RenewMembership(ctx, token, req)
	if err != nil {
		return nil, err
	}
	s.invalidateFamily(ctx)
	s.log.Info("membership renewed", slog.String("dni", req.DNI))
	return member, nil
}

// Delete removes a member and drops the member key family, so the next list
// read cannot resurrect the record.
func (s *Service) Delete(ctx context.Context, token, id string) (*models.Member, error) {
	member, err := s.repo.DeleteMember(ctx, token, id)
	if err != nil {
		return nil, err
	}
	s.invalidateFamily(ctx)
	s.log.Info("member deleted", slog.String("id", id))
	return member, nil
}

// RecomputeStatuses delegates the bulk status recompute to the backend and
// drops the member key family.
func (s *Service) RecomputeStatuses(ctx context.Context, token string) (string, error) {
	msg, err := s.repo.RecomputeMemberStatuses(ctx, token)
	if err != nil {
		return "", err
	}
	s.invalidateFamily(ctx)
	return msg, nil
}

// CheckInInfo builds the check-in desk view for a national ID: identity,
// membership window, resolved plan name and the enabled/disabled verdict.
// Returns (nil, nil) when no member matches.
func (s *Service) CheckInInfo(ctx context.Context, token, dni string) (*models.MemberCheckInInfo, error) {
	member, err := s.FindByDNI(ctx, token, dni)
	if err != nil || member == nil {
		return nil, err
	}

	var planName *string
	if member.MembershipPlanID != nil {
		plans, err := s.repo.ListPlans(ctx, token)
		if err != nil {
			return nil, err
		}
		for i := range plans {
			if plans[i].ID == *member.MembershipPlanID {
				planName = &plans[i].Name
				break
			}
		}
	}

	statusText := StatusTextDisabled
	if member.MembershipStatus == models.MembershipActive && member.Status == models.MemberActive {
		statusText = StatusTextEnabled
	}

	return &models.MemberCheckInInfo{
		ID:                   member.ID,
		FirstName:            member.FirstName,
		LastName:             member.LastName,
		StartDate:            member.StartDate,
		RenewalDate:          member.RenewalDate,
		PlanName:             planName,
		MembershipStatusText: statusText,
	}, nil
}

func (s *Service) invalidateFamily(ctx context.Context) {
	for _, key := range []string{KeyMembers, KeyMembersActive, KeyMembersExpired} {
		if err := s.cache.Invalidate(ctx, key); err != nil {
			s.log.Warn("cache invalidation failed", slog.String("key", key), sl.Err(err))
		}
	}
	if err := s.cache.InvalidatePrefix(ctx, keyMemberPrefix); err != nil {
		s.log.Warn("cache invalidation failed", slog.String("key", keyMemberPrefix), sl.Err(err))
	}
}

// effectiveStatus prefers the backend's membership status and derives one
// from the renewal date only when the backend omits the field.
func (s *Service) effectiveStatus(m models.Member) string {
	if m.MembershipStatus != "" {
		return m.MembershipStatus
	}
	renewal, err := parseDate(m.RenewalDate)
	if err != nil {
		s.log.Warn("unparseable renewal date", slog.String("id", m.ID), sl.Err(err))
		return models.MembershipExpired
	}
	if renewal.Before(time.Now().Truncate(24 * time.Hour)) {
		return models.MembershipExpired
	}
	return models.MembershipActive
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}

// Package checkin holds the attendance business rules. Check-ins are an
// append-only log: there is a list, a per-member filter and a create, nothing
// else.
package checkin

import (
	"context"
	"log/slog"
	"time"

	"github.com/cajimenez96/gym-console/internal/lib/sl"
	"github.com/cajimenez96/gym-console/internal/models"
)

// Cache keys for the check-in family.
const (
	KeyCheckIns           = "checkins"
	keyCheckInsByMemberFx = "checkins:member:"
)

// Repository is the slice of the backend client this service needs.
type Repository interface {
	ListCheckIns(ctx context.Context, token, memberID string) ([]models.CheckIn, error)
	CreateCheckIn(ctx context.Context, token string, req models.CreateCheckInRequest) (*models.CheckIn, error)
}

// Cache is the slice of the query cache this service needs.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Service implements the check-in operations.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	ttl   time.Duration
}

// New creates a check-in Service.
func New(repo Repository, cache Cache, log *slog.Logger, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		ttl:   ttl,
	}
}

// List returns attendance events, cache-aside, optionally filtered to one
// member.
func (s *Service) List(ctx context.Context, token, memberID string) ([]models.CheckIn, error) {
	key := KeyCheckIns
	if memberID != "" {
		key = keyCheckInsByMemberFx + memberID
	}

	var cached []models.CheckIn
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", key), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	checkIns, err := s.repo.ListCheckIns(ctx, token, memberID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, checkIns, s.ttl); err != nil {
		s.log.Warn("cache write failed", slog.String("key", key), sl.Err(err))
	}
	return checkIns, nil
}

// Create appends an attendance event. On failure the cache is untouched so
// the console's table stays consistent with the backend. On success the
// whole check-in family is dropped.
func (s *Service) Create(ctx context.Context, token string, req models.CreateCheckInRequest) (*models.CheckIn, error) {
	checkIn, err := s.repo.CreateCheckIn(ctx, token, req)
	if err != nil {
		return nil, err
	}
	if err := s.cache.InvalidatePrefix(ctx, KeyCheckIns); err != nil {
		s.log.Warn("cache invalidation failed", slog.String("key", KeyCheckIns), sl.Err(err))
	}
	s.log.Info("check-in recorded",
		slog.String("id", checkIn.ID),
		slog.String("member_id", checkIn.MemberID))
	return checkIn, nil
}

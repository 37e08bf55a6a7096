// Package plan holds the membership-plan business rules.
package plan

import (
	"context"
	"log/slog"
	"time"

	"github.com/cajimenez96/gym-console/internal/lib/sl"
	"github.com/cajimenez96/gym-console/internal/models"
)

// KeyPlans is the cache key for the plan list.
const KeyPlans = "plans"

// Repository is the slice of the backend client this service needs.
type Repository interface {
	ListPlans(ctx context.Context, token string) ([]models.MembershipPlan, error)
	CreatePlan(ctx context.Context, token string, req models.CreateMembershipPlanRequest) (*models.MembershipPlan, error)
	UpdatePlan(ctx context.Context, token, id string, req models.UpdateMembershipPlanRequest) (*models.MembershipPlan, error)
	DeletePlan(ctx context.Context, token, id string) error
}

// Cache is the slice of the query cache this service needs.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service implements the plan operations.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	ttl   time.Duration
}

// New creates a plan Service.
func New(repo Repository, cache Cache, log *slog.Logger, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		ttl:   ttl,
	}
}

// List returns all plans, cache-aside.
func (s *Service) List(ctx context.Context, token string) ([]models.MembershipPlan, error) {
	var cached []models.MembershipPlan
	found, err := s.cache.Get(ctx, KeyPlans, &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", KeyPlans), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListPlans(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, KeyPlans, plans, s.ttl); err != nil {
		s.log.Warn("cache write failed", slog.String("key", KeyPlans), sl.Err(err))
	}
	return plans, nil
}

// Create creates a plan and drops the cached list.
func (s *Service) Create(ctx context.Context, token string, req models.CreateMembershipPlanRequest) (*models.MembershipPlan, error) {
	plan, err := s.repo.CreatePlan(ctx, token, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("plan created", slog.String("id", plan.ID), slog.String("name", plan.Name))
	return plan, nil
}

// Update applies a partial update and drops the cached list.
func (s *Service) Update(ctx context.Context, token, id string, req models.UpdateMembershipPlanRequest) (*models.MembershipPlan, error) {
	plan, err := s.repo.UpdatePlan(ctx, token, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("plan updated", slog.String("id", id))
	return plan, nil
}

// Delete removes a plan and drops the cached list.
func (s *Service) Delete(ctx context.Context, token, id string) error {
	if err := s.repo.DeletePlan(ctx, token, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info("plan deleted", slog.String("id", id))
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, KeyPlans); err != nil {
		s.log.Warn("cache invalidation failed", slog.String("key", KeyPlans), sl.Err(err))
	}
}

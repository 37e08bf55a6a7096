// Package payment holds the payment business rules: the append-only history,
// the client-side join with member names, manual records and the external
// processor intent flow.
package payment

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cajimenez96/gym-console/internal/lib/sl"
	"github.com/cajimenez96/gym-console/internal/models"
)

// KeyPayments is the cache key for the payment history.
const KeyPayments = "payments"

// UnknownMemberName is used when a payment references a member the backend
// no longer returns.
const UnknownMemberName = "Unknown Member"

// Repository is the slice of the backend client this service needs.
type Repository interface {
	ListPayments(ctx context.Context, token string) ([]models.Payment, error)
	CreateManualPayment(ctx context.Context, token string, req models.ManualPaymentRequest) (*models.Payment, error)
	InitiatePayment(ctx context.Context, token string, req models.InitiatePaymentRequest) (*models.InitiatePaymentResponse, error)
	ConfirmPayment(ctx context.Context, token, paymentIntentID string) error
	ListMembers(ctx context.Context, token string) ([]models.Member, error)
}

// Cache is the slice of the query cache this service needs.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service implements the payment operations.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	ttl   time.Duration
}

// New creates a payment Service.
func New(repo Repository, cache Cache, log *slog.Logger, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		ttl:   ttl,
	}
}

// History returns the payment log, cache-aside.
func (s *Service) History(ctx context.Context, token string) ([]models.Payment, error) {
	var cached []models.Payment
	found, err := s.cache.Get(ctx, KeyPayments, &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", KeyPayments), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	payments, err := s.repo.ListPayments(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, KeyPayments, payments, s.ttl); err != nil {
		s.log.Warn("cache write failed", slog.String("key", KeyPayments), sl.Err(err))
	}
	return payments, nil
}

// HistoryWithMembers returns the payment log with each row enriched by the
// member's resolved name. Payments and members are fetched concurrently; the
// join happens here because the backend returns raw ids only.
func (s *Service) HistoryWithMembers(ctx context.Context, token string) ([]models.PaymentWithMember, error) {
	var (
		payments []models.Payment
		members  []models.Member
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payments, err = s.History(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.repo.ListMembers(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.FirstName + " " + m.LastName
	}

	result := make([]models.PaymentWithMember, 0, len(payments))
	for _, p := range payments {
		name, ok := names[p.MemberID]
		if !ok {
			name = UnknownMemberName
		}
		result = append(result, models.PaymentWithMember{Payment: p, MemberName: name})
	}
	return result, nil
}

// CreateManual records a staff-entered payment and drops the cached history.
func (s *Service) CreateManual(ctx context.Context, token string, req models.ManualPaymentRequest) (*models.Payment, error) {
	payment, err := s.repo.CreateManualPayment(ctx, token, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info("manual payment recorded",
		slog.String("id", payment.ID),
		slog.String("member_id", payment.MemberID))
	return payment, nil
}

// Initiate opens a processor intent through the backend. Nothing is cached:
// the intent is not a payment until confirmed.
func (s *Service) Initiate(ctx context.Context, token string, req models.InitiatePaymentRequest) (*models.InitiatePaymentResponse, error) {
	resp, err := s.repo.InitiatePayment(ctx, token, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("payment initiated", slog.String("intent_id", resp.PaymentIntentID))
	return resp, nil
}

// Confirm settles a processor intent and drops the cached history.
func (s *Service) Confirm(ctx context.Context, token, paymentIntentID string) error {
	if err := s.repo.ConfirmPayment(ctx, token, paymentIntentID); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info("payment confirmed", slog.String("intent_id", paymentIntentID))
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, KeyPayments); err != nil {
		s.log.Warn("cache invalidation failed", slog.String("key", KeyPayments), sl.Err(err))
	}
}

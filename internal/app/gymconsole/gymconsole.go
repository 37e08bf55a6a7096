// Package gymconsole assembles the admin console gateway: the upstream
// client, the durable session layer, the cached entity services and the
// HTTP server.
package gymconsole

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/cajimenez96/gym-console/internal/cache"
	"github.com/cajimenez96/gym-console/internal/config"
	"github.com/cajimenez96/gym-console/internal/lib/jwt"
	checkinservice "github.com/cajimenez96/gym-console/internal/services/checkin"
	memberservice "github.com/cajimenez96/gym-console/internal/services/member"
	paymentservice "github.com/cajimenez96/gym-console/internal/services/payment"
	planservice "github.com/cajimenez96/gym-console/internal/services/plan"
	"github.com/cajimenez96/gym-console/internal/session"
	"github.com/cajimenez96/gym-console/internal/upstream"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	upstreamClient := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.RequestTimeout)

	sessionStore := session.NewRedisStore(cacheRedis, cfg.Session.TokenTTL)
	sessions := session.NewManager(upstreamClient, sessionStore, logger, cfg.Session.RevalidateInterval)
	tokenMaker := jwt.NewMaker(cfg.Session.JWTSecretKey, cfg.Session.TokenTTL)

	memberService := memberservice.New(upstreamClient, cacheRedis, logger, cfg.Upstream.CacheTTL)
	planService := planservice.New(upstreamClient, cacheRedis, logger, cfg.Upstream.CacheTTL)
	checkinService := checkinservice.New(upstreamClient, cacheRedis, logger, cfg.Upstream.CacheTTL)
	paymentService := paymentservice.New(upstreamClient, cacheRedis, logger, cfg.Upstream.CacheTTL)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, cfg, Services{
		Sessions:   sessions,
		TokenMaker: tokenMaker,
		Members:    memberService,
		Plans:      planService,
		CheckIns:   checkinService,
		Payments:   paymentService,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.cache.Db.Close(); closeErr != nil {
			a.logger.Error("failed to close cache connection", slog.String("error", closeErr.Error()))
		}
		return err
	}
}

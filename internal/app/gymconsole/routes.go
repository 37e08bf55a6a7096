// Package gymconsole wires the console routes.
package gymconsole

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/cajimenez96/gym-console/internal/config"
	"github.com/cajimenez96/gym-console/internal/http/handlers/auth/login"
	"github.com/cajimenez96/gym-console/internal/http/handlers/auth/logout"
	"github.com/cajimenez96/gym-console/internal/http/handlers/auth/me"
	checkincreate "github.com/cajimenez96/gym-console/internal/http/handlers/checkin/create"
	checkinlist "github.com/cajimenez96/gym-console/internal/http/handlers/checkin/list"
	"github.com/cajimenez96/gym-console/internal/http/handlers/health"
	membercreate "github.com/cajimenez96/gym-console/internal/http/handlers/member/create"
	memberlist "github.com/cajimenez96/gym-console/internal/http/handlers/member/list"
	memberread "github.com/cajimenez96/gym-console/internal/http/handlers/member/read"
	"github.com/cajimenez96/gym-console/internal/http/handlers/member/recompute"
	memberremove "github.com/cajimenez96/gym-console/internal/http/handlers/member/remove"
	"github.com/cajimenez96/gym-console/internal/http/handlers/member/renew"
	"github.com/cajimenez96/gym-console/internal/http/handlers/member/searchdni"
	"github.com/cajimenez96/gym-console/internal/http/handlers/member/subset"
	memberupdate "github.com/cajimenez96/gym-console/internal/http/handlers/member/update"
	"github.com/cajimenez96/gym-console/internal/http/handlers/nav/resolve"
	"github.com/cajimenez96/gym-console/internal/http/handlers/payment/confirm"
	"github.com/cajimenez96/gym-console/internal/http/handlers/payment/initiate"
	paymentlist "github.com/cajimenez96/gym-console/internal/http/handlers/payment/list"
	"github.com/cajimenez96/gym-console/internal/http/handlers/payment/manual"
	"github.com/cajimenez96/gym-console/internal/http/handlers/payment/processorconfig"
	plancreate "github.com/cajimenez96/gym-console/internal/http/handlers/plan/create"
	planlist "github.com/cajimenez96/gym-console/internal/http/handlers/plan/list"
	planremove "github.com/cajimenez96/gym-console/internal/http/handlers/plan/remove"
	planupdate "github.com/cajimenez96/gym-console/internal/http/handlers/plan/update"
	"github.com/cajimenez96/gym-console/internal/http/middlewarectx"
	"github.com/cajimenez96/gym-console/internal/lib/jwt"
	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/nav"
	checkinservice "github.com/cajimenez96/gym-console/internal/services/checkin"
	memberservice "github.com/cajimenez96/gym-console/internal/services/member"
	paymentservice "github.com/cajimenez96/gym-console/internal/services/payment"
	planservice "github.com/cajimenez96/gym-console/internal/services/plan"
	"github.com/cajimenez96/gym-console/internal/session"
)

// Services bundles everything the routes need.
type Services struct {
	Sessions   *session.Manager
	TokenMaker jwt.Maker
	Members    *memberservice.Service
	Plans      *planservice.Service
	CheckIns   *checkinservice.Service
	Payments   *paymentservice.Service
}

// RegisterRoutes registers every console route on the router.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, svc Services) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Post("/login", login.New(logger, svc.Sessions, svc.TokenMaker).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Auth(svc.TokenMaker, svc.Sessions, logger))
			r.Use(middlewarectx.RateLimit(logger, cfg.RateLimit.RPS, cfg.RateLimit.Burst))

			r.Post("/logout", logout.New(logger, svc.Sessions).ServeHTTP)
			r.Get("/me", me.New(logger).ServeHTTP)

			// Pages shared by owner and admin: the member roster and the
			// check-in desk.
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoles(logger, models.RoleOwner, models.RoleAdmin))

				r.Get("/members", memberlist.New(logger, svc.Members).ServeHTTP)
				r.Get("/members/active", subset.New(logger, svc.Members, subset.Active).ServeHTTP)
				r.Get("/members/search/{dni}", searchdni.New(logger, svc.Members).ServeHTTP)
				r.Get("/members/{id}", memberread.New(logger, svc.Members).ServeHTTP)

				r.Get("/check-ins", checkinlist.New(logger, svc.CheckIns).ServeHTTP)
				r.Post("/check-ins", checkincreate.New(logger, svc.CheckIns).ServeHTTP)
			})

			// Everything that changes members, plans or money is owner only.
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoles(logger, models.RoleOwner))

				r.Post("/members", membercreate.New(logger, svc.Members).ServeHTTP)
				r.Put("/members/{id}", memberupdate.New(logger, svc.Members).ServeHTTP)
				r.Delete("/members/{id}", memberremove.New(logger, svc.Members).ServeHTTP)
				r.Patch("/members/{dni}/renew", renew.New(logger, svc.Members).ServeHTTP)
				r.Get("/members/expired", subset.New(logger, svc.Members, subset.Expired).ServeHTTP)
				r.Post("/members/update-statuses", recompute.New(logger, svc.Members).ServeHTTP)

				r.Get("/membership-plans", planlist.New(logger, svc.Plans).ServeHTTP)
				r.Post("/membership-plans", plancreate.New(logger, svc.Plans).ServeHTTP)
				r.Put("/membership-plans/{id}", planupdate.New(logger, svc.Plans).ServeHTTP)
				r.Delete("/membership-plans/{id}", planremove.New(logger, svc.Plans).ServeHTTP)

				r.Get("/payments", paymentlist.New(logger, svc.Payments).ServeHTTP)
				r.Post("/payments/manual", manual.New(logger, svc.Payments).ServeHTTP)
				r.Post("/payments/initiate", initiate.New(logger, svc.Payments).ServeHTTP)
				r.Post("/payments/confirm/{intentId}", confirm.New(logger, svc.Payments).ServeHTTP)
				r.Get("/payments/config", processorconfig.New(logger, cfg.Payments.PublishableKey).ServeHTTP)
			})
		})
	})

	// Console page routes. Each resolves against the navigation table and
	// answers with either the page or a redirect.
	pageResolver := resolve.New(logger, svc.TokenMaker, svc.Sessions)
	r.Get(nav.LoginRoute, pageResolver.ServeHTTP)
	for _, route := range nav.Table {
		r.Get(route.Path, pageResolver.ServeHTTP)
	}

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

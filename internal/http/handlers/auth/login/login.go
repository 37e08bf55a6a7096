// Package login implements the HTTP handler for console sign-in. It decodes
// and validates the credentials, delegates to the session manager and
// answers with the gateway session token, the identity and the role's
// default landing page.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/cajimenez96/gym-console/internal/http/response"
	"github.com/cajimenez96/gym-console/internal/lib/sl"
	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/nav"
	"github.com/cajimenez96/gym-console/internal/session"
)

// Service is the session operation this handler needs.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (*session.Session, error)
}

// TokenMaker issues gateway session tokens.
type TokenMaker interface {
	GenerateToken(sessionID, username, role string) (string, error)
}

// Handler handles sign-in requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	maker    TokenMaker
	validate *validator.Validate
}

// New creates a login Handler.
func New(log *slog.Logger, service Service, maker TokenMaker) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		maker:    maker,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Sign in
// @Description Authenticates against the gym backend and opens a gateway session.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} map[string]any "Session token, user and landing page"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 401 {object} response.ErrorResponse "Invalid credentials"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	sess, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			log.Warn("invalid credentials", slog.String("username", req.Username))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not sign in"))
		return
	}

	token, err := h.maker.GenerateToken(sess.ID, sess.User.Username, sess.User.Role)
	if err != nil {
		log.Error("failed to issue session token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not sign in"))
		return
	}

	log.Info("login success", slog.String("username", sess.User.Username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token":        token,
		"user":         sess.User,
		"default_page": nav.DefaultPage(sess.User.Role),
	}))
}

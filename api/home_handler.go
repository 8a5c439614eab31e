package api

import (
	"context"
	"net/http"
	"time"

	"github.com/igreja-site/cms-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type homeLoader interface {
	Load(ctx context.Context) (*services.HomePage, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type homeHandler struct {
	responder   Responder
	logger      zerolog.Logger
	home        homeLoader
	db          pinger
	startupTime time.Time
}

func newHomeHandler(home homeLoader, db pinger, startupTime time.Time) homeHandler {
	logger := log.With().Str("handlerName", "homeHandler").Logger()

	return homeHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		home:        home,
		db:          db,
		startupTime: startupTime,
	}
}

// HealthResponse reports whether the service and its database are up.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Uptime    string `json:"uptime"`
	StartedAt string `json:"started_at"`
}

// getHome returns everything the home page shows in one response
// @Summary Home page content
// @Tags Site
// @Produce json
// @Success 200 {object} services.HomePage
// @Router /home [get]
func (h homeHandler) getHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.home.Load(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("load", "home page", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// health
// @Summary Health check
// @Tags Site
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h homeHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{
			Status:    "ok",
			Database:  "ok",
			Uptime:    time.Since(h.startupTime).Round(time.Second).String(),
			StartedAt: h.startupTime.UTC().Format(time.RFC3339),
		}
		status := http.StatusOK
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("database ping failed")
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}
		h.responder.WriteJSONStatus(w, status, resp)
	}
}

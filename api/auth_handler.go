package api

import (
	"context"
	"net/http"
	"time"

	"github.com/igreja-site/cms-backend/errs"
	"github.com/igreja-site/cms-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authenticator interface {
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type authHandler struct {
	responder    Responder
	logger       zerolog.Logger
	auth         authenticator
	secureCookie bool
}

func newAuthHandler(auth authenticator, secureCookie bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		auth:         auth,
		secureCookie: secureCookie,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// login
// @Summary Admin login
// @Description Returns the token pair and sets it as HttpOnly cookies
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} services.TokenPair
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeAndValidate(r, "login", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		pair, err := h.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.setSession(w, pair)
		h.responder.WriteJSON(w, pair)
	}
}

// refresh trades a refresh token, from the body or the cookie, for a new pair.
func (h authHandler) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if r.ContentLength > 0 {
			if err := decodeJSON(r, "refresh", &req); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}
		if req.RefreshToken == "" {
			if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
				req.RefreshToken = cookie.Value
			}
		}
		if req.RefreshToken == "" {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		pair, err := h.auth.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.setSession(w, pair)
		h.responder.WriteJSON(w, pair)
	}
}

func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
			http.SetCookie(w, h.cookie(name, "", time.Unix(0, 0)))
		}
		h.responder.WriteNoContent(w)
	}
}

// me returns the admin behind the current session.
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ctxGetAdmin(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		h.responder.WriteJSON(w, map[string]any{
			"id":         claims.Subject,
			"email":      claims.Email,
			"expires_at": claims.ExpiresAt,
		})
	}
}

func (h authHandler) setSession(w http.ResponseWriter, pair *services.TokenPair) {
	http.SetCookie(w, h.cookie(accessTokenCookie, pair.AccessToken, pair.AccessExpiresAt))
	http.SetCookie(w, h.cookie(refreshTokenCookie, pair.RefreshToken, pair.RefreshExpiresAt))
}

func (h authHandler) cookie(name, value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		c.MaxAge = -1
	}
	return c
}

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/errs"
	"github.com/igreja-site/cms-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type singletonStore[T any] interface {
	Get(ctx context.Context) (*T, error)
	Upsert(ctx context.Context, row *T) (*T, error)
}

// singletonHandler serves a table holding one row, such as the site settings.
type singletonHandler[T any, PT entityRow[T]] struct {
	responder Responder
	logger    zerolog.Logger
	entity    string
	store     singletonStore[T]
}

func newSingletonHandler[T any, PT entityRow[T]](entity string, store singletonStore[T]) singletonHandler[T, PT] {
	logger := log.With().Str("handlerName", "singletonHandler").Str("entity", entity).Logger()

	return singletonHandler[T, PT]{
		responder: NewResponder(logger),
		logger:    logger,
		entity:    entity,
		store:     store,
	}
}

// get answers 404 until the row has been saved once.
func (h singletonHandler[T, PT]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, err := h.store.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", h.entity, err))
			return
		}
		h.responder.WriteJSON(w, row)
	}
}

func (h singletonHandler[T, PT]) put() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row := new(T)
		if err := decodeAndValidate(r, h.entity, row); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		PT(row).ClearIdentity()

		stored, err := h.store.Upsert(r.Context(), row)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save", h.entity, err))
			return
		}
		h.logger.Info().Msgf("%s saved", h.entity)
		h.responder.WriteJSON(w, stored)
	}
}

type departmentStore interface {
	FindAllWithMembers(ctx context.Context) ([]models.Department, error)
	FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*models.Department, error)
}

type memberStore interface {
	FindWhere(ctx context.Context, conds map[string]any) ([]models.DepartmentMember, error)
}

type pageBannerStore interface {
	FindWhere(ctx context.Context, conds map[string]any) ([]models.PageBanner, error)
}

// siteHandler holds the public routes that read across tables rather than
// listing one.
type siteHandler struct {
	responder   Responder
	logger      zerolog.Logger
	departments departmentStore
	members     memberStore
	pageBanners pageBannerStore
}

func newSiteHandler(departments departmentStore, members memberStore, pageBanners pageBannerStore) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		departments: departments,
		members:     members,
		pageBanners: pageBanners,
	}
}

// getDepartments lists the departments with their members, leaders first.
func (h siteHandler) getDepartments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		departments, err := h.departments.FindAllWithMembers(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "departments", err))
			return
		}
		h.responder.WriteJSON(w, departments)
	}
}

func (h siteHandler) getDepartment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		department, err := h.departments.FindByIDWithMembers(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "department", err))
			return
		}
		h.responder.WriteJSON(w, department)
	}
}

func (h siteHandler) getDepartmentMembers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		members, err := h.members.FindWhere(r.Context(), map[string]any{"department_id": id})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "department members", err))
			return
		}
		h.responder.WriteJSON(w, members)
	}
}

// getPageBanner returns the header of one inner page, such as "sobre".
func (h siteHandler) getPageBanner() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := strings.TrimSpace(chi.URLParam(r, "page"))
		if page == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("page"))
			return
		}

		banners, err := h.pageBanners.FindWhere(r.Context(), map[string]any{"page": page})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "page banner", err))
			return
		}
		if len(banners) == 0 {
			h.responder.WriteError(w, errs.NewNotFound("page banner"))
			return
		}
		h.responder.WriteJSON(w, banners[0])
	}
}

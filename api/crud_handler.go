package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// tableStore is the storage every peripheral content table offers.
type tableStore[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindWhere(ctx context.Context, conds map[string]any) ([]T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Add(ctx context.Context, row *T) error
	Update(ctx context.Context, id uuid.UUID, row *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type entityRow[T any] interface {
	*T
	ClearIdentity()
}

// crudHandler serves the list, get, create, update and delete routes of a
// table edited in the admin panel.
type crudHandler[T any, PT entityRow[T]] struct {
	responder    Responder
	logger       zerolog.Logger
	entity       string
	store        tableStore[T]
	publicFilter map[string]any
}

// newCrudHandler builds the handler for a table. publicFilter restricts the
// public listing, for example to active banners; nil lists every row.
func newCrudHandler[T any, PT entityRow[T]](entity string, store tableStore[T], publicFilter map[string]any) crudHandler[T, PT] {
	logger := log.With().Str("handlerName", "crudHandler").Str("entity", entity).Logger()

	return crudHandler[T, PT]{
		responder:    NewResponder(logger),
		logger:       logger,
		entity:       entity,
		store:        store,
		publicFilter: publicFilter,
	}
}

func (h crudHandler[T, PT]) listPublic() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.store.FindWhere(r.Context(), h.publicFilter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", h.entity, err))
			return
		}
		h.responder.WriteJSON(w, rows)
	}
}

func (h crudHandler[T, PT]) listAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.store.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", h.entity, err))
			return
		}
		h.responder.WriteJSON(w, rows)
	}
}

func (h crudHandler[T, PT]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		row, err := h.store.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", h.entity, err))
			return
		}
		h.responder.WriteJSON(w, row)
	}
}

func (h crudHandler[T, PT]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row := new(T)
		if err := decodeAndValidate(r, h.entity, row); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		PT(row).ClearIdentity()

		if err := h.store.Add(r.Context(), row); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", h.entity, err))
			return
		}
		h.logger.Info().Msgf("%s created", h.entity)
		h.responder.WriteJSONStatus(w, http.StatusCreated, row)
	}
}

func (h crudHandler[T, PT]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		row := new(T)
		if err := decodeAndValidate(r, h.entity, row); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Update(r.Context(), id, row); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", h.entity, err))
			return
		}

		stored, err := h.store.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", h.entity, err))
			return
		}
		h.responder.WriteJSON(w, stored)
	}
}

func (h crudHandler[T, PT]) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", h.entity, err))
			return
		}
		h.logger.Info().Str("id", id.String()).Msgf("%s deleted", h.entity)
		h.responder.WriteNoContent(w)
	}
}

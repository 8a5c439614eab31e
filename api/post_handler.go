package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/content"
	"github.com/igreja-site/cms-backend/database"
	"github.com/igreja-site/cms-backend/errs"
	"github.com/igreja-site/cms-backend/models"
	"github.com/igreja-site/cms-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	defaultPostPageSize = 12
	maxPostPageSize     = 50
)

// postReader is the read side of the post table used by the public routes.
type postReader interface {
	FindAll(ctx context.Context, filter database.PostFilter) ([]models.Post, error)
	Count(ctx context.Context, filter database.PostFilter) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Post, error)
	FindRelated(ctx context.Context, id uuid.UUID, publishedOnly bool) ([]models.Post, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     postReader
	authoring *services.PostAuthoring
	baseURL   string
}

func newPostHandler(posts postReader, authoring *services.PostAuthoring, baseURL string) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
		authoring: authoring,
		baseURL:   baseURL,
	}
}

// PostPage is one page of a post listing.
type PostPage struct {
	Posts  []models.Post `json:"posts"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// PublicPost is a post as served to the site, with its canonical URL and the
// published posts it links to.
type PublicPost struct {
	models.Post
	URL         string `json:"url"`
	ReadingTime int    `json:"reading_time"`
}

// AdminPost is the editor view of a stored post.
type AdminPost struct {
	Form   content.PostForm `json:"form"`
	Report content.Report   `json:"report"`
}

type slugRequest struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type slugResponse struct {
	Slug  string `json:"slug"`
	Valid bool   `json:"valid"`
}

func (h postHandler) filterFromQuery(r *http.Request, publishedOnly bool) (database.PostFilter, error) {
	q := r.URL.Query()
	filter := database.PostFilter{
		Type:          models.PostType(strings.TrimSpace(q.Get("type"))),
		Tag:           strings.TrimSpace(q.Get("tag")),
		PublishedOnly: publishedOnly,
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return filter, errs.NewInvalidFieldError("type", "must be blog or study")
	}

	limit, err := intQuery(r, "limit", defaultPostPageSize)
	if err != nil {
		return filter, err
	}
	if limit == 0 {
		limit = defaultPostPageSize
	}
	filter.Limit = min(limit, maxPostPageSize)

	if filter.Offset, err = intQuery(r, "offset", 0); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h postHandler) listPosts(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	filter, err := h.filterFromQuery(r, publishedOnly)
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	posts, err := h.posts.FindAll(r.Context(), filter)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "posts", err))
		return
	}
	total, err := h.posts.Count(r.Context(), filter)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("count", "posts", err))
		return
	}

	h.responder.WriteJSON(w, PostPage{Posts: posts, Total: total, Limit: filter.Limit, Offset: filter.Offset})
}

// getPublishedPosts lists published posts, newest first
// @Summary List published posts
// @Tags Posts
// @Produce json
// @Param type query string false "blog or study"
// @Param tag query string false "Tag filter"
// @Param limit query int false "Page size (max 50)"
// @Param offset query int false "Offset"
// @Success 200 {object} PostPage
// @Failure 400 {object} ErrorResponse
// @Router /posts [get]
func (h postHandler) getPublishedPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.listPosts(w, r, true)
	}
}

// getPublishedPost serves a published post by slug and counts the view.
// Posts saved without a slug are reachable by id.
// @Summary Get a published post
// @Tags Posts
// @Produce json
// @Param slug path string true "Post slug or id"
// @Success 200 {object} PublicPost
// @Failure 404 {object} ErrorResponse
// @Router /posts/{slug} [get]
func (h postHandler) getPublishedPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		slug := chi.URLParam(r, "slug")

		post, err := h.posts.FindBySlug(ctx, slug, true)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if id, parseErr := uuid.Parse(slug); parseErr == nil {
				post, err = h.posts.FindByID(ctx, id)
				if err == nil && !post.Published {
					err = gorm.ErrRecordNotFound
				}
			}
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "post", err))
			return
		}

		if err := h.posts.IncrementViews(ctx, post.ID); err != nil {
			h.logger.Warn().Err(err).Str("postID", post.ID.String()).Msg("failed to count post view")
		} else {
			post.Views++
		}

		related, err := h.posts.FindRelated(ctx, post.ID, true)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "related posts", err))
			return
		}
		post.RelatedPosts = related

		h.responder.WriteJSON(w, PublicPost{
			Post:        *post,
			URL:         services.BuildPostURL(h.baseURL, *post),
			ReadingTime: content.ReadingTime(post.Content.Body),
		})
	}
}

// getAllPosts lists every post, drafts included
// @Summary List posts (admin)
// @Tags Admin Posts
// @Produce json
// @Success 200 {object} PostPage
// @Router /admin/posts [get]
func (h postHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.listPosts(w, r, false)
	}
}

// getPost loads a post into the authoring form with its current report
// @Summary Get a post for editing
// @Tags Admin Posts
// @Produce json
// @Param postID path string true "Post ID"
// @Success 200 {object} AdminPost
// @Failure 404 {object} ErrorResponse
// @Router /admin/posts/{postID} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		form, err := h.authoring.Load(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, AdminPost{Form: form, Report: h.authoring.Validate(form)})
	}
}

// createPost saves a new post
// @Summary Create a post
// @Description Validates the form, stores the post and its related posts. Only an invalid slug or a missing title stops the save; the report carries every advisory finding.
// @Tags Admin Posts
// @Accept json
// @Produce json
// @Param post body content.PostForm true "Post form"
// @Success 201 {object} services.SaveResult
// @Failure 400 {object} ErrorResponse
// @Router /admin/posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := content.NewPostForm()
		if err := decodeJSON(r, "post", &form); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		form.ID = uuid.Nil

		h.save(w, r, form, http.StatusCreated)
	}
}

// updatePost overwrites a post with the submitted form
// @Summary Update a post
// @Tags Admin Posts
// @Accept json
// @Produce json
// @Param postID path string true "Post ID"
// @Param post body content.PostForm true "Post form"
// @Success 200 {object} services.SaveResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/posts/{postID} [put]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		form := content.NewPostForm()
		if err := decodeJSON(r, "post", &form); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		form.ID = id

		h.save(w, r, form, http.StatusOK)
	}
}

func (h postHandler) save(w http.ResponseWriter, r *http.Request, form content.PostForm, status int) {
	result, err := h.authoring.Save(r.Context(), form)
	if err != nil {
		if result != nil && services.IsBlocked(err) {
			h.responder.WriteErrorWith(w, err, map[string]any{"report": result.Report})
			return
		}
		h.responder.WriteError(w, err)
		return
	}
	h.responder.WriteJSONStatus(w, status, result)
}

// deletePost removes a post and its related post links
// @Summary Delete a post
// @Tags Admin Posts
// @Param postID path string true "Post ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /admin/posts/{postID} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.authoring.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}

// validatePost runs the validators without saving
// @Summary Validate a post form
// @Tags Admin Posts
// @Accept json
// @Produce json
// @Param post body content.PostForm true "Post form"
// @Success 200 {object} content.Report
// @Router /admin/posts/validate [post]
func (h postHandler) validatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := content.NewPostForm()
		if err := decodeJSON(r, "post", &form); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.authoring.Validate(form))
	}
}

// generateSlug turns a title into a slug, or checks a slug typed by hand
// @Summary Generate or check a slug
// @Tags Admin Posts
// @Accept json
// @Produce json
// @Success 200 {object} slugResponse
// @Router /admin/slug [post]
func (h postHandler) generateSlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req slugRequest
		if err := decodeJSON(r, "slug", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		slug := strings.TrimSpace(req.Slug)
		if slug == "" {
			if strings.TrimSpace(req.Title) == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
				return
			}
			slug = content.GenerateSlug(req.Title)
		}
		h.responder.WriteJSON(w, slugResponse{Slug: slug, Valid: content.ValidateSlug(slug)})
	}
}

// getRelatedCandidates searches posts that may be linked from the post.
// Use "new" as the id while the post is not saved yet.
// @Summary Search related post candidates
// @Tags Admin Posts
// @Produce json
// @Param postID path string true "Post ID or new"
// @Param q query string false "Title search"
// @Param limit query int false "Max results (max 50)"
// @Success 200 {array} services.Candidate
// @Router /admin/posts/{postID}/related-candidates [get]
func (h postHandler) getRelatedCandidates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := uuid.Nil
		if chi.URLParam(r, "postID") != "new" {
			id, err := uuidParam(r, "postID")
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			postID = id
		}

		limit, err := intQuery(r, "limit", 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		candidates, err := h.authoring.SearchCandidates(r.Context(), postID, r.URL.Query().Get("q"), limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, candidates)
	}
}

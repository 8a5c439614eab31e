package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/content"
	"github.com/igreja-site/cms-backend/errs"
	"github.com/igreja-site/cms-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	excerptLength         = 160
	defaultCandidateLimit = 10
	maxCandidateLimit     = 50
)

// PostStore is the post table as seen by the authoring flow.
type PostStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
	Search(ctx context.Context, query string, exclude uuid.UUID, limit int) ([]models.Post, error)
	Add(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RelationStore holds the directed related-post edges.
type RelationStore interface {
	FindByPost(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
	ReplaceForPost(ctx context.Context, postID uuid.UUID, related []uuid.UUID) error
}

// Notifier is told when a post goes live.
type Notifier interface {
	PostPublished(ctx context.Context, post models.Post) error
}

// PostAuthoring validates and persists posts written in the admin panel.
type PostAuthoring struct {
	posts       PostStore
	relations   RelationStore
	thresholds  content.Thresholds
	uniqueSlugs bool
	notifier    Notifier
	logger      zerolog.Logger
}

type PostAuthoringOption func(*PostAuthoring)

// WithUniqueSlugs rejects a save whose slug is already used by another post.
// Off by default: storage does not require unique slugs and the public lookup
// resolves collisions to the oldest post.
func WithUniqueSlugs(enabled bool) PostAuthoringOption {
	return func(s *PostAuthoring) {
		s.uniqueSlugs = enabled
	}
}

func WithNotifier(n Notifier) PostAuthoringOption {
	return func(s *PostAuthoring) {
		s.notifier = n
	}
}

func NewPostAuthoring(posts PostStore, relations RelationStore, thresholds content.Thresholds, opts ...PostAuthoringOption) *PostAuthoring {
	s := &PostAuthoring{
		posts:      posts,
		relations:  relations,
		thresholds: thresholds,
		logger:     log.With().Str("serviceName", "postAuthoring").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveResult is the stored post with the advisory report of the save.
type SaveResult struct {
	Post    models.Post    `json:"post"`
	Related []uuid.UUID    `json:"related"`
	Report  content.Report `json:"report"`
}

// Candidate is a post offered in the related post picker.
type Candidate struct {
	ID    uuid.UUID       `json:"id"`
	Title string          `json:"title"`
	Slug  *string         `json:"slug,omitempty"`
	Type  models.PostType `json:"type"`
}

// Prepare fills what the editor left for the system to derive: the slug from
// the title and the excerpt from the body.
func (s *PostAuthoring) Prepare(f content.PostForm) content.PostForm {
	if f.Slug == "" && f.Title != "" {
		f = content.Reduce(f, content.RegenerateSlug{})
	}
	if f.Excerpt == "" && f.Body != "" {
		f = content.Reduce(f, content.SetExcerpt{Excerpt: content.DeriveExcerpt(f.Body, excerptLength)})
	}
	return f
}

// Validate reports on the form as it would be saved.
func (s *PostAuthoring) Validate(f content.PostForm) content.Report {
	return s.thresholds.Validate(s.Prepare(f))
}

// Load returns the stored post as an editable form.
func (s *PostAuthoring) Load(ctx context.Context, id uuid.UUID) (content.PostForm, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return content.PostForm{}, errs.NewDatabaseError("find", "post", err)
	}
	related, err := s.relations.FindByPost(ctx, id)
	if err != nil {
		return content.PostForm{}, errs.NewDatabaseError("find", "post_relations", err)
	}
	return content.FormFromPost(*post, related), nil
}

// Save stores the form. Only an invalid slug or a missing required field
// stops it; every other finding is returned in the report.
//
// The post row is written first and its related edges replaced second. The
// two writes are not atomic: when the second fails the post is kept and the
// error says the edges may be stale.
func (s *PostAuthoring) Save(ctx context.Context, f content.PostForm) (*SaveResult, error) {
	f = s.Prepare(f)
	report := s.thresholds.Validate(f)

	if !report.CanSave() {
		return &SaveResult{Report: report}, errs.NewInvalidSlugError(f.Slug, content.CheckSlug(f.Slug))
	}
	if err := s.checkRequired(f); err != nil {
		return &SaveResult{Report: report}, err
	}
	if s.uniqueSlugs && f.Slug != "" {
		taken, err := s.posts.SlugTaken(ctx, f.Slug, f.ID)
		if err != nil {
			return nil, errs.NewDatabaseError("check", "post slug", err)
		}
		if taken {
			return &SaveResult{Report: report}, errs.NewConflictError("slug already used by another post: " + f.Slug)
		}
	}

	post := f.ToPost()
	wasPublished := false
	if f.ID == uuid.Nil {
		if err := s.posts.Add(ctx, &post); err != nil {
			return nil, errs.NewDatabaseError("create", "post", err)
		}
		s.logger.Info().Str("postID", post.ID.String()).Str("slug", f.Slug).Msg("post created")
	} else {
		existing, err := s.posts.FindByID(ctx, f.ID)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "post", err)
		}
		wasPublished = existing.Published
		if err := s.posts.Update(ctx, &post); err != nil {
			return nil, errs.NewDatabaseError("update", "post", err)
		}
		s.logger.Info().Str("postID", post.ID.String()).Str("slug", f.Slug).Msg("post updated")
	}

	related := content.SanitizeRelated(post.ID, f.Related)
	if err := s.relations.ReplaceForPost(ctx, post.ID, related); err != nil {
		s.logger.Error().Err(err).Str("postID", post.ID.String()).Msg("post saved but related posts were not replaced")
		return nil, errs.NewDatabaseError("replace", "post_relations", err)
	}

	stored, err := s.posts.FindByID(ctx, post.ID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}

	if stored.Published && !wasPublished && s.notifier != nil {
		if err := s.notifier.PostPublished(ctx, *stored); err != nil {
			s.logger.Warn().Err(err).Str("postID", stored.ID.String()).Msg("failed to send publication notice")
		}
	}

	return &SaveResult{Post: *stored, Related: related, Report: report}, nil
}

func (s *PostAuthoring) checkRequired(f content.PostForm) error {
	switch {
	case f.Title == "":
		return errs.NewMissingRequiredFieldError("title")
	case !f.Type.Valid():
		return errs.NewInvalidFieldError("type", "must be blog or study")
	case !f.SchemaType.Valid():
		return errs.NewInvalidFieldError("schema_type", "must be Article, BlogPosting or Study")
	}
	return nil
}

// Delete removes the post and its relation edges.
func (s *PostAuthoring) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "post", err)
	}
	s.logger.Info().Str("postID", id.String()).Msg("post deleted")
	return nil
}

// SearchCandidates lists posts the editor may link from postID.
func (s *PostAuthoring) SearchCandidates(ctx context.Context, postID uuid.UUID, query string, limit int) ([]Candidate, error) {
	if limit <= 0 {
		limit = defaultCandidateLimit
	}
	limit = min(limit, maxCandidateLimit)

	posts, err := s.posts.Search(ctx, query, postID, limit)
	if err != nil {
		return nil, errs.NewDatabaseError("search", "posts", err)
	}
	candidates := make([]Candidate, 0, len(posts))
	for _, p := range posts {
		if p.ID == postID {
			continue
		}
		candidates = append(candidates, Candidate{ID: p.ID, Title: p.Content.Title, Slug: p.Slug, Type: p.Type})
	}
	return candidates, nil
}

// IsBlocked reports whether err came from a save stopped by validation
// rather than by storage.
func IsBlocked(err error) bool {
	return errs.IsInvalidSlugError(err) || errs.IsMissingRequiredFieldError(err) ||
		errs.IsInvalidFieldError(err) || errs.IsConflict(err)
}

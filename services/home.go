package services

import (
	"context"
	"errors"
	"time"

	"github.com/igreja-site/cms-backend/database"
	"github.com/igreja-site/cms-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	homeEventLimit = 6
	homePostLimit  = 3
)

type bannerLister interface {
	FindWhere(ctx context.Context, conds map[string]any) ([]models.Banner, error)
}

type eventQuerier interface {
	Query(ctx context.Context, where string, args ...any) ([]models.Event, error)
}

type testimonialLister interface {
	FindWhere(ctx context.Context, conds map[string]any) ([]models.Testimonial, error)
}

type postLister interface {
	FindAll(ctx context.Context, filter database.PostFilter) ([]models.Post, error)
}

type settingsGetter interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
}

// HomePage is everything the public home page shows.
type HomePage struct {
	Banners       []models.Banner      `json:"banners"`
	Events        []models.Event       `json:"events"`
	Testimonials  []models.Testimonial `json:"testimonials"`
	LatestPosts   []models.Post        `json:"latest_posts"`
	LatestStudies []models.Post        `json:"latest_studies"`
	Settings      *models.SiteSettings `json:"settings"`
}

type HomeService struct {
	banners      bannerLister
	events       eventQuerier
	testimonials testimonialLister
	posts        postLister
	settings     settingsGetter
	now          func() time.Time
	logger       zerolog.Logger
}

func NewHomeService(banners bannerLister, events eventQuerier, testimonials testimonialLister, posts postLister, settings settingsGetter) *HomeService {
	return &HomeService{
		banners:      banners,
		events:       events,
		testimonials: testimonials,
		posts:        posts,
		settings:     settings,
		now:          time.Now,
		logger:       log.With().Str("serviceName", "home").Logger(),
	}
}

// Load fetches the home page sections concurrently. Any failure cancels the
// remaining queries. Missing site settings are not an error.
func (s *HomeService) Load(ctx context.Context) (*HomePage, error) {
	var page HomePage
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		banners, err := s.banners.FindWhere(ctx, map[string]any{"active": true})
		page.Banners = banners
		return err
	})
	g.Go(func() error {
		events, err := s.events.Query(ctx, "published = ? AND starts_at >= ?", true, s.now())
		if len(events) > homeEventLimit {
			events = events[:homeEventLimit]
		}
		page.Events = events
		return err
	})
	g.Go(func() error {
		testimonials, err := s.testimonials.FindWhere(ctx, map[string]any{"approved": true})
		page.Testimonials = testimonials
		return err
	})
	g.Go(func() error {
		posts, err := s.posts.FindAll(ctx, database.PostFilter{Type: models.PostTypeBlog, PublishedOnly: true, Limit: homePostLimit})
		page.LatestPosts = posts
		return err
	})
	g.Go(func() error {
		studies, err := s.posts.FindAll(ctx, database.PostFilter{Type: models.PostTypeStudy, PublishedOnly: true, Limit: homePostLimit})
		page.LatestStudies = studies
		return err
	})
	g.Go(func() error {
		settings, err := s.settings.Get(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		page.Settings = settings
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to load home page")
		return nil, err
	}
	return &page, nil
}

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/igreja-site/cms-backend/database"
	"github.com/igreja-site/cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubBanners struct{ conds map[string]any }

func (s *stubBanners) FindWhere(ctx context.Context, conds map[string]any) ([]models.Banner, error) {
	s.conds = conds
	return []models.Banner{{Title: "Bem-vindo"}}, nil
}

type stubEvents struct {
	n   int
	err error
}

func (s stubEvents) Query(ctx context.Context, where string, args ...any) ([]models.Event, error) {
	return make([]models.Event, s.n), s.err
}

type stubTestimonials struct{}

func (stubTestimonials) FindWhere(ctx context.Context, conds map[string]any) ([]models.Testimonial, error) {
	return []models.Testimonial{{Name: "Ana"}}, nil
}

type stubPosts struct {
	mu      sync.Mutex
	filters []database.PostFilter
}

func (s *stubPosts) FindAll(ctx context.Context, filter database.PostFilter) ([]models.Post, error) {
	s.mu.Lock()
	s.filters = append(s.filters, filter)
	s.mu.Unlock()
	return []models.Post{{Type: filter.Type}}, nil
}

type stubSettings struct{ err error }

func (s stubSettings) Get(ctx context.Context) (*models.SiteSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.SiteSettings{SiteName: "Igreja"}, nil
}

func TestHomeServiceLoad(t *testing.T) {
	banners := &stubBanners{}
	posts := &stubPosts{}
	svc := NewHomeService(banners, stubEvents{n: 10}, stubTestimonials{}, posts, stubSettings{})
	svc.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	page, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, page.Banners, 1)
	assert.Equal(t, map[string]any{"active": true}, banners.conds)
	assert.Len(t, page.Events, homeEventLimit)
	assert.Len(t, page.Testimonials, 1)
	require.Len(t, page.LatestPosts, 1)
	assert.Equal(t, models.PostTypeBlog, page.LatestPosts[0].Type)
	require.Len(t, page.LatestStudies, 1)
	assert.Equal(t, models.PostTypeStudy, page.LatestStudies[0].Type)
	require.NotNil(t, page.Settings)
	assert.Equal(t, "Igreja", page.Settings.SiteName)

	for _, f := range posts.filters {
		assert.True(t, f.PublishedOnly)
		assert.Equal(t, homePostLimit, f.Limit)
	}
}

func TestHomeServiceMissingSettings(t *testing.T) {
	svc := NewHomeService(&stubBanners{}, stubEvents{}, stubTestimonials{}, &stubPosts{}, stubSettings{err: gorm.ErrRecordNotFound})

	page, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, page.Settings)
}

func TestHomeServiceFailure(t *testing.T) {
	boom := errors.New("boom")
	svc := NewHomeService(&stubBanners{}, stubEvents{err: boom}, stubTestimonials{}, &stubPosts{}, stubSettings{})

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/content"
	"github.com/igreja-site/cms-backend/database"
	"github.com/igreja-site/cms-backend/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdminEmail    = "secretaria@igreja.org"
	testAdminPassword = "senha-de-teste"
	testOrigin        = "http://localhost:3000"
)

type testEnv struct {
	db     database.Database
	router http.Handler
	token  string
}

type envOption func(*Services)

func withMedia(media *services.MediaService) envOption {
	return func(s *Services) {
		s.Media = media
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	db := database.New(gdb)
	require.NoError(t, db.Migrate())

	auth := services.NewAuthService(db.AdminUserRepo(), "segredo-de-teste", 15*time.Minute, time.Hour)
	require.NoError(t, auth.EnsureAdmin(context.Background(), testAdminEmail, testAdminPassword))

	svc := Services{
		Auth:  auth,
		Posts: services.NewPostAuthoring(db.PostRepo(), db.PostRelationRepo(), content.DefaultThresholds()),
		Home:  services.NewHomeService(db.BannerRepo(), db.EventRepo(), db.TestimonialRepo(), db.PostRepo(), db.SiteSettingsRepo()),
	}
	for _, opt := range opts {
		opt(&svc)
	}

	cfg := map[string]string{
		"ACCEPTED_ORIGINS":  testOrigin,
		"HTTP_LOG_REQUESTS": "false",
		"SITE_BASE_URL":     "https://igreja.example/",
		"COOKIE_SECURE":     "false",
	}
	env := &testEnv{
		db:     db,
		router: newRouter(db, svc, withConfig(cfg), withStartupTime(time.Now())),
	}

	pair, err := auth.Login(context.Background(), testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	env.token = pair.AccessToken
	return env
}

// do sends body as JSON. Admin requests carry the bearer token.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if strings.HasPrefix(path, "/admin") {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB returns a migrated in-memory sqlite database private to the test.
func newTestDB(t *testing.T) Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	d := New(db)
	require.NoError(t, d.Migrate())
	return d
}

func strPtr(s string) *string {
	return &s
}

func addPost(t *testing.T, d Database, title, slug string, mutate ...func(*models.Post)) *models.Post {
	t.Helper()
	p := &models.Post{
		Slug:       strPtr(slug),
		Type:       models.PostTypeBlog,
		SchemaType: models.SchemaBlogPosting,
		Content: models.Content{
			Title: title,
			Body:  "<p>" + title + "</p>",
			Tags:  []string{},
		},
		Published: true,
	}
	for _, m := range mutate {
		m(p)
	}
	require.NoError(t, d.PostRepo().Add(context.Background(), p))
	return p
}

func at(minutesAgo int) func(*models.Post) {
	return func(p *models.Post) {
		p.CreatedAt = time.Now().Add(-time.Duration(minutesAgo) * time.Minute)
	}
}

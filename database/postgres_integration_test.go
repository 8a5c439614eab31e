//go:build integration
// +build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/errs"
	"github.com/igreja-site/cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupPostgres starts a PostgreSQL container and returns a migrated Database.
func setupPostgres(t *testing.T) Database {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("cms"),
		postgres.WithUsername("cms"),
		postgres.WithPassword("cms"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	d := New(db)
	require.NoError(t, d.Migrate())
	return d
}

func TestPostgresPostLifecycle(t *testing.T) {
	d := setupPostgres(t)
	ctx := context.Background()

	a := addPost(t, d, "Oração", "oracao", func(p *models.Post) { p.Content.Tags = []string{"oração", "fé"} })
	b := addPost(t, d, "Louvor", "louvor", func(p *models.Post) { p.Content.Tags = []string{"louvor"} })

	tagged, err := d.PostRepo().FindAll(ctx, PostFilter{Tag: "fé", PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, a.ID, tagged[0].ID)

	require.NoError(t, d.PostRelationRepo().ReplaceForPost(ctx, a.ID, []uuid.UUID{b.ID}))
	require.NoError(t, d.PostRelationRepo().ReplaceForPost(ctx, a.ID, []uuid.UUID{b.ID}))
	related, err := d.PostRepo().FindRelated(ctx, a.ID, true)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, b.ID, related[0].ID)

	require.NoError(t, d.PostRepo().Delete(ctx, b.ID))
	related, err = d.PostRepo().FindRelated(ctx, a.ID, false)
	require.NoError(t, err)
	assert.Empty(t, related)
}

func TestPostgresErrorMapping(t *testing.T) {
	d := setupPostgres(t)
	ctx := context.Background()

	a := addPost(t, d, "A", "a")
	err := d.PostRelationRepo().ReplaceForPost(ctx, a.ID, []uuid.UUID{uuid.New()})
	require.Error(t, err)
	assert.True(t, errs.IsForeignKeyConstraintError(errs.NewDatabaseError("replace", "post_relations", err)))

	require.NoError(t, d.AdminUserRepo().Add(ctx, &models.AdminUser{Email: "a@igreja.org", PasswordHash: "x"}))
	err = d.AdminUserRepo().Add(ctx, &models.AdminUser{Email: "a@igreja.org", PasswordHash: "y"})
	require.Error(t, err)
	assert.True(t, errs.IsUniqueConstraintViolationError(errs.NewDatabaseError("add", "admin_users", err)))
}

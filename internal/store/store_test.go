// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"

	"coffeesmile/internal/database"
	"coffeesmile/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "coffeesmile")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "coffeesmile")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testPool opens a connection pool to the test database and runs
// migrations. If the database is unavailable, the test is skipped.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()
	pool, err := database.Connect(ctx, testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(pool); err != nil {
		pool.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(pool.Close)
	return pool
}

// testCategory creates a throwaway category and registers cleanup.
func testCategory(t *testing.T, pool *pgxpool.Pool) *models.Category {
	t.Helper()

	ctx := context.Background()
	s := NewCategoryStore(pool)
	c, err := s.Create(ctx, &models.Category{
		Name: "Test " + uuid.NewString()[:8],
		Slug: "test-" + uuid.NewString()[:8],
	})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() {
		pool.Exec(ctx, "DELETE FROM posts WHERE category_id = $1", c.ID)
		pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", c.ID)
	})
	return c
}

// testPost builds a minimal valid post for the given category, with
// the lifecycle stamp applied for published posts.
func testPost(category *models.Category, status models.PostStatus) *models.Post {
	p := &models.Post{
		Title:       "Test Post",
		Slug:        "test-post-" + uuid.NewString()[:8],
		Content:     "Some readable test content with enough words to count.",
		Tags:        []string{"test"},
		CategoryID:  category.ID,
		Author:      "Administrador",
		ReadingTime: 1,
	}
	p.ApplyStatus(status, time.Now())
	return p
}

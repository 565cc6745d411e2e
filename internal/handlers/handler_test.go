// handler_test.go provides a shared test server for handler integration
// tests, wired through the production router so the auth middleware is
// exercised too. Tests are skipped if PostgreSQL is not available; the
// response cache is left disabled so results are never stale between
// requests.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"

	"coffeesmile/internal/database"
	"coffeesmile/internal/feed"
	"coffeesmile/internal/handlers"
	"coffeesmile/internal/router"
	"coffeesmile/internal/store"
)

const testToken = "handler-test-token"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "coffeesmile")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "coffeesmile")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

type testServer struct {
	handler http.Handler
	pool    *pgxpool.Pool
}

// newTestServer wires real stores and handlers over the test database
// behind the production router.
func newTestServer(t *testing.T) *testServer {
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

	posts := store.NewPostStore(pool)
	categories := store.NewCategoryStore(pool)
	site := feed.Site{BaseURL: "https://blog.example.com", Title: "CoffeeSmile", Description: "Testes"}

	public := handlers.NewPublic(posts, categories, nil, pool, site, true)
	admin := handlers.NewAdmin(posts, categories, nil)

	return &testServer{
		handler: router.New(public, admin, testToken, nil),
		pool:    pool,
	}
}

// do issues a request against the test server. A non-empty token is
// sent as a bearer credential.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// decodeData unmarshals the {data: ...} envelope into dst.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rr.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

// createCategory creates a category through the API and registers
// cleanup of it and any posts created under it. Returns the id and
// slug of the new category.
func (ts *testServer) createCategory(t *testing.T) (uuid.UUID, string) {
	t.Helper()

	rr := ts.do(t, http.MethodPost, "/admin/categories", testToken, map[string]string{
		"name": "Teste " + uuid.NewString()[:8],
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create category: got %d (%s)", rr.Code, rr.Body.String())
	}

	var cat struct {
		ID   uuid.UUID `json:"id"`
		Slug string    `json:"slug"`
	}
	decodeData(t, rr, &cat)

	t.Cleanup(func() {
		ctx := context.Background()
		ts.pool.Exec(ctx, "DELETE FROM posts WHERE category_id = $1", cat.ID)
		ts.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", cat.ID)
	})
	return cat.ID, cat.Slug
}

// postBody builds a minimal valid post payload.
func postBody(categoryID uuid.UUID, status string) map[string]any {
	return map[string]any{
		"title":      "Artigo de teste",
		"slug":       "artigo-teste-" + uuid.NewString()[:8],
		"content":    "Conteúdo de teste com palavras suficientes para ler.",
		"tags":       []string{"teste"},
		"status":     status,
		"categoryId": categoryID.String(),
		"author":     "Administrador",
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the content API.
// Handlers are grouped by concern (public, admin) and receive their
// dependencies through the handler struct.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"coffeesmile/internal/api"
	"coffeesmile/internal/cache"
	"coffeesmile/internal/feed"
	"coffeesmile/internal/middleware"
	"coffeesmile/internal/models"
	"coffeesmile/internal/query"
	"coffeesmile/internal/store"
)

// Public groups the reader-facing handlers. Responses for anonymous
// callers are served from the Valkey response cache when fresh;
// privileged callers always bypass the cache because their view
// includes drafts.
type Public struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	respCache  *cache.ResponseCache
	pool       *pgxpool.Pool
	site       feed.Site
	strict     bool
	started    time.Time
}

// NewPublic creates a new Public handler group. respCache may be nil
// when Valkey is not configured. strict controls whether listing
// storage failures surface as 503 or degrade to an empty result.
func NewPublic(posts *store.PostStore, categories *store.CategoryStore, respCache *cache.ResponseCache, pool *pgxpool.Pool, site feed.Site, strict bool) *Public {
	return &Public{
		posts:      posts,
		categories: categories,
		respCache:  respCache,
		pool:       pool,
		site:       site,
		strict:     strict,
		started:    time.Now(),
	}
}

// serveCached writes a previously cached body, if one exists for key.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key, contentType string) bool {
	body, ok := p.respCache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(body)
	return true
}

// writeAndCache sends body and stores it under key for ttl.
func (p *Public) writeAndCache(w http.ResponseWriter, r *http.Request, key, contentType string, body []byte, ttl time.Duration) {
	p.respCache.Set(r.Context(), key, body, ttl)
	w.Header().Set("Content-Type", contentType)
	w.Write(body)
}

const jsonContentType = "application/json; charset=utf-8"

// ListPosts handles GET /posts: filtered, paginated summaries of
// published posts. Privileged callers may additionally filter by
// status, including drafts.
func (p *Public) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	privileged := middleware.IsPrivileged(ctx)

	q, err := query.Parse(r.URL.Query(), query.Options{
		Privileged:   privileged,
		DefaultLimit: query.PublicDefaultLimit,
	})
	if err != nil {
		api.WriteError(w, err)
		return
	}

	cacheKey := "posts:" + r.URL.RawQuery
	if !privileged && p.serveCached(w, r, cacheKey, jsonContentType) {
		return
	}

	degraded := false
	posts, total, err := p.posts.List(ctx, q)
	if err != nil {
		if p.strict {
			api.WriteError(w, err)
			return
		}
		// Reader pages would rather show an empty shelf than an error.
		slog.Error("list posts failed, serving empty result", "error", err)
		posts, total, degraded = nil, 0, true
	}

	resp := api.ListResponse{
		Data: summarizeAll(posts, q.IncludeContent),
		Meta: query.NewMeta(q.Page, q.Limit, total),
	}
	body, err := json.Marshal(resp)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if privileged || degraded {
		w.Header().Set("Content-Type", jsonContentType)
		w.Write(body)
		return
	}
	p.writeAndCache(w, r, cacheKey, jsonContentType, body, cache.ListTTL)
}

// GetPost handles GET /posts/{slug}: the full post plus up to three
// related published posts. Unpublished posts are invisible to
// anonymous callers; privileged callers see drafts and may pass a post
// id instead of a slug.
func (p *Public) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	privileged := middleware.IsPrivileged(ctx)
	slugParam := chi.URLParam(r, "slug")

	cacheKey := "post:" + slugParam
	if !privileged && p.serveCached(w, r, cacheKey, jsonContentType) {
		return
	}

	var (
		post *models.Post
		err  error
	)
	if id, parseErr := uuid.Parse(slugParam); parseErr == nil && privileged {
		post, err = p.posts.FindByID(ctx, id)
	} else {
		post, err = p.posts.FindBySlug(ctx, slugParam, privileged)
	}
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if post == nil {
		api.WriteError(w, api.NotFound("Artigo não encontrado."))
		return
	}

	related, err := p.posts.Related(ctx, post, 3)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	body, err := json.Marshal(api.DataResponse{Data: detail(post, related)})
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if privileged {
		w.Header().Set("Content-Type", jsonContentType)
		w.Write(body)
		return
	}
	p.writeAndCache(w, r, cacheKey, jsonContentType, body, cache.DetailTTL)
}

// Categories handles GET /categories: every category with its count of
// published posts, ordered by name.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "categories"
	if p.serveCached(w, r, cacheKey, jsonContentType) {
		return
	}

	degraded := false
	cats, err := p.categories.List(r.Context())
	if err != nil {
		if p.strict {
			api.WriteError(w, err)
			return
		}
		slog.Error("list categories failed, serving empty result", "error", err)
		cats, degraded = nil, true
	}
	if cats == nil {
		cats = []models.Category{}
	}

	body, err := json.Marshal(api.DataResponse{Data: cats})
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if degraded {
		w.Header().Set("Content-Type", jsonContentType)
		w.Write(body)
		return
	}
	p.writeAndCache(w, r, cacheKey, jsonContentType, body, cache.DetailTTL)
}

// Feed handles GET /feed.xml: an RSS 2.0 document over all published
// posts, newest first, with the rendered article body in
// content:encoded.
func (p *Public) Feed(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "feed"
	const contentType = "application/rss+xml; charset=utf-8"
	if p.serveCached(w, r, cacheKey, contentType) {
		return
	}

	posts, err := p.posts.AllPublished(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}

	rss, err := feed.RSS(p.site, postPtrs(posts), time.Now())
	if err != nil {
		api.WriteError(w, err)
		return
	}
	p.writeAndCache(w, r, cacheKey, contentType, []byte(rss), cache.DetailTTL)
}

// Sitemap handles GET /sitemap.xml: home, the about page, every
// category and every published post.
func (p *Public) Sitemap(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "sitemap"
	const contentType = "application/xml; charset=utf-8"
	if p.serveCached(w, r, cacheKey, contentType) {
		return
	}

	ctx := r.Context()
	posts, err := p.posts.AllPublished(ctx)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	cats, err := p.categories.List(ctx)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	body, err := feed.Sitemap(p.site, postPtrs(posts), categoryPtrs(cats), p.started)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	p.writeAndCache(w, r, cacheKey, contentType, body, cache.DetailTTL)
}

// Health handles GET /health: a database ping with a short deadline.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := p.pool.Ping(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		api.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func postPtrs(posts []models.Post) []*models.Post {
	out := make([]*models.Post, len(posts))
	for i := range posts {
		out[i] = &posts[i]
	}
	return out
}

func categoryPtrs(cats []models.Category) []*models.Category {
	out := make([]*models.Category, len(cats))
	for i := range cats {
		out[i] = &cats[i]
	}
	return out
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"coffeesmile/internal/api"
	"coffeesmile/internal/cache"
	"coffeesmile/internal/excerpt"
	"coffeesmile/internal/models"
	"coffeesmile/internal/query"
	"coffeesmile/internal/store"
)

// Admin groups the editorial handlers. Every successful write clears
// the response cache, since a single change can affect listings,
// related posts, the feed, and the sitemap at once.
type Admin struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	respCache  *cache.ResponseCache
}

// NewAdmin creates a new Admin handler group. respCache may be nil when
// Valkey is not configured.
func NewAdmin(posts *store.PostStore, categories *store.CategoryStore, respCache *cache.ResponseCache) *Admin {
	return &Admin{posts: posts, categories: categories, respCache: respCache}
}

// decodeBody parses the JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return api.Validation("Corpo do pedido inválido.")
	}
	return nil
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, api.Validation("Identificador inválido.")
	}
	return id, nil
}

// --- Posts ---

// ListPosts handles GET /admin/posts: all statuses visible, default
// page size 10.
func (a *Admin) ListPosts(w http.ResponseWriter, r *http.Request) {
	q, err := query.Parse(r.URL.Query(), query.Options{
		Privileged:   true,
		DefaultLimit: query.AdminDefaultLimit,
	})
	if err != nil {
		api.WriteError(w, err)
		return
	}

	posts, total, err := a.posts.List(r.Context(), q)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.ListResponse{
		Data: summarizeAll(posts, q.IncludeContent),
		Meta: query.NewMeta(q.Page, q.Limit, total),
	})
}

// CreatePost handles POST /admin/posts.
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in postInput
	if err := decodeBody(r, &in); err != nil {
		api.WriteError(w, err)
		return
	}
	if err := validatePost(&in); err != nil {
		api.WriteError(w, err)
		return
	}

	post := in.toPost()
	post.ReadingTime = excerpt.ReadingTime(post.Content)
	post.ApplyStatus(in.Status, time.Now())

	created, err := a.posts.Create(r.Context(), post)
	if err != nil {
		if store.IsUniqueViolation(err) {
			api.WriteError(w, api.Conflict("Já existe um artigo com este slug."))
			return
		}
		if store.IsForeignKeyViolation(err) {
			api.WriteError(w, api.Validation("Categoria inexistente."))
			return
		}
		api.WriteError(w, err)
		return
	}

	a.respCache.InvalidateAll(r.Context())
	api.WriteJSON(w, http.StatusCreated, api.DataResponse{Data: summarize(created, true)})
}

// GetPost handles GET /admin/posts/{id}: lookup by id, drafts included.
func (a *Admin) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	post, err := a.posts.FindByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if post == nil {
		api.WriteError(w, api.NotFound("Artigo não encontrado."))
		return
	}
	api.WriteData(w, summarize(post, true))
}

// UpdatePost handles PUT /admin/posts/{id}: full replacement of the
// editable fields. Reading time is recomputed and the first-publish
// timestamp is preserved across status transitions.
func (a *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	var in postInput
	if err := decodeBody(r, &in); err != nil {
		api.WriteError(w, err)
		return
	}
	if err := validatePost(&in); err != nil {
		api.WriteError(w, err)
		return
	}

	existing, err := a.posts.FindByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if existing == nil {
		api.WriteError(w, api.NotFound("Artigo não encontrado."))
		return
	}

	post := in.toPost()
	post.ID = existing.ID
	post.PublishedAt = existing.PublishedAt
	post.ReadingTime = excerpt.ReadingTime(post.Content)
	post.ApplyStatus(in.Status, time.Now())

	if err := a.posts.Update(r.Context(), post); err != nil {
		if store.IsUniqueViolation(err) {
			api.WriteError(w, api.Conflict("Já existe um artigo com este slug."))
			return
		}
		if store.IsForeignKeyViolation(err) {
			api.WriteError(w, api.Validation("Categoria inexistente."))
			return
		}
		api.WriteError(w, err)
		return
	}

	updated, err := a.posts.FindByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	a.respCache.InvalidateAll(r.Context())
	api.WriteData(w, summarize(updated, true))
}

// PatchStatus handles PATCH /admin/posts/{id}: status toggle only.
func (a *Admin) PatchStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	var in statusInput
	if err := decodeBody(r, &in); err != nil {
		api.WriteError(w, err)
		return
	}
	if !models.ValidStatus(in.Status) {
		api.WriteError(w, api.Validation("Estado inválido."))
		return
	}

	post, err := a.posts.FindByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if post == nil {
		api.WriteError(w, api.NotFound("Artigo não encontrado."))
		return
	}

	post.ApplyStatus(in.Status, time.Now())
	if err := a.posts.Update(r.Context(), post); err != nil {
		api.WriteError(w, err)
		return
	}

	// Refetch so the response carries the row's own updated_at.
	updated, err := a.posts.FindByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	a.respCache.InvalidateAll(r.Context())
	api.WriteData(w, summarize(updated, false))
}

// DeletePost handles DELETE /admin/posts/{id}.
func (a *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	found, err := a.posts.Delete(r.Context(), id)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if !found {
		api.WriteError(w, api.NotFound("Artigo não encontrado."))
		return
	}

	a.respCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// --- Categories ---

// CreateCategory handles POST /admin/categories.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if err := decodeBody(r, &in); err != nil {
		api.WriteError(w, err)
		return
	}
	if err := validateCategory(&in); err != nil {
		api.WriteError(w, err)
		return
	}

	created, err := a.categories.Create(r.Context(), &models.Category{Name: in.Name, Slug: in.Slug})
	if err != nil {
		if store.IsUniqueViolation(err) {
			api.WriteError(w, api.Conflict("Já existe uma categoria com este slug."))
			return
		}
		api.WriteError(w, err)
		return
	}

	a.respCache.InvalidateAll(r.Context())
	api.WriteJSON(w, http.StatusCreated, api.DataResponse{Data: created})
}

// UpdateCategory handles PUT /admin/categories/{id}.
func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	var in categoryInput
	if err := decodeBody(r, &in); err != nil {
		api.WriteError(w, err)
		return
	}
	if err := validateCategory(&in); err != nil {
		api.WriteError(w, err)
		return
	}

	cat := &models.Category{ID: id, Name: in.Name, Slug: in.Slug}
	found, err := a.categories.Update(r.Context(), cat)
	if err != nil {
		if store.IsUniqueViolation(err) {
			api.WriteError(w, api.Conflict("Já existe uma categoria com este slug."))
			return
		}
		api.WriteError(w, err)
		return
	}
	if !found {
		api.WriteError(w, api.NotFound("Categoria não encontrada."))
		return
	}

	a.respCache.InvalidateAll(r.Context())
	api.WriteData(w, cat)
}

// DeleteCategory handles DELETE /admin/categories/{id}. Deletion is
// blocked while posts still reference the category.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	found, err := a.categories.Delete(r.Context(), id)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			api.WriteError(w, api.Conflict("Categoria possui artigos associados."))
			return
		}
		api.WriteError(w, err)
		return
	}
	if !found {
		api.WriteError(w, api.NotFound("Categoria não encontrada."))
		return
	}

	a.respCache.InvalidateAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

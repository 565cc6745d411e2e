// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package query compiles raw listing parameters into a validated,
// storage-agnostic filter plus normalized pagination. The same compiled
// query drives both the count and the fetch so the two can never
// diverge.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"coffeesmile/internal/api"
	"coffeesmile/internal/models"
)

// Sort orders a listing. Only recency is supported; anything else is a
// validation error on every path.
type Sort string

// SortRecent orders by publish date descending.
const SortRecent Sort = "recent"

const (
	// MaxLimit bounds the page size on every path.
	MaxLimit = 50
	// PublicDefaultLimit is the page size of the public listing.
	PublicDefaultLimit = 9
	// AdminDefaultLimit is the page size of the editorial listing.
	AdminDefaultLimit = 10

	maxSearchLen = 80
	maxTokenLen  = 64
)

// Filter is the storage-agnostic predicate compiled from the query
// string. Zero values mean "no restriction" except Status, which is
// always set.
type Filter struct {
	// Status restricts by publish state. Empty means any status and is
	// only reachable on the privileged path.
	Status models.PostStatus
	// CategorySlug restricts to posts whose category slug equals it.
	CategorySlug string
	// Tag restricts to posts whose tag set contains it exactly.
	Tag string
	// Search matches title or excerpt case-insensitively.
	Search string
}

// Query is a compiled listing request.
type Query struct {
	Filter         Filter
	Page           int
	Limit          int
	Sort           Sort
	IncludeContent bool
}

// Offset returns the row offset handed to storage. Pages large enough
// to overflow the multiplication pin to the maximum offset, which
// yields the same empty page a merely out-of-range page does.
func (q *Query) Offset() int {
	page := q.Page - 1
	if q.Limit > 0 && page > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return page * q.Limit
}

// Options configures Parse for the calling surface.
type Options struct {
	// Privileged callers may filter by any status, including drafts.
	Privileged bool
	// DefaultLimit is the page size applied when limit is absent.
	DefaultLimit int
}

// Parse validates and normalizes raw query parameters. Malformed input
// yields a single api.Validation error; requesting draft visibility
// without privilege yields api.Unauthorized. Well-formed input never
// fails.
func Parse(values url.Values, opts Options) (*Query, error) {
	q := &Query{
		Page:  1,
		Limit: opts.DefaultLimit,
		Sort:  SortRecent,
	}
	if q.Limit <= 0 {
		q.Limit = PublicDefaultLimit
	}

	// The public listing only ever sees published posts; the editorial
	// listing defaults to every status.
	if !opts.Privileged {
		q.Filter.Status = models.PostStatusPublished
	}

	if raw := param(values, "page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, api.Validation("Parâmetro page inválido.")
		}
		q.Page = page
	}

	// limit and pageSize are aliases; limit wins when both are present.
	rawLimit := param(values, "limit")
	if rawLimit == "" {
		rawLimit = param(values, "pageSize")
	}
	if rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit < 1 || limit > MaxLimit {
			return nil, api.Validation("Parâmetro limit inválido.")
		}
		q.Limit = limit
	}

	if raw := param(values, "sort"); raw != "" {
		if Sort(raw) != SortRecent {
			return nil, api.Validation("Parâmetro sort inválido.")
		}
	}

	if raw := param(values, "status"); raw != "" {
		status := models.PostStatus(raw)
		if !models.ValidStatus(status) {
			return nil, api.Validation("Parâmetro status inválido.")
		}
		if status != models.PostStatusPublished && !opts.Privileged {
			return nil, api.Unauthorized("Não autorizado.")
		}
		q.Filter.Status = status
	}

	// category and categorySlug are aliases; category wins.
	category := param(values, "category")
	if category == "" {
		category = param(values, "categorySlug")
	}
	if len(category) > maxTokenLen {
		return nil, api.Validation("Parâmetro category inválido.")
	}
	q.Filter.CategorySlug = category

	tag := param(values, "tag")
	if len(tag) > maxTokenLen {
		return nil, api.Validation("Parâmetro tag inválido.")
	}
	q.Filter.Tag = tag

	search := param(values, "q")
	if len(search) > maxSearchLen {
		return nil, api.Validation("Parâmetro q inválido.")
	}
	q.Filter.Search = search

	if raw := param(values, "include"); raw != "" {
		if raw != "content" {
			return nil, api.Validation("Parâmetro include inválido.")
		}
		q.IncludeContent = true
	}

	return q, nil
}

// param returns the trimmed value of key; empty after trimming counts
// as absent.
func param(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package feed builds the RSS 2.0 feed and the XML sitemap for the
// public reader surface. Both operate on published posts only.
package feed

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	"coffeesmile/internal/excerpt"
	"coffeesmile/internal/markdown"
	"coffeesmile/internal/models"
)

// Site carries the public identity of the blog used in feed metadata
// and absolute URLs.
type Site struct {
	BaseURL     string
	Title       string
	Description string
	Language    string
}

// PostURL returns the absolute reader URL of a post.
func (s Site) PostURL(slug string) string {
	return s.BaseURL + "/posts/" + slug
}

// CategoryURL returns the absolute reader URL of a category listing.
func (s Site) CategoryURL(slug string) string {
	return s.BaseURL + "/categorias/" + slug
}

// RSS renders an RSS 2.0 document over the given posts. Each item's
// description is the derived excerpt and the full article body is
// rendered to HTML and carried in content:encoded. Posts are expected
// to be published and ordered newest first by the caller.
func RSS(site Site, posts []*models.Post, now time.Time) (string, error) {
	f := &feeds.Feed{
		Title:       site.Title,
		Link:        &feeds.Link{Href: site.BaseURL},
		Description: site.Description,
		Created:     now,
	}
	if len(posts) > 0 && posts[0].PublishedAt != nil {
		f.Updated = *posts[0].PublishedAt
	}

	for _, p := range posts {
		html, err := markdown.ToHTML(p.Content)
		if err != nil {
			return "", fmt.Errorf("render post %q: %w", p.Slug, err)
		}

		item := &feeds.Item{
			Id:          site.PostURL(p.Slug),
			Title:       p.Title,
			Link:        &feeds.Link{Href: site.PostURL(p.Slug)},
			Description: excerpt.Derive(p.Excerpt, p.Content),
			Content:     html,
		}
		if p.PublishedAt != nil {
			item.Created = *p.PublishedAt
		}
		if p.AuthorName != nil {
			item.Author = &feeds.Author{Name: *p.AuthorName}
		} else if p.Author != "" {
			item.Author = &feeds.Author{Name: p.Author}
		}
		f.Items = append(f.Items, item)
	}

	return f.ToRss()
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feed

import (
	"encoding/xml"
	"fmt"
	"time"

	"coffeesmile/internal/models"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap renders an XML urlset covering the home page, the about page,
// every category listing and every published post. fallback is used as
// lastmod for entries without their own timestamps; callers pass a fixed
// per-process time so unchanged data never appears to regress.
func Sitemap(site Site, posts []*models.Post, categories []*models.Category, fallback time.Time) ([]byte, error) {
	set := urlSet{
		Xmlns: sitemapNamespace,
		URLs: []sitemapURL{
			{
				Loc:        site.BaseURL,
				LastMod:    fallback.UTC().Format(time.RFC3339),
				ChangeFreq: "daily",
				Priority:   "1.0",
			},
			{
				Loc:        site.BaseURL + "/sobre",
				LastMod:    fallback.UTC().Format(time.RFC3339),
				ChangeFreq: "monthly",
				Priority:   "0.5",
			},
		},
	}

	for _, c := range categories {
		lastMod := c.UpdatedAt
		if lastMod.IsZero() {
			lastMod = fallback
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        site.CategoryURL(c.Slug),
			LastMod:    lastMod.UTC().Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	for _, p := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        site.PostURL(p.Slug),
			LastMod:    postLastMod(p, fallback).UTC().Format(time.RFC3339),
			ChangeFreq: "monthly",
			Priority:   "0.8",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// postLastMod picks the most meaningful modification time for a post
// entry: last edit, then publication, then the process-wide fallback.
func postLastMod(p *models.Post, fallback time.Time) time.Time {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt
	}
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return fallback
}

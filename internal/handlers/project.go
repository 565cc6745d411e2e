// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"time"

	"github.com/google/uuid"

	"coffeesmile/internal/excerpt"
	"coffeesmile/internal/models"
)

// CategoryRef is the category shape embedded in post projections. The
// published-post count belongs to the category listing only, so the
// embedded form carries just the identifying fields.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// PostSummary is the listing projection of a post. Content is omitted
// unless the caller asked for include=content. The excerpt is always
// the derived excerpt, never the raw stored column.
type PostSummary struct {
	ID                 uuid.UUID         `json:"id"`
	Title              string            `json:"title"`
	Slug               string            `json:"slug"`
	Excerpt            string            `json:"excerpt"`
	Content            string            `json:"content,omitempty"`
	Tags               []string          `json:"tags"`
	Status             models.PostStatus `json:"status"`
	Category           *CategoryRef      `json:"category,omitempty"`
	Author             string            `json:"author"`
	AuthorName         *string           `json:"authorName,omitempty"`
	BookTitle          *string           `json:"bookTitle,omitempty"`
	BookAuthor         *string           `json:"bookAuthor,omitempty"`
	BookTranslator     *string           `json:"bookTranslator,omitempty"`
	BookYear           *int              `json:"bookYear,omitempty"`
	BookPublisher      *string           `json:"bookPublisher,omitempty"`
	BookPages          *int              `json:"bookPages,omitempty"`
	AmazonURL          *string           `json:"amazonUrl,omitempty"`
	CoverImageURL      *string           `json:"coverImageUrl,omitempty"`
	CoverImagePublicID *string           `json:"coverImagePublicId,omitempty"`
	ReadingTime        int               `json:"readingTime"`
	PublishedAt        *time.Time        `json:"publishedAt,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// PostDetail is the single-post projection: the summary plus the full
// content and up to three related published posts.
type PostDetail struct {
	PostSummary
	RelatedPosts []PostSummary `json:"relatedPosts"`
}

// summarize projects a post for listings.
func summarize(p *models.Post, includeContent bool) PostSummary {
	s := PostSummary{
		ID:                 p.ID,
		Title:              p.Title,
		Slug:               p.Slug,
		Excerpt:            excerpt.Derive(p.Excerpt, p.Content),
		Tags:               p.Tags,
		Status:             p.Status,
		Category:           categoryRef(p.Category),
		Author:             p.Author,
		AuthorName:         p.AuthorName,
		BookTitle:          p.BookTitle,
		BookAuthor:         p.BookAuthor,
		BookTranslator:     p.BookTranslator,
		BookYear:           p.BookYear,
		BookPublisher:      p.BookPublisher,
		BookPages:          p.BookPages,
		AmazonURL:          p.AmazonURL,
		CoverImageURL:      p.CoverImageURL,
		CoverImagePublicID: p.CoverImagePublicID,
		ReadingTime:        p.ReadingTime,
		PublishedAt:        p.PublishedAt,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if includeContent {
		s.Content = p.Content
	}
	return s
}

// categoryRef projects a joined category for embedding.
func categoryRef(c *models.Category) *CategoryRef {
	if c == nil {
		return nil
	}
	return &CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// summarizeAll projects a slice of posts for a listing response.
func summarizeAll(posts []models.Post, includeContent bool) []PostSummary {
	out := make([]PostSummary, 0, len(posts))
	for i := range posts {
		out = append(out, summarize(&posts[i], includeContent))
	}
	return out
}

// detail projects a post with its content and related posts.
func detail(p *models.Post, related []models.Post) PostDetail {
	return PostDetail{
		PostSummary:  summarize(p, true),
		RelatedPosts: summarizeAll(related, false),
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// ValidStatus reports whether s is a known post status.
func ValidStatus(s PostStatus) bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// MaxTags is the maximum number of tags a post may carry.
const MaxTags = 20

// Post is a blog post. Book metadata fields are set as a group for book
// review posts; when any of them is present the affiliate AmazonURL must
// be present too (enforced at write validation).
type Post struct {
	ID                 uuid.UUID  `json:"id"`
	Title              string     `json:"title"`
	Slug               string     `json:"slug"`
	Excerpt            string     `json:"excerpt"`
	Content            string     `json:"content"`
	Tags               []string   `json:"tags"`
	Status             PostStatus `json:"status"`
	CategoryID         uuid.UUID  `json:"categoryId"`
	Author             string     `json:"author"`
	AuthorName         *string    `json:"authorName,omitempty"`
	BookTitle          *string    `json:"bookTitle,omitempty"`
	BookAuthor         *string    `json:"bookAuthor,omitempty"`
	BookTranslator     *string    `json:"bookTranslator,omitempty"`
	BookYear           *int       `json:"bookYear,omitempty"`
	BookPublisher      *string    `json:"bookPublisher,omitempty"`
	BookPages          *int       `json:"bookPages,omitempty"`
	AmazonURL          *string    `json:"amazonUrl,omitempty"`
	CoverImageURL      *string    `json:"coverImageUrl,omitempty"`
	CoverImagePublicID *string    `json:"coverImagePublicId,omitempty"`
	ReadingTime        int        `json:"readingTime"`
	PublishedAt        *time.Time `json:"publishedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`

	// Populated by store methods that join the categories table.
	Category *Category `json:"category,omitempty"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// ApplyStatus transitions the post to the given status and stamps
// PublishedAt on the first publish. The timestamp records first
// publication and is permanent: republishing after a demotion to draft
// keeps the original value, and demoting never clears it.
func (p *Post) ApplyStatus(status PostStatus, now time.Time) {
	p.Status = status
	if status == PostStatusPublished && p.PublishedAt == nil {
		t := now
		p.PublishedAt = &t
	}
}

// HasBookMetadata reports whether any book field is set.
func (p *Post) HasBookMetadata() bool {
	return p.BookTitle != nil || p.BookAuthor != nil || p.BookTranslator != nil ||
		p.BookYear != nil || p.BookPublisher != nil || p.BookPages != nil
}

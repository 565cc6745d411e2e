// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"coffeesmile/internal/api"
	"coffeesmile/internal/models"
	"coffeesmile/internal/slug"
)

// Validation limits for post fields.
const (
	minTitleLen   = 3
	maxTitleLen   = 300
	minSlugLen    = 3
	maxSlugLen    = 300
	minContentLen = 10
	maxContentLen = 100_000
	maxExcerptLen = 1_000
)

// postInput is the request body for post create and full update.
type postInput struct {
	Title              string            `json:"title"`
	Slug               string            `json:"slug"`
	Excerpt            string            `json:"excerpt"`
	Content            string            `json:"content"`
	Tags               []string          `json:"tags"`
	Status             models.PostStatus `json:"status"`
	CategoryID         string            `json:"categoryId"`
	Author             string            `json:"author"`
	AuthorName         *string           `json:"authorName"`
	BookTitle          *string           `json:"bookTitle"`
	BookAuthor         *string           `json:"bookAuthor"`
	BookTranslator     *string           `json:"bookTranslator"`
	BookYear           *int              `json:"bookYear"`
	BookPublisher      *string           `json:"bookPublisher"`
	BookPages          *int              `json:"bookPages"`
	AmazonURL          *string           `json:"amazonUrl"`
	CoverImageURL      *string           `json:"coverImageUrl"`
	CoverImagePublicID *string           `json:"coverImagePublicId"`
}

// statusInput is the request body for the status toggle.
type statusInput struct {
	Status models.PostStatus `json:"status"`
}

// categoryInput is the request body for category create and update.
type categoryInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// validatePost normalizes the input in place and returns a validation
// error describing the first problem found. A missing slug is generated
// from the title; a missing status defaults to draft.
func validatePost(in *postInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if utf8.RuneCountInString(in.Title) < minTitleLen {
		return api.Validation("Título deve ter pelo menos 3 caracteres.")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		return api.Validation("Título demasiado longo (máximo 300 caracteres).")
	}

	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Title)
	}
	if utf8.RuneCountInString(in.Slug) < minSlugLen {
		return api.Validation("Slug deve ter pelo menos 3 caracteres.")
	}
	if utf8.RuneCountInString(in.Slug) > maxSlugLen {
		return api.Validation("Slug demasiado longo (máximo 300 caracteres).")
	}
	if !slug.Valid(in.Slug) {
		return api.Validation("Slug deve conter apenas letras minúsculas, números e hífenes.")
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.Content)) < minContentLen {
		return api.Validation("Conteúdo deve ter pelo menos 10 caracteres.")
	}
	if utf8.RuneCountInString(in.Content) > maxContentLen {
		return api.Validation("Conteúdo demasiado longo.")
	}
	if utf8.RuneCountInString(in.Excerpt) > maxExcerptLen {
		return api.Validation("Resumo demasiado longo (máximo 1.000 caracteres).")
	}

	if strings.TrimSpace(in.CategoryID) == "" {
		return api.Validation("Categoria é obrigatória.")
	}
	if _, err := uuid.Parse(in.CategoryID); err != nil {
		return api.Validation("Categoria inválida.")
	}

	if in.Status == "" {
		in.Status = models.PostStatusDraft
	}
	if !models.ValidStatus(in.Status) {
		return api.Validation("Estado inválido.")
	}

	in.Tags = normalizeTags(in.Tags)
	if len(in.Tags) > models.MaxTags {
		return api.Validation("Demasiadas tags (máximo 20).")
	}

	if hasBookField(in) && (in.AmazonURL == nil || strings.TrimSpace(*in.AmazonURL) == "") {
		return api.Validation("Avaliações de livros precisam de um link da Amazon.")
	}

	return nil
}

// validateCategory normalizes the category input and returns the first
// validation error. A missing slug is generated from the name.
func validateCategory(in *categoryInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return api.Validation("Nome é obrigatório.")
	}
	if utf8.RuneCountInString(in.Name) > maxTitleLen {
		return api.Validation("Nome demasiado longo.")
	}

	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Name)
	}
	if !slug.Valid(in.Slug) {
		return api.Validation("Slug deve conter apenas letras minúsculas, números e hífenes.")
	}
	if utf8.RuneCountInString(in.Slug) > maxSlugLen {
		return api.Validation("Slug demasiado longo.")
	}
	return nil
}

// normalizeTags trims each tag and drops empties, preserving order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// hasBookField reports whether any field of the book metadata group is
// present in the input.
func hasBookField(in *postInput) bool {
	return in.BookTitle != nil || in.BookAuthor != nil || in.BookTranslator != nil ||
		in.BookYear != nil || in.BookPublisher != nil || in.BookPages != nil
}

// toPost builds a Post from validated input. ID, timestamps, reading
// time, and the publish-lifecycle fields are set by the caller.
func (in *postInput) toPost() *models.Post {
	categoryID, _ := uuid.Parse(in.CategoryID)
	return &models.Post{
		Title:              in.Title,
		Slug:               in.Slug,
		Excerpt:            strings.TrimSpace(in.Excerpt),
		Content:            in.Content,
		Tags:               in.Tags,
		Status:             in.Status,
		CategoryID:         categoryID,
		Author:             strings.TrimSpace(in.Author),
		AuthorName:         in.AuthorName,
		BookTitle:          in.BookTitle,
		BookAuthor:         in.BookAuthor,
		BookTranslator:     in.BookTranslator,
		BookYear:           in.BookYear,
		BookPublisher:      in.BookPublisher,
		BookPages:          in.BookPages,
		AmazonURL:          in.AmazonURL,
		CoverImageURL:      in.CoverImageURL,
		CoverImagePublicID: in.CoverImagePublicID,
	}
}

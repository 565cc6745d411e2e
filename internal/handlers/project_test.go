package handlers

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"coffeesmile/internal/models"
)

func samplePost() *models.Post {
	now := time.Now()
	return &models.Post{
		ID:        uuid.New(),
		Title:     "Um post",
		Slug:      "um-post",
		Content:   "# Cabeçalho\n\nCorpo do artigo com texto suficiente.",
		Status:    models.PostStatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
		Category:  &models.Category{ID: uuid.New(), Name: "Café", Slug: "cafe"},
	}
}

func TestSummarizeDerivesExcerpt(t *testing.T) {
	p := samplePost()
	s := summarize(p, false)

	if s.Excerpt == "" {
		t.Error("excerpt should be derived when none is stored")
	}
	if strings.Contains(s.Excerpt, "#") {
		t.Errorf("derived excerpt should be markdown-free: %q", s.Excerpt)
	}
	if s.Content != "" {
		t.Error("content should be omitted without include=content")
	}
}

func TestSummarizeStoredExcerptWins(t *testing.T) {
	p := samplePost()
	p.Excerpt = "Resumo escrito pelo editor."
	s := summarize(p, true)

	if s.Excerpt != "Resumo escrito pelo editor." {
		t.Errorf("stored excerpt should be used verbatim, got %q", s.Excerpt)
	}
	if s.Content != p.Content {
		t.Error("content should be present with include=content")
	}
}

func TestSummarizeTagsNeverNull(t *testing.T) {
	p := samplePost()
	p.Tags = nil

	body, err := json.Marshal(summarize(p, false))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"tags":[]`) {
		t.Errorf("tags should serialize as an empty array, got %s", body)
	}
}

func TestSummarizeEmbeddedCategoryShape(t *testing.T) {
	body, err := json.Marshal(summarize(samplePost(), false))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(body)

	for _, want := range []string{`"category":{`, `"name":"Café"`, `"slug":"cafe"`} {
		if !strings.Contains(out, want) {
			t.Errorf("embedded category missing %q: %s", want, out)
		}
	}
	// The published-post count belongs to the category listing only.
	if strings.Contains(out, `"count"`) {
		t.Errorf("embedded category should not carry a count: %s", out)
	}
}

func TestDetailIncludesRelated(t *testing.T) {
	p := samplePost()
	related := []models.Post{*samplePost(), *samplePost()}

	d := detail(p, related)
	if len(d.RelatedPosts) != 2 {
		t.Fatalf("got %d related posts, want 2", len(d.RelatedPosts))
	}
	if d.Content == "" {
		t.Error("detail should always carry content")
	}
	for _, rp := range d.RelatedPosts {
		if rp.Content != "" {
			t.Error("related posts should not carry content")
		}
	}
}

func TestDetailRelatedNeverNull(t *testing.T) {
	d := detail(samplePost(), nil)
	body, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"relatedPosts":[]`) {
		t.Errorf("relatedPosts should serialize as an empty array, got %s", body)
	}
}

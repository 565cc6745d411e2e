// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"coffeesmile/internal/models"
	"coffeesmile/internal/query"
)

// PostStore handles all post-related database operations. Every row it
// returns carries the joined category.
type PostStore struct {
	pool *pgxpool.Pool
}

// NewPostStore creates a new PostStore with the given connection pool.
func NewPostStore(pool *pgxpool.Pool) *PostStore {
	return &PostStore{pool: pool}
}

const postColumns = `p.id, p.title, p.slug, p.excerpt, p.content, p.tags, p.status,
	p.category_id, p.author, p.author_name,
	p.book_title, p.book_author, p.book_translator, p.book_year,
	p.book_publisher, p.book_pages, p.amazon_url,
	p.cover_image_url, p.cover_image_public_id,
	p.reading_time, p.published_at, p.created_at, p.updated_at,
	c.id, c.name, c.slug`

const postFrom = ` FROM posts p JOIN categories c ON c.id = p.category_id`

// postOrder keeps listings in publish-date order; drafts (null
// published_at) sort after published posts, newest edits first.
const postOrder = ` ORDER BY p.published_at DESC NULLS LAST, p.updated_at DESC`

// scanPost scans a joined posts+categories row into a Post.
func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	var c models.Category
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Tags, &p.Status,
		&p.CategoryID, &p.Author, &p.AuthorName,
		&p.BookTitle, &p.BookAuthor, &p.BookTranslator, &p.BookYear,
		&p.BookPublisher, &p.BookPages, &p.AmazonURL,
		&p.CoverImageURL, &p.CoverImagePublicID,
		&p.ReadingTime, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.Name, &c.Slug,
	)
	if err != nil {
		return nil, err
	}
	p.Category = &c
	return &p, nil
}

// filterClause compiles a query.Filter into a SQL WHERE fragment and
// its arguments. List uses the result for both the count and the fetch,
// so the two predicates are identical by construction.
func filterClause(f query.Filter) (string, []any) {
	var conds []string
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if f.CategorySlug != "" {
		args = append(args, f.CategorySlug)
		conds = append(conds, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if f.Tag != "" {
		args = append(args, []string{f.Tag})
		conds = append(conds, fmt.Sprintf("p.tags @> $%d::text[]", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.excerpt ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search
// text so it matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// List returns one page of posts matching the compiled query plus the
// total count for the same predicate. Count and fetch run inside a
// single repeatable-read read-only transaction so the pair sees one
// consistent snapshot even under concurrent writes.
func (s *PostStore) List(ctx context.Context, q *query.Query) ([]models.Post, int, error) {
	where, args := filterClause(q.Filter)

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list posts begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var total int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*)`+postFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	pageArgs := append(args, q.Limit, q.Offset())
	rows, err := tx.Query(ctx,
		`SELECT `+postColumns+postFrom+where+postOrder+
			fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2),
		pageArgs...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list posts rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("list posts commit: %w", err)
	}
	return items, total, nil
}

// FindBySlug retrieves a post by slug. Drafts are only visible when
// includeDrafts is set. Returns nil if not found.
func (s *PostStore) FindBySlug(ctx context.Context, slug string, includeDrafts bool) (*models.Post, error) {
	sql := `SELECT ` + postColumns + postFrom + ` WHERE p.slug = $1`
	if !includeDrafts {
		sql += ` AND p.status = 'published'`
	}
	p, err := scanPost(s.pool.QueryRow(ctx, sql, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// FindByID retrieves a post by its UUID regardless of status. Returns
// nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, err := scanPost(s.pool.QueryRow(ctx,
		`SELECT `+postColumns+postFrom+` WHERE p.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Related selects up to limit published posts sharing the source post's
// category or at least one tag, most recent first, excluding the source
// itself. Fewer candidates mean a shorter result, never padding.
func (s *PostStore) Related(ctx context.Context, post *models.Post, limit int) ([]models.Post, error) {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+postColumns+postFrom+`
		 WHERE p.status = 'published'
		   AND p.id <> $1
		   AND (p.category_id = $2 OR p.tags && $3::text[])
		 ORDER BY p.published_at DESC
		 LIMIT $4`,
		post.ID, post.CategoryID, tags, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("related posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan related post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// AllPublished returns every published post, most recent first. The
// feed and sitemap generators drive this independently of the paginated
// listing.
func (s *PostStore) AllPublished(ctx context.Context) ([]models.Post, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+postColumns+postFrom+`
		 WHERE p.status = 'published'
		 ORDER BY p.published_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("all published posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan published post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Create inserts a new post and returns it with the joined category.
// The caller is responsible for lifecycle stamping and reading-time
// computation before calling.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx, `
		INSERT INTO posts (title, slug, excerpt, content, tags, status,
		                   category_id, author, author_name,
		                   book_title, book_author, book_translator, book_year,
		                   book_publisher, book_pages, amazon_url,
		                   cover_image_url, cover_image_public_id,
		                   reading_time, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`, p.Title, p.Slug, p.Excerpt, p.Content, p.Tags, p.Status,
		p.CategoryID, p.Author, p.AuthorName,
		p.BookTitle, p.BookAuthor, p.BookTranslator, p.BookYear,
		p.BookPublisher, p.BookPages, p.AmazonURL,
		p.CoverImageURL, p.CoverImagePublicID,
		p.ReadingTime, p.PublishedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update modifies an existing post. PublishedAt is written as-is: the
// lifecycle rules have already been applied by the caller.
func (s *PostStore) Update(ctx context.Context, p *models.Post) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE posts SET
			title = $1, slug = $2, excerpt = $3, content = $4, tags = $5,
			status = $6, category_id = $7, author = $8, author_name = $9,
			book_title = $10, book_author = $11, book_translator = $12,
			book_year = $13, book_publisher = $14, book_pages = $15,
			amazon_url = $16, cover_image_url = $17, cover_image_public_id = $18,
			reading_time = $19, published_at = $20, updated_at = now()
		WHERE id = $21
	`, p.Title, p.Slug, p.Excerpt, p.Content, p.Tags,
		p.Status, p.CategoryID, p.Author, p.AuthorName,
		p.BookTitle, p.BookAuthor, p.BookTranslator,
		p.BookYear, p.BookPublisher, p.BookPages,
		p.AmazonURL, p.CoverImageURL, p.CoverImagePublicID,
		p.ReadingTime, p.PublishedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by ID. The bool reports whether a row existed.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

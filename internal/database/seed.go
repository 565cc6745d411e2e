package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"coffeesmile/internal/excerpt"
)

// seedCategories are the starter categories created in development.
var seedCategories = []struct {
	name string
	slug string
}{
	{"Livros", "livros"},
	{"Teologia", "teologia"},
	{"Devocional", "devocional"},
	{"Café", "cafe"},
}

// seedPosts are sample published posts so the public surface has data
// on a fresh development database.
var seedPosts = []struct {
	title        string
	slug         string
	excerpt      string
	content      string
	categorySlug string
	tags         []string
	publishedAt  string
}{
	{
		title:        "A graça que desperta: leitura guiada de Efésios",
		slug:         "a-graca-que-desperta-efesios",
		excerpt:      "Uma resenha clara e prática de um comentário que ajuda a ler Efésios com profundidade e esperança diária.",
		content:      "# A graça que desperta\n\n## Porque este livro importa\nEste comentário bíblico conduz o leitor pelo texto de Efésios com clareza, sem perder o peso pastoral.\n\n> A graça não é apenas uma ideia; é a força que nos reergue.\n\n## Pontos fortes\n- Linguagem acessível\n- Boa estrutura temática\n- Notas históricas úteis",
		categorySlug: "teologia",
		tags:         []string{"resenha", "efesios", "doutrina"},
		publishedAt:  "2024-02-10T09:00:00Z",
	},
	{
		title:        "Métodos de extração: V60, AeroPress e prensa francesa",
		slug:         "metodos-extracao-v60-aeropress-prensa",
		excerpt:      "Um guia direto para escolher o método de extração certo para o teu café de origem.",
		content:      "# Métodos de extração\n\nCada método realça notas diferentes do mesmo grão.\n\n## V60\nClareza e acidez brilhante.\n\n## AeroPress\nCorpo médio, versátil, perdoa erros.\n\n## Prensa francesa\nCorpo cheio e textura densa.",
		categorySlug: "cafe",
		tags:         []string{"cafe", "extracao", "guia"},
		publishedAt:  "2024-03-01T09:00:00Z",
	},
	{
		title:        "Café e devoção: uma liturgia matinal",
		slug:         "cafe-e-devocao",
		excerpt:      "Como transformar o ritual do café da manhã num momento de leitura e oração sem pressa.",
		content:      "# Café e devoção\n\nO ritual lento de preparar café combina bem com a leitura devocional: ambos pedem atenção e paciência.\n\n- Moer os grãos\n- Aquecer a água\n- Abrir o texto do dia",
		categorySlug: "devocional",
		tags:         []string{"cafe", "devocional"},
		publishedAt:  "2024-04-01T09:00:00Z",
	},
}

// Seed populates the database with starter categories and sample posts.
// It is a no-op when any category already exists, so repeated startups
// in development never duplicate data.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, c := range seedCategories {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id
		`, c.name, c.slug).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.slug, err)
		}
		categoryIDs[c.slug] = id
	}

	for _, p := range seedPosts {
		publishedAt, err := time.Parse(time.RFC3339, p.publishedAt)
		if err != nil {
			return fmt.Errorf("seed parse time for %s: %w", p.slug, err)
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO posts (title, slug, excerpt, content, tags, status,
			                   category_id, author, reading_time, published_at)
			VALUES ($1, $2, $3, $4, $5, 'published', $6, $7, $8, $9)
		`, p.title, p.slug, p.excerpt, p.content, p.tags,
			categoryIDs[p.categorySlug], "Administrador",
			excerpt.ReadingTime(p.content), publishedAt,
		)
		if err != nil {
			return fmt.Errorf("seed post %s: %w", p.slug, err)
		}
	}

	slog.Info("database seeded with starter content",
		"categories", len(seedCategories),
		"posts", len(seedPosts),
	)

	return nil
}

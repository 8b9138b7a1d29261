package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/veloria/catalog-api/internal/domain"
)

const blogColumns = `id, title, content, author, created_at, updated_at`

// BlogStore persists blog posts.
type BlogStore struct {
	db DB
}

func NewBlogStore(db DB) *BlogStore {
	return &BlogStore{db: db}
}

func (s *BlogStore) FindByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidID
	}
	row := s.db.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blog_posts WHERE id = $1`, id)
	b, err := scanBlogPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load blog post %s: %w", id, err)
	}
	return b, nil
}

// List returns all blog posts, newest first.
func (s *BlogStore) List(ctx context.Context) ([]*domain.BlogPost, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+blogColumns+` FROM blog_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.BlogPost, 0)
	for rows.Next() {
		b, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, nil
}

func (s *BlogStore) Create(ctx context.Context, b *domain.BlogPost) error {
	if b.ID == "" {
		b.ID = domain.NewID()
	} else if !domain.ValidID(b.ID) {
		return domain.ErrInvalidID
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO blog_posts (id, title, content, author, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())`,
		b.ID, b.Title, b.Content, b.Author)
	if err != nil {
		return fmt.Errorf("failed to insert blog post: %w", err)
	}
	return nil
}

func (s *BlogStore) Update(ctx context.Context, b *domain.BlogPost) error {
	if !domain.ValidID(b.ID) {
		return domain.ErrInvalidID
	}
	tag, err := s.db.Exec(ctx,
		`UPDATE blog_posts SET title = $2, content = $3, author = $4, updated_at = now() WHERE id = $1`,
		b.ID, b.Title, b.Content, b.Author)
	if err != nil {
		return fmt.Errorf("failed to update blog post %s: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *BlogStore) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrInvalidID
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog post %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBlogPost(row pgx.Row) (*domain.BlogPost, error) {
	var b domain.BlogPost
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.Author, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

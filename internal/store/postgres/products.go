package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/veloria/catalog-api/internal/domain"
	"github.com/veloria/catalog-api/internal/metrics"
)

// maxSlugAttempts bounds commit-time retries on slug unique violations.
// The probe loop resolves every collision visible at read time, so retries
// only absorb races between concurrent saves.
const maxSlugAttempts = 5

const productColumns = `id, name, slug, description, price, quantity, category, brand, images, created_at, updated_at`

// ProductStore persists products. The unique index on slug is the authority
// for slug uniqueness; this store probes for a free candidate first and
// retries with an incremented suffix when a concurrent save wins the race.
type ProductStore struct {
	db DB
}

// NewProductStore creates a ProductStore over a pgx pool or compatible mock.
func NewProductStore(db DB) *ProductStore {
	return &ProductStore{db: db}
}

// FindByID returns the product with the given id, or domain.ErrNotFound.
func (s *ProductStore) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidID
	}

	row := s.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product %s: %w", id, err)
	}
	return p, nil
}

// List returns all products, newest first.
func (s *ProductStore) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Create inserts a new product. The id is assigned here when absent and the
// slug is always derived from the name.
func (s *ProductStore) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = domain.NewID()
	} else if !domain.ValidID(p.ID) {
		return domain.ErrInvalidID
	}

	base := slugBase(p.Name)
	slug, err := s.nextFreeSlug(ctx, base, p.ID)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		p.Slug = slug
		err = s.insert(ctx, p)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		// A concurrent save committed this slug between probe and insert.
		metrics.SlugConflicts.Inc()
		slug, err = s.nextFreeSlug(ctx, base, p.ID)
		if err != nil {
			return err
		}
	}
	return domain.ErrSlugConflict
}

// Update saves an existing product. The slug is recomputed only when the
// name changed or the stored slug is missing; unrelated updates leave it
// untouched.
func (s *ProductStore) Update(ctx context.Context, p *domain.Product) error {
	if !domain.ValidID(p.ID) {
		return domain.ErrInvalidID
	}

	var curName, curSlug string
	err := s.db.QueryRow(ctx,
		`SELECT name, slug FROM products WHERE id = $1`, p.ID).Scan(&curName, &curSlug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to load product %s: %w", p.ID, err)
	}

	slug := curSlug
	base := slugBase(p.Name)
	recompute := curSlug == "" || curName != p.Name
	if recompute {
		slug, err = s.nextFreeSlug(ctx, base, p.ID)
		if err != nil {
			return err
		}
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		p.Slug = slug
		err = s.update(ctx, p)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		metrics.SlugConflicts.Inc()
		slug, err = s.nextFreeSlug(ctx, base, p.ID)
		if err != nil {
			return err
		}
	}
	return domain.ErrSlugConflict
}

// Delete removes a product, or returns domain.ErrNotFound.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrInvalidID
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nextFreeSlug probes base, base-1, base-2, ... until a slug unused by any
// other live product is found.
func (s *ProductStore) nextFreeSlug(ctx context.Context, base, excludeID string) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		var taken bool
		err := s.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1 AND id <> $2)`,
			candidate, excludeID).Scan(&taken)
		if err != nil {
			return "", fmt.Errorf("failed to probe slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = domain.SlugWithSuffix(base, i)
	}
}

func (s *ProductStore) insert(ctx context.Context, p *domain.Product) error {
	images, err := marshalImages(p.Images)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO products (id, name, slug, description, price, quantity, category, brand, images, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.Quantity, p.Category, p.Brand, images)
	if err != nil && !isUniqueViolation(err) {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return err
}

func (s *ProductStore) update(ctx context.Context, p *domain.Product) error {
	images, err := marshalImages(p.Images)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		`UPDATE products
		 SET name = $2, slug = $3, description = $4, price = $5, quantity = $6, category = $7, brand = $8, images = $9, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.Quantity, p.Category, p.Brand, images)
	if err != nil && !isUniqueViolation(err) {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return err
}

// slugBase guards the empty-slug edge: a name made entirely of dropped
// characters still needs a usable base.
func slugBase(name string) string {
	base := domain.Slugify(name)
	if base == "" {
		base = "product"
	}
	return base
}

func marshalImages(images []domain.Image) ([]byte, error) {
	if images == nil {
		images = []domain.Image{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal images: %w", err)
	}
	return data, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var images []byte
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Quantity,
		&p.Category, &p.Brand, &images, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, fmt.Errorf("failed to unmarshal images: %w", err)
		}
	}
	return &p, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"alupro-backend/internal/domains/product/model"
	"alupro-backend/internal/infrastructure/database"
	"alupro-backend/internal/shared/utils"
)

// PostgresRepository - raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ProductRepository {
	return &postgresRepository{pool: pool}
}

const productColumns = `
	id, name, slug, description, category,
	price, discount_price, images, features, specifications,
	is_featured, is_active, stock_quantity, rating, reviews_count,
	created_by, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.DiscountPrice, // nullable
		&p.Images,
		&p.Features,
		&p.Specifications, // jsonb
		&p.IsFeatured,
		&p.IsActive,
		&p.StockQuantity,
		&p.Rating,
		&p.ReviewsCount,
		&p.CreatedBy, // nullable
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) collect(ctx context.Context, query string, args ...interface{}) ([]*model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]*model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// ========================= READ =====================

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT`+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil && !errors.Is(err, model.ErrProductNotFound) {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, err
}

// FindBySlug only returns active products, it backs the public detail page
func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE slug = $1 AND is_active`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, slug))
	if err != nil && !errors.Is(err, model.ErrProductNotFound) {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, err
}

func (r *postgresRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Product, error) {
	if len(ids) == 0 {
		return []*model.Product{}, nil
	}
	return r.collect(ctx, `SELECT`+productColumns+` FROM products WHERE id = ANY($1)`, ids)
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.Product, int, error) {
	w := utils.NewWhereBuilder()
	if !filter.IncludeInactive {
		w.Add("is_active = ?", true)
	}
	if filter.Category != nil {
		w.Add("category = ?", *filter.Category)
	}
	if filter.Featured != nil {
		w.Add("is_featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		w.Add("(name ILIKE ? OR description ILIKE ?)", like, like)
	}
	if filter.MinPrice != nil {
		w.Add("COALESCE(discount_price, price) >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		w.Add("COALESCE(discount_price, price) <= ?", *filter.MaxPrice)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	column, direction := filter.Sort.SortColumn()
	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s %s, id LIMIT $%d OFFSET $%d`,
		productColumns, w.SQL(), pq.QuoteIdentifier(column), direction, w.Next(), w.Next()+1)
	args := append(w.Args(), filter.Limit, utils.Offset(filter.Page, filter.Limit))

	products, err := r.collect(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *postgresRepository) ListFeatured(ctx context.Context, limit int) ([]*model.Product, error) {
	query := `SELECT` + productColumns + `
		FROM products
		WHERE is_featured AND is_active
		ORDER BY rating DESC, created_at DESC
		LIMIT $1`
	return r.collect(ctx, query, limit)
}

// ListRelated: same category, active, excluding p itself
func (r *postgresRepository) ListRelated(ctx context.Context, p *model.Product, limit int) ([]*model.Product, error) {
	query := `SELECT` + productColumns + `
		FROM products
		WHERE category = $1 AND is_active AND id <> $2
		ORDER BY rating DESC, created_at DESC
		LIMIT $3`
	return r.collect(ctx, query, p.Category, p.ID, limit)
}

func (r *postgresRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active products: %w", err)
	}
	return n, nil
}

// ========================= WRITE =====================

func (r *postgresRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (
			id, name, slug, description, category,
			price, discount_price, images, features, specifications,
			is_featured, is_active, stock_quantity, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING rating, reviews_count, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Category,
		p.Price, p.DiscountPrice, p.Images, p.Features, p.Specifications,
		p.IsFeatured, p.IsActive, p.StockQuantity, p.CreatedBy,
	).Scan(&p.Rating, &p.ReviewsCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrSlugTaken
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products SET
			name = $2, slug = $3, description = $4, category = $5,
			price = $6, discount_price = $7, images = $8, features = $9, specifications = $10,
			is_featured = $11, is_active = $12, stock_quantity = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Category,
		p.Price, p.DiscountPrice, p.Images, p.Features, p.Specifications,
		p.IsFeatured, p.IsActive, p.StockQuantity,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrProductNotFound
		}
		if database.IsUniqueViolation(err) {
			return model.ErrSlugTaken
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *postgresRepository) AppendImage(ctx context.Context, id uuid.UUID, url string) (*model.Product, error) {
	query := `UPDATE products SET images = array_append(images, $2), updated_at = NOW()
		WHERE id = $1 RETURNING` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id, url))
	if err != nil && !errors.Is(err, model.ErrProductNotFound) {
		return nil, fmt.Errorf("append product image: %w", err)
	}
	return p, err
}

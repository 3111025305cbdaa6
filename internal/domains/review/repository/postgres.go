package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"alupro-backend/internal/domains/review/model"
	"alupro-backend/internal/shared/utils"
	"alupro-backend/pkg/database"
)

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

const reviewColumns = `r.id, r.product_id, r.customer_name, r.rating, r.comment, r.is_approved, r.created_at`

func scanReview(row pgx.Row, extra ...interface{}) (*model.Review, error) {
	var rv model.Review
	dest := append([]interface{}{
		&rv.ID,
		&rv.ProductID,
		&rv.CustomerName,
		&rv.Rating,
		&rv.Comment,
		&rv.IsApproved,
		&rv.CreatedAt,
	}, extra...)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, customer_name, rating, comment, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		review.ID, review.ProductID, review.CustomerName, review.Rating, review.Comment, review.IsApproved,
	).Scan(&review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	rv, err := scanReview(r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews r WHERE r.id = $1`, id))
	if err != nil && !errors.Is(err, model.ErrReviewNotFound) {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return rv, err
}

func (r *postgresReviewRepository) ListApprovedByProduct(
	ctx context.Context,
	productID uuid.UUID,
	page, limit int,
) ([]*model.Review, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE product_id = $1 AND is_approved`, productID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		WHERE r.product_id = $1 AND r.is_approved
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, productID, limit, utils.Offset(page, limit))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, total, rows.Err()
}

func (r *postgresReviewRepository) Summary(ctx context.Context, productID uuid.UUID) (*model.Summary, error) {
	summary := &model.Summary{RatingBreakdown: make(map[int]int, model.MaxRating)}
	for i := model.MinRating; i <= model.MaxRating; i++ {
		summary.RatingBreakdown[i] = 0
	}

	rows, err := r.pool.Query(ctx, `
		SELECT rating, COUNT(*)
		FROM reviews
		WHERE product_id = $1 AND is_approved
		GROUP BY rating`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating breakdown: %w", err)
	}
	defer rows.Close()

	sum := 0
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("failed to scan rating breakdown: %w", err)
		}
		summary.RatingBreakdown[rating] = count
		summary.TotalReviews += count
		sum += rating * count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary.AverageRating = averageRating(sum, summary.TotalReviews)
	return summary, nil
}

func (r *postgresReviewRepository) AdminList(ctx context.Context, filter model.ListFilter) ([]*model.Review, int, error) {
	w := utils.NewWhereBuilder()
	if filter.Approved != nil {
		w.Add("r.is_approved = ?", *filter.Approved)
	}
	if filter.ProductID != nil {
		w.Add("r.product_id = ?", *filter.ProductID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews r`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, p.name
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		%s
		ORDER BY r.created_at DESC
		LIMIT $%d OFFSET $%d`,
		reviewColumns, w.SQL(), w.Next(), w.Next()+1)
	args := append(w.Args(), filter.Limit, utils.Offset(filter.Page, filter.Limit))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*model.Review, 0)
	for rows.Next() {
		var productName string
		rv, err := scanReview(rows, &productName)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		rv.ProductName = productName
		reviews = append(reviews, rv)
	}
	return reviews, total, rows.Err()
}

func (r *postgresReviewRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE NOT is_approved`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get pending count: %w", err)
	}
	return count, nil
}

// =====================================================
// MODERATION
// =====================================================

const refreshProductRating = `
	UPDATE products SET
		rating = COALESCE((
			SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews
			WHERE product_id = $1 AND is_approved
		), 0),
		reviews_count = (
			SELECT COUNT(*) FROM reviews WHERE product_id = $1 AND is_approved
		),
		updated_at = NOW()
	WHERE id = $1
`

func (r *postgresReviewRepository) Approve(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Review, error) {
		rv, err := scanReview(tx.QueryRow(ctx,
			`UPDATE reviews r SET is_approved = TRUE WHERE r.id = $1 RETURNING `+reviewColumns, id))
		if err != nil {
			if errors.Is(err, model.ErrReviewNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to approve review: %w", err)
		}

		if _, err := tx.Exec(ctx, refreshProductRating, rv.ProductID); err != nil {
			return nil, fmt.Errorf("failed to refresh product rating: %w", err)
		}
		return rv, nil
	})
}

func (r *postgresReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var productID uuid.UUID
		err := tx.QueryRow(ctx, `DELETE FROM reviews WHERE id = $1 RETURNING product_id`, id).Scan(&productID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrReviewNotFound
			}
			return fmt.Errorf("failed to delete review: %w", err)
		}

		if _, err := tx.Exec(ctx, refreshProductRating, productID); err != nil {
			return fmt.Errorf("failed to refresh product rating: %w", err)
		}
		return nil
	})
}

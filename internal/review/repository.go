package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// CreateAndRefreshRating stores the review and folds it into the item's
	// average rating and review count in one transaction.
	CreateAndRefreshRating(ctx context.Context, rv *Review) error
	ListByItem(ctx context.Context, itemID string) ([]*Review, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) CreateAndRefreshRating(ctx context.Context, rv *Review) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
		query, args, err := psql.Insert("public.reviews").
			Columns("reviewer_id", "item_id", "owner_id", "rent_id", "rating_item", "rating_owner", "comment").
			Values(rv.ReviewerID, rv.ItemID, rv.OwnerID, rv.RentID, rv.RatingItem, rv.RatingOwner, rv.Comment).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create review query failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&rv.ID, &rv.CreatedAt); err != nil {
			var e *pgconn.PgError
			if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyReviewed
			}
			return fmt.Errorf("create review failed: %w", err)
		}

		const refresh = `
			UPDATE public.items i
			SET rating = s.avg_rating, total_reviews = s.cnt, updated_at = now()
			FROM (
				SELECT round(avg(rating_item)::numeric, 1) AS avg_rating, count(*) AS cnt
				FROM public.reviews
				WHERE item_id = $1
			) s
			WHERE i.id = $1
		`
		if _, err := tx.Exec(ctx, refresh, rv.ItemID); err != nil {
			return fmt.Errorf("refresh item rating failed: %w", err)
		}

		// Shops are rated on how their owner treated renters.
		const refreshShop = `
			UPDATE public.shops sh
			SET rating = s.avg_rating, total_reviews = s.cnt, updated_at = now()
			FROM (
				SELECT i.shop_id, round(avg(rv.rating_owner)::numeric, 1) AS avg_rating, count(*) AS cnt
				FROM public.reviews rv
				JOIN public.items i ON i.id = rv.item_id
				WHERE i.shop_id = (SELECT shop_id FROM public.items WHERE id = $1)
				GROUP BY i.shop_id
			) s
			WHERE sh.id = s.shop_id
		`
		if _, err := tx.Exec(ctx, refreshShop, rv.ItemID); err != nil {
			return fmt.Errorf("refresh shop rating failed: %w", err)
		}
		return nil
	})
}

func (r *pgxRepository) ListByItem(ctx context.Context, itemID string) ([]*Review, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"rv.id", "rv.reviewer_id", "u.name", "rv.item_id", "rv.owner_id", "rv.rent_id",
		"rv.rating_item", "rv.rating_owner", "rv.comment", "rv.created_at",
	).
		From("public.reviews rv").
		Join("public.users u ON u.id = rv.reviewer_id").
		Where(squirrel.Eq{"rv.item_id": itemID}).
		OrderBy("rv.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reviews query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.ReviewerID, &rv.ReviewerName, &rv.ItemID, &rv.OwnerID, &rv.RentID,
			&rv.RatingItem, &rv.RatingOwner, &rv.Comment, &rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review failed: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews failed: %w", err)
	}
	return reviews, nil
}

package shop

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
	Create(ctx context.Context, sh *Shop) error
	GetByID(ctx context.Context, id string) (*Shop, error)
	GetByOwner(ctx context.Context, ownerID string) (*Shop, error)
	List(ctx context.Context, filter Filter) ([]*Shop, int, error)
	Update(ctx context.Context, sh *Shop) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var shopColumns = []string{
	"s.id", "s.owner_id", "u.name", "u.email", "s.name", "s.address", "s.city", "s.pincode",
	"s.phone", "s.description", "s.is_active", "s.rating::float8", "s.total_reviews",
	"s.created_at", "s.updated_at",
}

func scanShop(row pgx.Row, extra ...any) (*Shop, error) {
	var sh Shop
	dest := []any{
		&sh.ID, &sh.OwnerID, &sh.OwnerName, &sh.OwnerEmail, &sh.Name, &sh.Address, &sh.City, &sh.Pincode,
		&sh.Phone, &sh.Description, &sh.IsActive, &sh.Rating, &sh.TotalReviews,
		&sh.CreatedAt, &sh.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &sh, nil
}

func (r *pgxRepository) Create(ctx context.Context, sh *Shop) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.shops").
		Columns("owner_id", "name", "address", "city", "pincode", "phone", "description", "is_active").
		Values(sh.OwnerID, sh.Name, sh.Address, sh.City, sh.Pincode, sh.Phone, sh.Description, sh.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create shop query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&sh.ID, &sh.CreatedAt, &sh.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyHasShop
		}
		return fmt.Errorf("create shop failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Eq) (*Shop, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(shopColumns...).
		From("public.shops s").
		Join("public.users u ON u.id = s.owner_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get shop query failed: %w", err)
	}

	sh, err := scanShop(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get shop failed: %w", err)
	}
	return sh, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Shop, error) {
	return r.getOne(ctx, squirrel.Eq{"s.id": id})
}

func (r *pgxRepository) GetByOwner(ctx context.Context, ownerID string) (*Shop, error) {
	return r.getOne(ctx, squirrel.Eq{"s.owner_id": ownerID})
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Shop, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	q := psql.Select(append(shopColumns, "count(*) OVER() AS total_count")...).
		From("public.shops s").
		Join("public.users u ON u.id = s.owner_id")

	if !filter.IncludeInactive {
		q = q.Where(squirrel.Eq{"s.is_active": true})
	}
	if filter.City != "" {
		q = q.Where(squirrel.ILike{"s.city": "%" + filter.City + "%"})
	}
	if filter.Pincode != "" {
		q = q.Where(squirrel.Eq{"s.pincode": filter.Pincode})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"s.name": "%" + filter.Search + "%"})
	}

	q = q.OrderBy("s.rating DESC", "s.created_at DESC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 12
	}
	offset := (filter.Page - 1) * filter.PageSize
	q = q.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list shops query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list shops failed: %w", err)
	}
	defer rows.Close()

	var result []*Shop
	var total int
	for rows.Next() {
		sh, err := scanShop(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan shop failed: %w", err)
		}
		result = append(result, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate shops failed: %w", err)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, sh *Shop) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.shops").
		Set("name", sh.Name).
		Set("address", sh.Address).
		Set("city", sh.City).
		Set("pincode", sh.Pincode).
		Set("phone", sh.Phone).
		Set("description", sh.Description).
		Set("is_active", sh.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": sh.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update shop query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&sh.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update shop failed: %w", err)
	}
	return nil
}

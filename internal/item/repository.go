package item

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
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, filter Filter) ([]*Item, int, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// Category IDs and names come back as two arrays in the same order.
var itemColumns = []string{
	"i.id", "i.owner_id", "u.name", "i.shop_id", "coalesce(s.name, '')", "i.title", "i.description",
	"i.price_per_day", "i.security_deposit", "i.gender", "i.sizes", "i.city", "i.pincode",
	"i.is_available", "i.rating::float8", "i.total_reviews", "i.created_at", "i.updated_at",
	"ARRAY(SELECT c.id::text FROM public.item_categories ic JOIN public.categories c ON c.id = ic.category_id WHERE ic.item_id = i.id ORDER BY c.name)",
	"ARRAY(SELECT c.name FROM public.item_categories ic JOIN public.categories c ON c.id = ic.category_id WHERE ic.item_id = i.id ORDER BY c.name)",
}

func selectItems(columns ...string) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(columns...).
		From("public.items i").
		Join("public.users u ON u.id = i.owner_id").
		LeftJoin("public.shops s ON s.id = i.shop_id")
}

func scanItem(row pgx.Row, extra ...any) (*Item, error) {
	var it Item
	var categoryIDs, categoryNames []string
	dest := []any{
		&it.ID, &it.OwnerID, &it.OwnerName, &it.ShopID, &it.ShopName, &it.Title, &it.Description,
		&it.PricePerDay, &it.SecurityDeposit, &it.Gender, &it.Sizes, &it.City, &it.Pincode,
		&it.IsAvailable, &it.Rating, &it.TotalReviews, &it.CreatedAt, &it.UpdatedAt,
		&categoryIDs, &categoryNames,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	it.Categories = make([]CategoryRef, len(categoryIDs))
	for i, id := range categoryIDs {
		it.Categories[i] = CategoryRef{ID: id, Name: categoryNames[i]}
	}
	return &it, nil
}

// replaceCategories makes the item's category links match it.Categories.
func replaceCategories(ctx context.Context, tx pgx.Tx, it *Item) error {
	if _, err := tx.Exec(ctx, `DELETE FROM public.item_categories WHERE item_id = $1`, it.ID); err != nil {
		return fmt.Errorf("clear item categories failed: %w", err)
	}
	if len(it.Categories) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	q := psql.Insert("public.item_categories").Columns("item_id", "category_id")
	for _, c := range it.Categories {
		q = q.Values(it.ID, c.ID)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build item categories query failed: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && (e.Code == pgerrcode.ForeignKeyViolation || e.Code == pgerrcode.InvalidTextRepresentation) {
			return ErrUnknownCategory
		}
		return fmt.Errorf("set item categories failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	const query = `
		INSERT INTO public.items
			(owner_id, shop_id, title, description, price_per_day, security_deposit,
			 gender, sizes, city, pincode, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query,
			it.OwnerID, it.ShopID, it.Title, it.Description, it.PricePerDay, it.SecurityDeposit,
			it.Gender, it.Sizes, it.City, it.Pincode, it.IsAvailable,
		).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create item failed: %w", err)
		}
		return replaceCategories(ctx, tx, it)
	})
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	query, args, err := selectItems(itemColumns...).
		Where(squirrel.Eq{"i.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	it, err := scanItem(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return it, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Item, int, error) {
	q := selectItems(append(itemColumns, "count(*) OVER() AS total_count")...)

	if !filter.IncludeUnavailable {
		q = q.Where(squirrel.Eq{"i.is_available": true})
	}
	if filter.OwnerID != "" {
		q = q.Where(squirrel.Eq{"i.owner_id": filter.OwnerID})
	}
	if filter.ShopID != "" {
		q = q.Where(squirrel.Eq{"i.shop_id": filter.ShopID})
	}
	if filter.CategoryID != "" {
		q = q.Where("EXISTS (SELECT 1 FROM public.item_categories ic WHERE ic.item_id = i.id AND ic.category_id = ?)", filter.CategoryID)
	}
	if filter.City != "" {
		q = q.Where(squirrel.ILike{"i.city": "%" + filter.City + "%"})
	}
	if filter.Pincode != "" {
		q = q.Where(squirrel.Eq{"i.pincode": filter.Pincode})
	}
	if filter.Gender != "" {
		q = q.Where(squirrel.Eq{"i.gender": filter.Gender})
	}
	if filter.Size != "" {
		q = q.Where("? = ANY(i.sizes)", filter.Size)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"i.title": pattern},
			squirrel.ILike{"i.description": pattern},
		})
	}
	if filter.MinPrice != nil {
		q = q.Where(squirrel.GtOrEq{"i.price_per_day": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		q = q.Where(squirrel.LtOrEq{"i.price_per_day": *filter.MaxPrice})
	}

	switch filter.SortBy {
	case SortPriceAsc:
		q = q.OrderBy("i.price_per_day ASC", "i.created_at DESC")
	case SortPriceDesc:
		q = q.OrderBy("i.price_per_day DESC", "i.created_at DESC")
	case SortRating:
		q = q.OrderBy("i.rating DESC", "i.created_at DESC")
	default:
		q = q.OrderBy("i.created_at DESC")
	}

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
		return nil, 0, fmt.Errorf("build list items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var result []*Item
	var total int
	for rows.Next() {
		it, err := scanItem(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item failed: %w", err)
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items failed: %w", err)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	const query = `
		UPDATE public.items
		SET title = $1, description = $2, price_per_day = $3, security_deposit = $4,
		    is_available = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query,
			it.Title, it.Description, it.PricePerDay, it.SecurityDeposit, it.IsAvailable, it.ID,
		).Scan(&it.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("update item failed: %w", err)
		}
		return replaceCategories(ctx, tx, it)
	})
}

// Delete removes the item and its category links. Rents and reviews keep a
// foreign key to the item, so an item with history cannot be removed.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrHasRentals
		}
		return fmt.Errorf("delete item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

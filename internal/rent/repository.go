package rent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// CreateIfNoConflict inserts r unless an approved or active rent of the
	// same item overlaps its dates, in which case it returns ErrBookingConflict.
	CreateIfNoConflict(ctx context.Context, r *Rent) error
	GetByID(ctx context.Context, id string) (*Rent, error)
	List(ctx context.Context, filter Filter) ([]*Rent, int, error)
	// UpdateStatus persists a new status for r if r.Version is still current.
	// Moving into a blocking status rechecks overlaps in the same transaction.
	UpdateStatus(ctx context.Context, r *Rent, to Status) error
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var blockingStatuses = []string{string(StatusApproved), string(StatusActive)}

func (r *pgxRepository) CreateIfNoConflict(ctx context.Context, rent *Rent) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockItem(ctx, tx, rent.ItemID); err != nil {
			return err
		}

		overlap, err := hasOverlap(ctx, tx, rent.ItemID, rent.StartDate, rent.EndDate, "")
		if err != nil {
			return err
		}
		if overlap {
			return ErrBookingConflict
		}

		psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
		query, args, err := psql.Insert("public.rents").
			Columns("item_id", "renter_id", "owner_id", "start_date", "end_date",
				"status", "total_amount", "security_deposit", "notes").
			Values(rent.ItemID, rent.RenterID, rent.OwnerID, rent.StartDate, rent.EndDate,
				string(rent.Status), rent.TotalAmount, rent.SecurityDeposit, rent.Notes).
			Suffix("RETURNING id, version, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create rent query failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).
			Scan(&rent.ID, &rent.Version, &rent.CreatedAt, &rent.UpdatedAt); err != nil {
			if isExclusionViolation(err) {
				return ErrBookingConflict
			}
			return fmt.Errorf("create rent failed: %w", err)
		}
		return nil
	})
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, rent *Rent, to Status) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if to.Blocking() {
			if err := lockItem(ctx, tx, rent.ItemID); err != nil {
				return err
			}
			overlap, err := hasOverlap(ctx, tx, rent.ItemID, rent.StartDate, rent.EndDate, rent.ID)
			if err != nil {
				return err
			}
			if overlap {
				return ErrBookingConflict
			}
		}

		psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
		query, args, err := psql.Update("public.rents").
			Set("status", string(to)).
			Set("version", squirrel.Expr("version + 1")).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": rent.ID, "version": rent.Version}).
			Suffix("RETURNING version, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build update rent status query failed: %w", err)
		}

		var version int
		var updatedAt time.Time
		if err := tx.QueryRow(ctx, query, args...).Scan(&version, &updatedAt); err != nil {
			switch {
			case errors.Is(err, pgx.ErrNoRows):
				return ErrStaleUpdate
			case isExclusionViolation(err):
				return ErrBookingConflict
			default:
				return fmt.Errorf("update rent status failed: %w", err)
			}
		}

		rent.Status = to
		rent.Version = version
		rent.UpdatedAt = updatedAt
		return nil
	})
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Rent, error) {
	query, args, err := selectRents().
		Where(squirrel.Eq{"rt.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get rent query failed: %w", err)
	}

	rent, err := scanRent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get rent failed: %w", err)
	}
	return rent, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Rent, int, error) {
	q := selectRents().Column("count(*) OVER() AS total_count")

	if filter.RenterID != "" {
		q = q.Where(squirrel.Eq{"rt.renter_id": filter.RenterID})
	}
	if filter.OwnerID != "" {
		q = q.Where(squirrel.Eq{"rt.owner_id": filter.OwnerID})
	}

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query, args, err := q.OrderBy("rt.created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list rents query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rents failed: %w", err)
	}
	defer rows.Close()

	var rents []*Rent
	var total int
	for rows.Next() {
		rent, err := scanRent(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan rent failed: %w", err)
		}
		rents = append(rents, rent)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rents failed: %w", err)
	}

	return rents, total, nil
}

func selectRents() squirrel.SelectBuilder {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(
			"rt.id", "rt.item_id", "rt.renter_id", "rt.owner_id",
			"rt.start_date", "rt.end_date", "rt.status",
			"rt.total_amount", "rt.security_deposit", "rt.notes",
			"rt.version", "rt.created_at", "rt.updated_at",
			"i.title", "i.price_per_day", "i.city",
			"ru.name", "ru.email", "ru.phone_no",
			"ou.name", "ou.email", "ou.phone_no",
		).
		From("public.rents rt").
		Join("public.items i ON i.id = rt.item_id").
		Join("public.users ru ON ru.id = rt.renter_id").
		Join("public.users ou ON ou.id = rt.owner_id")
}

func scanRent(row pgx.Row, extra ...any) (*Rent, error) {
	var rent Rent
	dest := []any{
		&rent.ID, &rent.ItemID, &rent.RenterID, &rent.OwnerID,
		&rent.StartDate, &rent.EndDate, &rent.Status,
		&rent.TotalAmount, &rent.SecurityDeposit, &rent.Notes,
		&rent.Version, &rent.CreatedAt, &rent.UpdatedAt,
		&rent.ItemTitle, &rent.ItemPricePerDay, &rent.ItemCity,
		&rent.RenterName, &rent.RenterEmail, &rent.RenterPhone,
		&rent.OwnerName, &rent.OwnerEmail, &rent.OwnerPhone,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &rent, nil
}

// lockItem serializes writers that could create overlapping blocking rents
// for one item until the transaction ends.
func lockItem(ctx context.Context, q querier, itemID string) error {
	if _, err := q.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", itemID); err != nil {
		return fmt.Errorf("lock item failed: %w", err)
	}
	return nil
}

// hasOverlap uses inclusive bounds: existing.start <= end AND existing.end >= start.
func hasOverlap(ctx context.Context, q querier, itemID string, start, end time.Time, excludeRentID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub := psql.Select("1").
		From("public.rents").
		Where(squirrel.Eq{"item_id": itemID, "status": blockingStatuses}).
		Where(squirrel.LtOrEq{"start_date": end}).
		Where(squirrel.GtOrEq{"end_date": start})

	if excludeRentID != "" {
		sub = sub.Where(squirrel.NotEq{"id": excludeRentID})
	}

	sql, args, err := sub.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func isExclusionViolation(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && e.Code == pgerrcode.ExclusionViolation
}

package user

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

// Repository defines methods for accessing user data from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
	UpdateProfile(ctx context.Context, u *User) error
}

type pgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxUserRepository{
		pool: pool,
	}
}

var userColumns = []string{
	"id", "name", "email", "password_hash", "phone_no", "role",
	"city", "pincode", "is_active", "created_at", "last_login_at",
}

func (r *pgxUserRepository) getOne(ctx context.Context, where squirrel.Eq) (*User, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(userColumns...).
		From("public.users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query failed: %w", err)
	}

	var u User
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.Role,
		&u.City,
		&u.Pincode,
		&u.IsActive,
		&u.CreatedAt,
		&u.LastLoginAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	return &u, nil
}

func (r *pgxUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *pgxUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *pgxUserRepository) Create(ctx context.Context, u *User) error {
	const query = `
		INSERT INTO public.users (name, email, password_hash, phone_no, role, city, pincode, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Phone,
		u.Role,
		u.City,
		u.Pincode,
		u.IsActive,
	).Scan(&u.ID, &u.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create user failed: %w", err)
	}

	return nil
}

func (r *pgxUserRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	const query = `
		UPDATE public.users
		SET last_login_at = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, t, id)
	if err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *pgxUserRepository) UpdateProfile(ctx context.Context, u *User) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.users").
		Set("name", u.Name).
		Set("phone_no", u.Phone).
		Set("city", u.City).
		Set("pincode", u.Pincode).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update profile query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update profile failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

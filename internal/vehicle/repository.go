package vehicle

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
	Create(ctx context.Context, v *Vehicle) error
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, filter Filter) ([]*Vehicle, int, error)
	Update(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, v *Vehicle) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.vehicles").
		Columns("owner_id", "make", "model", "year", "plate").
		Values(v.OwnerID, v.Make, v.Model, v.Year, v.Plate).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create vehicle query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrPlateAlreadyUsed
		}
		return fmt.Errorf("create vehicle failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"v.id", "v.owner_id", "COALESCE(u.display_name, u.email)",
		"v.make", "v.model", "v.year", "v.plate", "v.created_at", "v.updated_at",
	).
		From("public.vehicles v").
		Join("public.users u ON v.owner_id = u.id").
		Where(squirrel.Eq{"v.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get vehicle query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var v Vehicle
	if err := row.Scan(
		&v.ID, &v.OwnerID, &v.OwnerName,
		&v.Make, &v.Model, &v.Year, &v.Plate, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get vehicle failed: %w", err)
	}
	return &v, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Vehicle, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"v.id", "v.owner_id", "COALESCE(u.display_name, u.email)",
		"v.make", "v.model", "v.year", "v.plate", "v.created_at", "v.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.vehicles v").
		Join("public.users u ON v.owner_id = u.id")

	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"v.owner_id": filter.OwnerID})
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"v.make": kw},
			squirrel.ILike{"v.model": kw},
			squirrel.ILike{"v.plate": kw},
		})
	}

	// Sorting
	orderBy := "v.created_at"
	if filter.SortBy != "" {
		orderBy = "v." + filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list vehicles query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles failed: %w", err)
	}
	defer rows.Close()

	var vehicles []*Vehicle
	var total int

	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(
			&v.ID, &v.OwnerID, &v.OwnerName,
			&v.Make, &v.Model, &v.Year, &v.Plate, &v.CreatedAt, &v.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan vehicle failed: %w", err)
		}
		vehicles = append(vehicles, &v)
	}

	return vehicles, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, v *Vehicle) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.vehicles").
		Set("make", v.Make).
		Set("model", v.Model).
		Set("year", v.Year).
		Set("plate", v.Plate).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update vehicle query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrPlateAlreadyUsed
		}
		return fmt.Errorf("update vehicle failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete vehicle query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete vehicle failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

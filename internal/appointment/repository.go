package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id string) error

	// ListForDate returns every appointment scheduled on the calendar day
	// starting at `day` (which must be local midnight), regardless of status.
	ListForDate(ctx context.Context, day time.Time) ([]*Appointment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, a *Appointment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.appointments").
		Columns("customer_id", "vehicle_id", "service_type", "scheduled_at", "status", "notes").
		Values(a.CustomerID, a.VehicleID, a.ServiceType, a.ScheduledAt, a.Status, a.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create appointment query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"a.id", "a.customer_id", "COALESCE(u.display_name, u.email)",
		"a.vehicle_id", "v.make || ' ' || v.model || ' (' || v.plate || ')'",
		"a.service_type", "a.scheduled_at", "a.status", "a.notes",
		"a.created_at", "a.updated_at",
	).
		From("public.appointments a").
		Join("public.users u ON a.customer_id = u.id").
		Join("public.vehicles v ON a.vehicle_id = v.id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get appointment query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var a Appointment
	if err := row.Scan(
		&a.ID, &a.CustomerID, &a.CustomerName,
		&a.VehicleID, &a.VehicleLabel,
		&a.ServiceType, &a.ScheduledAt, &a.Status, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment failed: %w", err)
	}
	return &a, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"a.id", "a.customer_id", "COALESCE(u.display_name, u.email)",
		"a.vehicle_id", "v.make || ' ' || v.model || ' (' || v.plate || ')'",
		"a.service_type", "a.scheduled_at", "a.status", "a.notes",
		"a.created_at", "a.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.appointments a").
		Join("public.users u ON a.customer_id = u.id").
		Join("public.vehicles v ON a.vehicle_id = v.id")

	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"a.customer_id": filter.CustomerID})
	}
	if filter.VehicleID != "" {
		query = query.Where(squirrel.Eq{"a.vehicle_id": filter.VehicleID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"a.status": filter.Status})
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"a.scheduled_at": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"a.scheduled_at": filter.To})
	}

	// Sorting
	orderBy := "a.scheduled_at"
	if filter.SortBy != "" {
		orderBy = "a." + filter.SortBy
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
		return nil, 0, fmt.Errorf("build list appointments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments failed: %w", err)
	}
	defer rows.Close()

	var appointments []*Appointment
	var total int

	for rows.Next() {
		var a Appointment
		if err := rows.Scan(
			&a.ID, &a.CustomerID, &a.CustomerName,
			&a.VehicleID, &a.VehicleLabel,
			&a.ServiceType, &a.ScheduledAt, &a.Status, &a.Notes,
			&a.CreatedAt, &a.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan appointment failed: %w", err)
		}
		appointments = append(appointments, &a)
	}

	return appointments, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Appointment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.appointments").
		Set("scheduled_at", a.ScheduledAt).
		Set("service_type", a.ServiceType).
		Set("status", a.Status).
		Set("notes", a.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update appointment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update appointment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete appointment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete appointment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListForDate(ctx context.Context, day time.Time) ([]*Appointment, error) {
	nextDay := day.AddDate(0, 0, 1)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"a.id", "a.customer_id", "COALESCE(u.display_name, u.email)",
		"a.vehicle_id", "v.make || ' ' || v.model || ' (' || v.plate || ')'",
		"a.service_type", "a.scheduled_at", "a.status", "a.notes",
		"a.created_at", "a.updated_at",
	).
		From("public.appointments a").
		Join("public.users u ON a.customer_id = u.id").
		Join("public.vehicles v ON a.vehicle_id = v.id").
		Where(squirrel.GtOrEq{"a.scheduled_at": day}).
		Where(squirrel.Lt{"a.scheduled_at": nextDay}).
		OrderBy("a.scheduled_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list for date query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments for date failed: %w", err)
	}
	defer rows.Close()

	var appointments []*Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(
			&a.ID, &a.CustomerID, &a.CustomerName,
			&a.VehicleID, &a.VehicleLabel,
			&a.ServiceType, &a.ScheduledAt, &a.Status, &a.Notes,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment failed: %w", err)
		}
		appointments = append(appointments, &a)
	}

	return appointments, nil
}

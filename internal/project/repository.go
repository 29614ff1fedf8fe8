package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, filter Filter) ([]*Project, int, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error

	// AppendWorkLog inserts a new immutable work-log entry.
	AppendWorkLog(ctx context.Context, e *WorkLogEntry) error
	// ListWorkLog returns all entries for a project, oldest first.
	ListWorkLog(ctx context.Context, projectID string) ([]*WorkLogEntry, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const projectSelectColumns = `p.id, p.vehicle_id,
	v.make || ' ' || v.model || ' (' || v.plate || ')',
	p.customer_id, COALESCE(u.display_name, u.email),
	p.title, p.description, p.status, p.created_at, p.updated_at`

func (r *pgxRepository) Create(ctx context.Context, p *Project) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.projects").
		Columns("vehicle_id", "customer_id", "title", "description", "status").
		Values(p.VehicleID, p.CustomerID, p.Title, p.Description, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create project query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.projects p
		JOIN public.vehicles v ON p.vehicle_id = v.id
		JOIN public.users u ON p.customer_id = u.id
		WHERE p.id = $1
	`, projectSelectColumns)

	row := r.pool.QueryRow(ctx, query, id)

	var p Project
	if err := row.Scan(
		&p.ID, &p.VehicleID, &p.VehicleLabel,
		&p.CustomerID, &p.CustomerName,
		&p.Title, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Project, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"p.id", "p.vehicle_id",
		"v.make || ' ' || v.model || ' (' || v.plate || ')'",
		"p.customer_id", "COALESCE(u.display_name, u.email)",
		"p.title", "p.description", "p.status", "p.created_at", "p.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.projects p").
		Join("public.vehicles v ON p.vehicle_id = v.id").
		Join("public.users u ON p.customer_id = u.id")

	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"p.customer_id": filter.CustomerID})
	}
	if filter.VehicleID != "" {
		query = query.Where(squirrel.Eq{"p.vehicle_id": filter.VehicleID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"p.status": filter.Status})
	}

	// Sorting
	orderBy := "p.created_at"
	if filter.SortBy != "" {
		orderBy = "p." + filter.SortBy
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
		return nil, 0, fmt.Errorf("build list projects query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects failed: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	var total int

	for rows.Next() {
		var p Project
		if err := rows.Scan(
			&p.ID, &p.VehicleID, &p.VehicleLabel,
			&p.CustomerID, &p.CustomerName,
			&p.Title, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan project failed: %w", err)
		}
		projects = append(projects, &p)
	}

	return projects, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, p *Project) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.projects").
		Set("title", p.Title).
		Set("description", p.Description).
		Set("status", p.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update project query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update project failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.projects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete project query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete project failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AppendWorkLog(ctx context.Context, e *WorkLogEntry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.project_work_log").
		Columns("project_id", "employee_id", "hours", "description").
		Values(e.ProjectID, e.EmployeeID, e.Hours, e.Description).
		Suffix("RETURNING id, logged_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build append work log query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.LoggedAt)
}

func (r *pgxRepository) ListWorkLog(ctx context.Context, projectID string) ([]*WorkLogEntry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"w.id", "w.project_id", "w.employee_id", "COALESCE(u.display_name, u.email)",
		"w.logged_at", "w.hours", "w.description",
	).
		From("public.project_work_log w").
		Join("public.users u ON w.employee_id = u.id").
		Where(squirrel.Eq{"w.project_id": projectID}).
		OrderBy("w.logged_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list work log query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work log failed: %w", err)
	}
	defer rows.Close()

	var entries []*WorkLogEntry
	for rows.Next() {
		var e WorkLogEntry
		if err := rows.Scan(
			&e.ID, &e.ProjectID, &e.EmployeeID, &e.EmployeeName,
			&e.LoggedAt, &e.Hours, &e.Description,
		); err != nil {
			return nil, fmt.Errorf("scan work log entry failed: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, nil
}

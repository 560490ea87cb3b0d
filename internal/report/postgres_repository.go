package report

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL report repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a report by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Report, error) {
	query := `
		SELECT id, text, lat, lon, location_name, classification, created_at
		FROM reports
		WHERE id = $1
	`

	var rep Report
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rep.ID,
		&rep.Text,
		&rep.Lat,
		&rep.Lon,
		&rep.LocationName,
		&rep.Classification,
		&rep.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	return &rep, nil
}

// List retrieves reports, newest first, with pagination.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra to determine if there are more results
	fetchLimit := limit + 1

	query := `
		SELECT id, text, lat, lon, location_name, classification, created_at
		FROM reports
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	args := []any{fetchLimit}

	// The cursor is the ID of the last report on the previous page.
	if opts.Cursor != "" {
		query = `
			SELECT id, text, lat, lon, location_name, classification, created_at
			FROM reports
			WHERE (created_at, id) < (SELECT created_at, id FROM reports WHERE id = $2)
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		`
		args = append(args, opts.Cursor)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		var rep Report
		err := rows.Scan(
			&rep.ID,
			&rep.Text,
			&rep.Lat,
			&rep.Lon,
			&rep.LocationName,
			&rep.Classification,
			&rep.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, &rep)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &ListResult{
		Items: reports,
	}

	if len(reports) > limit {
		result.Items = reports[:limit]
		result.NextCursor = reports[limit-1].ID
	}

	return result, nil
}

// Create stores a new report.
func (r *PostgresRepository) Create(ctx context.Context, rep *Report) error {
	query := `
		INSERT INTO reports (id, text, lat, lon, location_name, classification, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		rep.ID,
		rep.Text,
		rep.Lat,
		rep.Lon,
		rep.LocationName,
		rep.Classification,
		rep.CreatedAt,
	)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)

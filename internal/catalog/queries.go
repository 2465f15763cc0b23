package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vijay-prabhu/motomatch/internal/matcher"
)

const modelColumns = `id, name, segment, year, stock, test_drive_available, active, published, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanModel(s rowScanner) (*Model, error) {
	m := &Model{}
	var year sql.NullInt64

	if err := s.Scan(
		&m.ID, &m.Name, &m.Segment, &year, &m.Stock, &m.TestDriveAvailable,
		&m.Active, &m.Published, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	m.Year = IntPtr(year)
	return m, nil
}

// validate checks the fields the schema cannot express
func (m *Model) validate() error {
	var errs []error
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if m.Stock < 0 {
		errs = append(errs, fmt.Errorf("stock cannot be negative, got %d", m.Stock))
	}
	if m.Year != nil && (*m.Year < 1900 || *m.Year > 2999) {
		errs = append(errs, fmt.Errorf("year must be a four-digit year, got %d", *m.Year))
	}
	return errors.Join(errs...)
}

// CreateModel inserts a new model
func (db *DB) CreateModel(ctx context.Context, m *Model) error {
	if err := m.validate(); err != nil {
		return fmt.Errorf("invalid model: %w", err)
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt

	_, err := db.ExecContext(ctx, `
		INSERT INTO models (`+modelColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.ID, m.Name, m.Segment, NullInt(m.Year), m.Stock, m.TestDriveAvailable,
		m.Active, m.Published, m.CreatedAt, m.UpdatedAt,
	)
	return err
}

// GetModel retrieves a model by ID
func (db *DB) GetModel(ctx context.Context, id string) (*Model, error) {
	m, err := scanModel(db.QueryRowContext(ctx, `
		SELECT `+modelColumns+` FROM models WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetModelByName retrieves a model by name (case-insensitive)
func (db *DB) GetModelByName(ctx context.Context, name string) (*Model, error) {
	m, err := scanModel(db.QueryRowContext(ctx, `
		SELECT `+modelColumns+` FROM models WHERE name = ? COLLATE NOCASE
	`, strings.TrimSpace(name)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateModel updates an existing model
func (db *DB) UpdateModel(ctx context.Context, m *Model) error {
	if err := m.validate(); err != nil {
		return fmt.Errorf("invalid model: %w", err)
	}
	m.UpdatedAt = time.Now()

	result, err := db.ExecContext(ctx, `
		UPDATE models SET
			name = ?, segment = ?, year = ?, stock = ?, test_drive_available = ?,
			active = ?, published = ?, updated_at = ?
		WHERE id = ?
	`,
		m.Name, m.Segment, NullInt(m.Year), m.Stock, m.TestDriveAvailable,
		m.Active, m.Published, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("model not found: %s", m.ID)
	}
	return nil
}

// DeleteModel removes a model from the catalog
func (db *DB) DeleteModel(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM models WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("model not found: %s", id)
	}
	return nil
}

// ListModels retrieves models with optional filters, in catalog order
func (db *DB) ListModels(ctx context.Context, opts ListOptions) ([]Model, error) {
	query := `SELECT ` + modelColumns + ` FROM models WHERE 1=1`
	args := []interface{}{}

	if opts.Segment != nil {
		query += " AND UPPER(segment) LIKE UPPER(?)"
		args = append(args, "%"+*opts.Segment+"%")
	}
	if opts.ActiveOnly {
		query += " AND active = 1"
	}
	if opts.PublishedOnly {
		query += " AND published = 1"
	}

	query += " ORDER BY created_at ASC, rowid ASC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var models []Model
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, *m)
	}

	return models, rows.Err()
}

// Candidates returns the published catalog as a matcher snapshot.
// Inactive models are included; the matcher decides their eligibility.
func (db *DB) Candidates(ctx context.Context) ([]matcher.Candidate, error) {
	models, err := db.ListModels(ctx, ListOptions{PublishedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	candidates := make([]matcher.Candidate, 0, len(models))
	for i := range models {
		candidates = append(candidates, models[i].Candidate())
	}
	return candidates, nil
}

// UpsertModelByName inserts m, or updates the existing model with the same
// name. It reports whether a new row was created.
func (db *DB) UpsertModelByName(ctx context.Context, m *Model) (bool, error) {
	if err := m.validate(); err != nil {
		return false, fmt.Errorf("invalid model: %w", err)
	}

	created := false
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		var existingID string
		var createdAt time.Time
		err := tx.QueryRowContext(ctx, `
			SELECT id, created_at FROM models WHERE name = ? COLLATE NOCASE
		`, strings.TrimSpace(m.Name)).Scan(&existingID, &createdAt)

		now := time.Now()
		switch {
		case err == sql.ErrNoRows:
			if m.ID == "" {
				m.ID = uuid.New().String()
			}
			m.CreatedAt = now
			m.UpdatedAt = now
			created = true
			_, err = tx.ExecContext(ctx, `
				INSERT INTO models (`+modelColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				m.ID, m.Name, m.Segment, NullInt(m.Year), m.Stock, m.TestDriveAvailable,
				m.Active, m.Published, m.CreatedAt, m.UpdatedAt,
			)
			return err
		case err != nil:
			return err
		}

		m.ID = existingID
		m.CreatedAt = createdAt
		m.UpdatedAt = now
		_, err = tx.ExecContext(ctx, `
			UPDATE models SET
				name = ?, segment = ?, year = ?, stock = ?, test_drive_available = ?,
				active = ?, published = ?, updated_at = ?
			WHERE id = ?
		`,
			m.Name, m.Segment, NullInt(m.Year), m.Stock, m.TestDriveAvailable,
			m.Active, m.Published, m.UpdatedAt, m.ID,
		)
		return err
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// GetStats retrieves aggregate catalog statistics
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN active = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN published = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN stock > 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(stock), 0),
			COALESCE(SUM(CASE WHEN test_drive_available = 1 THEN 1 ELSE 0 END), 0)
		FROM models
	`).Scan(
		&stats.TotalModels, &stats.Active, &stats.Published,
		&stats.InStock, &stats.TotalUnits, &stats.TestDrive,
	); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT UPPER(segment), COUNT(*), COALESCE(SUM(stock), 0)
		FROM models
		GROUP BY UPPER(segment)
		ORDER BY COUNT(*) DESC, UPPER(segment) ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sc SegmentCount
		if err := rows.Scan(&sc.Segment, &sc.Models, &sc.Units); err != nil {
			return nil, err
		}
		stats.BySegment = append(stats.BySegment, sc)
	}

	return stats, rows.Err()
}

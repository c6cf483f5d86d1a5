package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ListOptions filters and pages List results.
type ListOptions struct {
	Status string
	Limit  int
	Offset int
}

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// Store persists contacts in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database that already has the contacts schema.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create inserts c and fills in its ID, Status and CreatedAt.
func (s *Store) Create(ctx context.Context, c *Contact) error {
	if c.Status == "" {
		c.Status = StatusNew
	}
	c.CreatedAt = time.Now().UTC().Truncate(time.Second)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (first_name, last_name, email, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.FirstName, c.LastName, c.Email, c.Message, c.Status, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read contact id: %w", err)
	}
	c.ID = id
	return nil
}

// Get returns one contact or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (*Contact, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, message, status, created_at
		FROM contacts WHERE id = ?
	`, id)
	var c Contact
	if err := scanContact(row, &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load contact %d: %w", id, err)
	}
	return &c, nil
}

// List returns contacts newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Contact, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, first_name, last_name, email, message, status, created_at FROM contacts`
	args := []any{}
	if opts.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, opts.Status)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	out := []Contact{}
	for rows.Next() {
		var c Contact
		if err := scanContact(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateStatus sets the triage status and returns the updated contact.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status string) (*Contact, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE contacts SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update contact %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a contact.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of contacts in each triage state.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(Statuses))
	for _, st := range Statuses {
		counts[st] = 0
	}

	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM contacts GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner, c *Contact) error {
	return row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Message, &c.Status, &c.CreatedAt)
}

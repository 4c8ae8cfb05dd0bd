package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/dexview/internal/db"
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("audit entry not found")

// Store provides access to activity entries.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new entry. If entry.ID is empty a UUID is generated.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	var detail sql.NullString
	if entry.Detail != "" {
		detail = sql.NullString{String: entry.Detail, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_entries (id, account_id, username, action, record_key, detail)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.AccountID,
		entry.Username,
		string(entry.Action),
		entry.Key,
		detail,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

// GetByID retrieves a single entry.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, selectEntries+" WHERE id = ?", id)
	e, err := scanInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// QueryFilter controls which entries are returned by Query.
type QueryFilter struct {
	AccountID *int64
	Action    Action
	Key       int
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

const selectEntries = "SELECT id, timestamp, account_id, username, action, record_key, detail FROM audit_entries"

// Query returns entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.AccountID != nil {
		clauses = append(clauses, "account_id = ?")
		args = append(args, *filter.AccountID)
	}
	if filter.Action != "" {
		clauses = append(clauses, "action = ?")
		args = append(args, string(filter.Action))
	}
	if filter.Key > 0 {
		clauses = append(clauses, "record_key = ?")
		args = append(args, filter.Key)
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}
	if filter.Until != nil {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, filter.Until.UTC().Format(time.DateTime))
	}

	query := selectEntries
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	// rowid breaks ties between entries logged in the same second.
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteBefore removes all entries older than the given time and returns
// the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM audit_entries WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old audit entries: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Entry, error) {
	var (
		e      Entry
		ts     string
		action string
		detail sql.NullString
	)
	if err := sc.Scan(&e.ID, &ts, &e.AccountID, &e.Username, &action, &e.Key, &detail); err != nil {
		return nil, err
	}

	e.Action = Action(action)
	e.Detail = detail.String
	if t, err := time.Parse(time.DateTime, ts); err == nil {
		e.Timestamp = t
	} else if t, err := time.Parse(time.RFC3339, ts); err == nil {
		e.Timestamp = t
	}
	return &e, nil
}

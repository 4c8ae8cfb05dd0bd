package accounts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ziadkadry99/dexview/internal/catalog"
	"github.com/ziadkadry99/dexview/internal/db"
)

// Store persists accounts. Ids are integers assigned as max existing id + 1,
// starting from 0.
type Store struct {
	db *db.DB
}

// NewStore creates a new account store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

const accountColumns = `id, username, email, password_hash, profile_picture, favorites, created_at`

// List returns every account ordered by id.
func (s *Store) List(ctx context.Context) ([]Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Create inserts a new account with the next integer id. It fails with
// ErrUserExists when the username or the email is already taken.
func (s *Store) Create(ctx context.Context, a Account) (*Account, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var taken int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE username = ? OR email = ?`, a.Username, a.Email,
	).Scan(&taken); err != nil {
		return nil, fmt.Errorf("checking existing accounts: %w", err)
	}
	if taken > 0 {
		return nil, ErrUserExists
	}

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id) + 1, 0) FROM accounts`).Scan(&a.ID); err != nil {
		return nil, fmt.Errorf("allocating account id: %w", err)
	}
	if a.Favorites == nil {
		a.Favorites = []catalog.Key{}
	}
	favs, err := json.Marshal(a.Favorites)
	if err != nil {
		return nil, fmt.Errorf("encoding favorites: %w", err)
	}
	a.CreatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO accounts (id, username, email, password_hash, profile_picture, favorites, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Username, a.Email, a.PasswordHash, a.ProfilePicture, string(favs), a.CreatedAt, a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting account: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing account: %w", err)
	}
	return &a, nil
}

// GetByID returns the account with the given id, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// FindByUsername returns the account with the given username, or ErrNotFound.
func (s *Store) FindByUsername(ctx context.Context, username string) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// UpdateFavorites replaces only the favorites field of an account.
func (s *Store) UpdateFavorites(ctx context.Context, id int64, favorites []catalog.Key) error {
	if favorites == nil {
		favorites = []catalog.Key{}
	}
	favs, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET favorites = ?, updated_at = ? WHERE id = ?`,
		string(favs), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating favorites: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating favorites: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*Account, error) {
	var a Account
	var favs string
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.ProfilePicture, &favs, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning account: %w", err)
	}
	if err := json.Unmarshal([]byte(favs), &a.Favorites); err != nil {
		return nil, fmt.Errorf("decoding favorites for account %d: %w", a.ID, err)
	}
	if a.Favorites == nil {
		a.Favorites = []catalog.Key{}
	}
	return &a, nil
}

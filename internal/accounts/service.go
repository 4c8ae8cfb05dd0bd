package accounts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ziadkadry99/dexview/internal/audit"
	"github.com/ziadkadry99/dexview/internal/catalog"
	"github.com/ziadkadry99/dexview/internal/favorites"
)

// Service implements registration, login and favorite toggling on top of a
// Store.
type Service struct {
	store    *Store
	activity ActivityLog
	now      func() time.Time
}

// ActivityLog records account actions.
type ActivityLog interface {
	Log(ctx context.Context, entry audit.Entry) error
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithActivity records registrations, logins and favorite changes.
func WithActivity(activity ActivityLog) ServiceOption {
	return func(s *Service) { s.activity = activity }
}

// NewService creates an account service.
func NewService(store *Store, opts ...ServiceOption) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() *Store { return s.store }

// Register validates and stores a new account.
func (s *Service) Register(ctx context.Context, reg Registration) (*Account, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	if reg.Username == "" || reg.Password == "" || reg.Email == "" {
		return nil, fmt.Errorf("%w: username, password and email are required", ErrInvalid)
	}
	if _, err := mail.ParseAddress(reg.Email); err != nil {
		return nil, fmt.Errorf("%w: email %q", ErrInvalid, reg.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	a, err := s.store.Create(ctx, Account{
		Username:       reg.Username,
		Email:          reg.Email,
		ProfilePicture: reg.ProfilePicture,
		PasswordHash:   string(hash),
	})
	if err != nil {
		return nil, err
	}
	log.Printf("accounts: registered %s as id %d", a.Username, a.ID)
	s.record(ctx, a, audit.ActionRegistered, 0, "")
	return a, nil
}

// Login checks a username and password.
func (s *Service) Login(ctx context.Context, username, password string) (*Account, error) {
	a, err := s.store.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		s.record(ctx, a, audit.ActionLoginFailed, 0, "")
		return nil, ErrBadCredentials
	}
	s.record(ctx, a, audit.ActionLoggedIn, 0, "")
	return a, nil
}

// Get returns the account with id.
func (s *Service) Get(ctx context.Context, id int64) (*Account, error) {
	return s.store.GetByID(ctx, id)
}

// ToggleFavorite flips key in the account's favorites, persists the new list
// and returns the account as re-read from the store.
func (s *Service) ToggleFavorite(ctx context.Context, id int64, key catalog.Key) (*Account, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateFavorites(ctx, id, favorites.Toggled(a.Favorites, key)); err != nil {
		return nil, err
	}
	action := audit.ActionFavoriteAdded
	if favorites.FromKeys(a.Favorites).Has(key) {
		action = audit.ActionFavoriteRemoved
	}
	s.record(ctx, a, action, key, "")
	return s.store.GetByID(ctx, id)
}

// SetFavorites replaces the account's favorites and returns the stored account.
func (s *Service) SetFavorites(ctx context.Context, id int64, keys []catalog.Key) (*Account, error) {
	set := favorites.FromKeys(keys).Keys()
	if err := s.store.UpdateFavorites(ctx, id, set); err != nil {
		return nil, err
	}
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.record(ctx, a, audit.ActionFavoritesReplaced, 0, fmt.Sprintf("%d favorites", len(set)))
	return a, nil
}

// record writes an activity entry. Failures are logged and never fail the
// account operation.
func (s *Service) record(ctx context.Context, a *Account, action audit.Action, key catalog.Key, detail string) {
	if s.activity == nil {
		return
	}
	err := s.activity.Log(ctx, audit.Entry{
		AccountID: a.ID,
		Username:  a.Username,
		Action:    action,
		Key:       int(key),
		Detail:    detail,
	})
	if err != nil {
		log.Printf("accounts: recording %s for %s: %v", action, a.Username, err)
	}
}

// Greet returns the greeting for the current local time.
func (s *Service) Greet() string {
	return Greeting(s.now().Hour())
}

// Greeting returns the greeting for an hour of the day.
func Greeting(hour int) string {
	switch {
	case hour < 8:
		return "Good morning"
	case hour < 13:
		return "Good afternoon"
	case hour < 18:
		return "Good evening"
	default:
		return "Good night"
	}
}

package store

import (
	"context"
	"errors"

	"github.com/veligame/adminpanel/internal/panel/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for the relational side (user
// records). Concrete drivers (sqlite) implement this. It exposes
// sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByUsernameOrEmail is the registration fast-path existence check.
	// The UNIQUE constraints on insert remain the authoritative guard.
	GetUserByUsernameOrEmail(ctx context.Context, username, email string) (domain.User, error)

	// ListUsers returns all users ordered by creation date (newest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when username or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser replaces username, email and password_hash and bumps
	// updated_at. Returns ErrAlreadyExists on a uniqueness collision.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes the user record.
	DeleteUser(ctx context.Context, userID string) error
}

// Configurations is the document-store collection of building
// configurations. Implemented by the mongo driver.
type Configurations interface {
	// ListConfigurations returns every stored configuration.
	ListConfigurations(ctx context.Context) ([]domain.BuildingConfiguration, error)

	// InsertConfiguration stores a new configuration (id is ULID).
	InsertConfiguration(ctx context.Context, c domain.BuildingConfiguration) error

	// DeleteConfiguration removes a configuration by id.
	// Returns ErrNotFound when no document matched.
	DeleteConfiguration(ctx context.Context, id string) error

	// Ping verifies the document store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying client.
	Close(ctx context.Context) error
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/openshelf/catalog/internal/catalog/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and individually
// mockable. No operation spans repositories atomically; the catalog has no
// cross-store invariant to protect.
type Store interface {
	Users() Users
	Products() Products
	RevokedTokens() RevokedTokens

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Users are otherwise created out of band; nothing in the API mutates them.
	CreateUser(ctx context.Context, u domain.User) error

	// IsEmpty returns true if there are no users. Drives admin seeding.
	IsEmpty(ctx context.Context) (bool, error)
}

type Products interface {
	// CreateProduct inserts a new product (id is ULID).
	CreateProduct(ctx context.Context, p domain.Product) error

	// ListProducts returns all products, newest first.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// GetProductByID returns a product by id.
	GetProductByID(ctx context.Context, id string) (domain.Product, error)

	// UpdateProduct replaces the mutable fields (name, price, image, type)
	// and bumps updated_at. Returns ErrNotFound for an unknown id.
	UpdateProduct(ctx context.Context, p domain.Product) error

	// DeleteProduct removes a product. Returns ErrNotFound for an unknown id.
	DeleteProduct(ctx context.Context, id string) error
}

type RevokedTokens interface {
	// CreateRevokedToken inserts a revocation record. The token string is the
	// primary key; inserting a duplicate returns ErrAlreadyExists.
	CreateRevokedToken(ctx context.Context, t domain.RevokedToken) error

	// IsTokenRevoked reports whether token has a revocation record created at
	// or after since. Records older than the revocation window are logically
	// invisible even before housekeeping purges them.
	IsTokenRevoked(ctx context.Context, token string, since time.Time) (bool, error)

	// DeleteExpiredRevokedTokens purges records created before createdBefore
	// or whose token expiry passed expiresBefore. Returns rows removed.
	DeleteExpiredRevokedTokens(ctx context.Context, createdBefore, expiresBefore time.Time) (int64, error)

	// CountRevokedTokens returns the number of stored revocation records.
	CountRevokedTokens(ctx context.Context) (int64, error)
}

// Package repository persists users and magic-link tokens.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// User is the persisted account record. The two entitlement flags are read
// at session issuance time and baked into the JWT.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      *string
	IsAdmin   bool
	IsSeller  bool
	CreatedAt time.Time
}

// Repository wraps the user and token tables.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a repository on the given pool.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetUserByID fetches a user by primary key.
func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	return r.scanUser(ctx, `
		SELECT id, email, name, is_admin, is_seller, created_at
		FROM users WHERE id = $1`, id)
}

// GetUserByEmail fetches a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return r.scanUser(ctx, `
		SELECT id, email, name, is_admin, is_seller, created_at
		FROM users WHERE email = $1`, email)
}

// UpsertUserByEmail returns the user for the email, creating the record on
// first sign-in. The name is only filled in when the row is created or the
// stored name is empty.
func (r *Repository) UpsertUserByEmail(ctx context.Context, email string, name *string) (User, error) {
	return r.scanUser(ctx, `
		INSERT INTO users (id, email, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET name = COALESCE(users.name, EXCLUDED.name)
		RETURNING id, email, name, is_admin, is_seller, created_at`,
		uuid.New(), email, name)
}

// SetEntitlements updates the administrator/seller flags for a user.
func (r *Repository) SetEntitlements(ctx context.Context, userID uuid.UUID, isAdmin, isSeller bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET is_admin = $2, is_seller = $3 WHERE id = $1`,
		userID, isAdmin, isSeller)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateMagicLinkToken stores a hashed sign-in token for the email.
func (r *Repository) CreateMagicLinkToken(ctx context.Context, email, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO magic_link_tokens (token_hash, email, expires_at)
		VALUES ($1, $2, $3)`,
		tokenHash, email, expiresAt)
	return err
}

// ConsumeMagicLinkToken atomically marks an unused token as used and returns
// the email it was issued for along with its expiry.
func (r *Repository) ConsumeMagicLinkToken(ctx context.Context, tokenHash string) (string, time.Time, error) {
	var email string
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, `
		UPDATE magic_link_tokens
		SET used_at = now()
		WHERE token_hash = $1 AND used_at IS NULL
		RETURNING email, expires_at`,
		tokenHash).Scan(&email, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", time.Time{}, ErrNotFound
	}
	if err != nil {
		return "", time.Time{}, err
	}
	return email, expiresAt, nil
}

func (r *Repository) scanUser(ctx context.Context, query string, args ...interface{}) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.Name, &user.IsAdmin, &user.IsSeller, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

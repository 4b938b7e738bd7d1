// Package store implements PostgreSQL persistence for users and products.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anshul/ecommerce-store/backend/internal/common"
	"github.com/anshul/ecommerce-store/backend/internal/models"
)

// queryTimeout bounds every store call so a stalled database surfaces as a
// transient failure instead of hanging the request.
const queryTimeout = 2 * time.Second

const uniqueViolation = "23505"

// PostgresStore handles user and product persistence against PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the users and products tables if they don't exist.
// Uniqueness of username and email is enforced here, at the store level,
// so concurrent duplicate registrations cannot both succeed.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         BIGSERIAL PRIMARY KEY,
			username   VARCHAR(50)  UNIQUE NOT NULL,
			email      VARCHAR(255) UNIQUE NOT NULL,
			password   VARCHAR(255) NOT NULL,
			role       VARCHAR(20)  NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ  DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id          BIGSERIAL PRIMARY KEY,
			name        VARCHAR(255)   NOT NULL,
			description TEXT           NOT NULL,
			price       NUMERIC(10,2)  NOT NULL,
			image       VARCHAR(512)   NOT NULL,
			category    VARCHAR(100)   NOT NULL,
			stock       INTEGER        NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ    DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate products: %w", err)
	}
	return nil
}

// FindByUsernameOrEmail returns the user matching either field, or nil.
func (s *PostgresStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password, role, created_at
		 FROM users WHERE username = $1 OR email = $2`,
		username, email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("find user by username or email", err)
	}
	return &u, nil
}

// FindByEmail returns the user with the given email, or nil.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password, role, created_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("find user by email", err)
	}
	return &u, nil
}

// FindByID returns the user with the given id, or nil.
func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password, role, created_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("find user by id", err)
	}
	return &u, nil
}

// Insert creates a user and returns its id. A unique-index violation on
// username or email maps to common.ErrConflict.
func (s *PostgresStore) Insert(ctx context.Context, username, email, passwordHash, role string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		username, email, passwordHash, role,
	).Scan(&id)
	if err != nil {
		return 0, classify("insert user", err)
	}
	return id, nil
}

// classify translates driver errors into the shared taxonomy. Raw database
// errors never cross the store boundary untagged.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", common.ErrConflict, op)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %v", common.ErrUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/attendance-be/internal/models"
	"github.com/hongminglow/attendance-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for users, employees and attendance.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store and runs migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'employee',
			approved BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS approved BOOLEAN NOT NULL DEFAULT FALSE;`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS created_at TIMESTAMPTZ NOT NULL DEFAULT NOW();`,
		`CREATE TABLE IF NOT EXISTS employees (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT UNIQUE NOT NULL REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS attendance (
			id BIGSERIAL PRIMARY KEY,
			employee_id BIGINT NOT NULL REFERENCES employees(id),
			attendance_date DATE NOT NULL,
			in_time TIME NOT NULL,
			out_time TIME,
			working_hours NUMERIC(6,2)
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS attendance_employee_day_unique_idx ON attendance (employee_id, attendance_date);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateEmployeeUser inserts the user and its employee row in one transaction.
func (s *Store) CreateEmployeeUser(ctx context.Context, user models.User) (models.User, error) {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		const insertUser = `
			INSERT INTO users (email, password, role, approved)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at;`
		if err := tx.QueryRow(ctx, insertUser, user.Email, user.Password, user.Role, user.Approved).Scan(&user.ID, &user.CreatedAt); err != nil {
			return err
		}
		var employeeID int64
		if err := tx.QueryRow(ctx, `INSERT INTO employees (user_id) VALUES ($1) RETURNING id;`, user.ID).Scan(&employeeID); err != nil {
			return err
		}
		user.EmployeeID = &employeeID
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return user, nil
}

// EnsureUser inserts a user without an employee row unless the email exists.
func (s *Store) EnsureUser(ctx context.Context, user models.User) (bool, error) {
	const query = `
		INSERT INTO users (email, password, role, approved)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING;`
	tag, err := s.pool.Exec(ctx, query, user.Email, user.Password, user.Role, user.Approved)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
	SELECT u.id, u.email, u.password, u.role, u.approved, u.created_at, e.id
	FROM users u
	LEFT JOIN employees e ON e.user_id = u.id
	WHERE u.email = $1;
	`
	var user models.User
	err := s.pool.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.Password, &user.Role, &user.Approved, &user.CreatedAt, &user.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// ListPending returns employees awaiting approval ordered by id.
func (s *Store) ListPending(ctx context.Context) ([]models.PendingUser, error) {
	const query = `
	SELECT id, email FROM users
	WHERE role = 'employee' AND approved = FALSE
	ORDER BY id;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PendingUser, error) {
		var p models.PendingUser
		err := row.Scan(&p.ID, &p.Email)
		return p, err
	})
}

// Approve sets approved=true unconditionally for the user id.
func (s *Store) Approve(ctx context.Context, userID int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET approved = TRUE WHERE id = $1 AND approved = FALSE;`, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chessnet/dataserver/internal/domain"
)

type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userSelectFields = `email, username, password, COALESCE(role, '') as role`

// scanUser is a helper that scans a row into a User struct
func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.Email,
		&user.Username,
		&user.Password,
		&user.Role,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user. The users table carries unique constraints
// on username and LOWER(email); a violation that raced past the service-level
// check comes back as domain.ErrDuplicate.
func (r *UserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
	INSERT INTO users (email, username, password, role)
	VALUES ($1, $2, $3, $4);
	`
	_, err := r.DB.ExecContext(ctx, query, user.Email, user.Username, user.Password, user.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user %q: %w", user.Username, domain.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %v", err)
	}
	return nil
}

// GetUserByUsername retrieves a user by exact username
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userSelectFields + ` FROM users WHERE username = $1;`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email, case-insensitively
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userSelectFields + ` FROM users WHERE LOWER(email) = LOWER($1);`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// ListUsers retrieves all users in insertion order
func (r *UserRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userSelectFields + ` FROM users;`
	return r.queryUsers(ctx, query)
}

// ListUsersByUsernameContaining retrieves users whose username contains the
// given substring, case-sensitively, at any position.
func (r *UserRepo) ListUsersByUsernameContaining(ctx context.Context, substr string) ([]domain.User, error) {
	query := `SELECT ` + userSelectFields + ` FROM users WHERE POSITION($1 IN username) > 0;`
	return r.queryUsers(ctx, query, substr)
}

func (r *UserRepo) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %v", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.Email, &user.Username, &user.Password, &user.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %v", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505) from the pgx driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"account_service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicateMobileNumber = errors.New("mobile number already registered")
)

// DBTX is the subset of *pgxpool.Pool the repository needs.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByMobileNumber(ctx context.Context, mobileNumber string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, changes model.UserChanges) (*model.User, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, mobile_number, password_hash, created_at, updated_at`

// Create inserts a new user; the store assigns the id and timestamps.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (name, email, mobile_number, password_hash)
            VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, user.Name, user.Email, user.MobileNumber, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return ErrDuplicateMobileNumber
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByMobileNumber retrieves a user by their mobile number
func (r *userRepository) FindByMobileNumber(ctx context.Context, mobileNumber string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE mobile_number = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, mobileNumber))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user by mobile number: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// Update writes the non-nil fields of changes in a single statement and
// returns the updated record.
func (r *userRepository) Update(ctx context.Context, id string, changes model.UserChanges) (*model.User, error) {
	sql := `UPDATE users SET
                name = COALESCE($2, name),
                email = COALESCE($3, email),
                mobile_number = COALESCE($4, mobile_number),
                password_hash = COALESCE($5, password_hash),
                updated_at = NOW()
            WHERE id = $1
            RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRow(ctx, sql, id, changes.Name, changes.Email, changes.MobileNumber, changes.PasswordHash))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		if isPgError(err, pgUniqueViolation) {
			return nil, ErrDuplicateMobileNumber
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.MobileNumber, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		// A malformed id can never match a row.
		if errors.Is(err, pgx.ErrNoRows) || isPgError(err, pgInvalidTextRepresentation) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

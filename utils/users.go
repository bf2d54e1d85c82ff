package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"useradmin/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = "id, name, email, password_hash, status, user_group, created_at, last_modified_at"

const (
	// Seed credentials for the system default administrator. Rotate the
	// password after first login.
	DefaultAdminEmail    = "admin@admin.com"
	defaultAdminName     = "Super"
	defaultAdminPassword = "hikim2rus"
)

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Status, &u.Group, &u.CreatedAt, &u.LastModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user and returns the stored record. The caller is
// responsible for hashing the password and checking email uniqueness first.
func CreateUser(ctx context.Context, db *pgxpool.Pool, name, email, passwordHash string, status bool, group string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := `INSERT INTO users (id, name, email, password_hash, status, user_group)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	row := db.QueryRow(ctx, stmt, uuid.New(), name, email, passwordHash, status, group)
	return scanUser(row)
}

func GetUserByID(ctx context.Context, db *pgxpool.Pool, id string) (*models.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	row := db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1;", userID)
	return scanUser(row)
}

func GetUserByEmail(ctx context.Context, db *pgxpool.Pool, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	row := db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1;", email)
	return scanUser(row)
}

func ListUsers(ctx context.Context, db *pgxpool.Pool) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	rows, err := db.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at;")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser replaces name, email, status and group, stamping
// last_modified_at. Returns ErrUserNotFound when no row matches.
func UpdateUser(ctx context.Context, db *pgxpool.Pool, id string, name, email string, status bool, group string) (*models.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := `UPDATE users SET name = $1, email = $2, status = $3, user_group = $4, last_modified_at = now()
		WHERE id = $5
		RETURNING ` + userColumns
	row := db.QueryRow(ctx, stmt, name, email, status, group, userID)
	return scanUser(row)
}

// UpdateUserPassword stores a new password hash for the user, stamping
// last_modified_at.
func UpdateUserPassword(ctx context.Context, db *pgxpool.Pool, id uuid.UUID, passwordHash string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := `UPDATE users SET password_hash = $1, last_modified_at = now()
		WHERE id = $2
		RETURNING ` + userColumns
	row := db.QueryRow(ctx, stmt, passwordHash, id)
	return scanUser(row)
}

// DeleteUser removes a user, reporting whether a row was deleted.
func DeleteUser(ctx context.Context, db *pgxpool.Pool, id string) (bool, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tag, err := db.Exec(ctx, "DELETE FROM users WHERE id = $1;", userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func EmailInUse(ctx context.Context, db *pgxpool.Pool, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var exists bool
	err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("database error checking email: %w", err)
	}
	return exists, nil
}

// CreateDefaultUser seeds the system default administrator if no user with
// the well-known email exists yet. Safe to run on every start.
func CreateDefaultUser(ctx context.Context, db *pgxpool.Pool) error {
	_, err := GetUserByEmail(ctx, db, DefaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	passwordHash, err := HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	_, err = CreateUser(ctx, db, defaultAdminName, DefaultAdminEmail, passwordHash, true, models.GroupAdministrator)
	if err != nil {
		return err
	}

	log.Println("admin@admin.com as the System Default Admin with the default password has been created, ensure the default password is changed.")
	return nil
}

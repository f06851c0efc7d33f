/*
Package user contains the account and profile domain of the user service.

This file implements the Postgres data access for users and profiles on the
shared pgx pool, translating driver errors into the db package sentinels.
*/
package user

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"youapp/internal/app/db"
)

// Store defines the persistence operations the user service depends on.
type Store interface {
	CreateUser(ctx context.Context, u User) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByUserName(ctx context.Context, userName string) (*User, error)
	CreateProfile(ctx context.Context, p Profile) error
	FindProfileByUser(ctx context.Context, userID string) (*Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
}

// Repo is the pgx-backed Store implementation.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo constructs a Repo over the shared connection pool.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateUser inserts a user row. A unique-constraint conflict on email or
// user name is reported as db.ErrDuplicate.
func (r *Repo) CreateUser(ctx context.Context, u User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, user_name, password_hash, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULL)
	`, u.ID, u.Email, u.UserName, u.PasswordHash, u.CreatedAt, u.UpdatedAt)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return db.ErrDuplicate
		}
		return err
	}

	return nil
}

const userColumns = `id, email, user_name, password_hash, created_at, updated_at, deleted_at`

func (r *Repo) findUser(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Email, &u.UserName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt)

	if err != nil {
		if db.IsNoRows(err) {
			return nil, db.ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}

// FindUserByEmail fetches a user by email, returning db.ErrNotFound when absent.
func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.findUser(ctx, "email = $1", email)
}

// FindUserByUserName fetches a user by account name, returning db.ErrNotFound when absent.
func (r *Repo) FindUserByUserName(ctx context.Context, userName string) (*User, error) {
	return r.findUser(ctx, "user_name = $1", userName)
}

// CreateProfile inserts a profile row. A second profile for the same user is
// reported as db.ErrDuplicate.
func (r *Repo) CreateProfile(ctx context.Context, p Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (id, user_id, display_name, gender, birthday, height, weight, image_url, interests, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULL)
	`, p.ID, p.UserID, p.DisplayName, p.Gender, p.Birthday, p.Height, p.Weight, p.ImageURL, p.Interests, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return db.ErrDuplicate
		}
		return err
	}

	return nil
}

// FindProfileByUser fetches the profile of a user, returning db.ErrNotFound
// when the user has none.
func (r *Repo) FindProfileByUser(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, display_name, gender, birthday, height, weight, image_url, interests, created_at, updated_at, deleted_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.DisplayName, &p.Gender, &p.Birthday, &p.Height, &p.Weight, &p.ImageURL, &p.Interests, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)

	if err != nil {
		if db.IsNoRows(err) {
			return nil, db.ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

// SaveProfile writes the full profile row back. The service merges partial
// updates into the loaded profile before saving, keeping the SQL static.
func (r *Repo) SaveProfile(ctx context.Context, p Profile) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET display_name = $2, gender = $3, birthday = $4, height = $5,
		    weight = $6, image_url = $7, interests = $8, updated_at = $9
		WHERE id = $1
	`, p.ID, p.DisplayName, p.Gender, p.Birthday, p.Height, p.Weight, p.ImageURL, p.Interests, p.UpdatedAt)
	return err
}

/*
Package chat contains the room-membership and message-broadcast core.

This file implements the Postgres data access for rooms, memberships, and
messages on top of the shared pgx pool. Driver errors are translated into the
db package sentinels so the service layer stays free of pgx types.
*/
package chat

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"youapp/internal/app/db"
)

// Store defines the persistence operations the chat service depends on.
type Store interface {
	CreateRoomWithCreator(ctx context.Context, room Room, member Membership) error
	AddMember(ctx context.Context, member Membership) error
	FindRoom(ctx context.Context, roomID string) (*Room, error)
	FindMembership(ctx context.Context, userID, roomID string) (*Membership, error)
	CreateMessage(ctx context.Context, message Message) error
	RoomMessages(ctx context.Context, roomID string) ([]Message, error)
	UserRooms(ctx context.Context, userID string) ([]Membership, error)
}

// Repo is the pgx-backed Store implementation.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo constructs a Repo over the shared connection pool.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateRoomWithCreator inserts the room and the creator's membership in one
// transaction so a failure never leaves an orphan room.
func (r *Repo) CreateRoomWithCreator(ctx context.Context, room Room, member Membership) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create room tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO rooms (id, name, created_by, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, NULL)
	`, room.ID, room.Name, room.CreatedBy, room.CreatedAt, room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert room: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO room_members (id, user_id, room_id, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, NULL)
	`, member.ID, member.UserID, member.RoomID, member.CreatedAt, member.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert creator membership: %w", err)
	}

	return tx.Commit(ctx)
}

// AddMember inserts a membership row. A unique-constraint conflict on
// (user_id, room_id) is reported as db.ErrDuplicate; a missing room as
// db.ErrNotFound.
func (r *Repo) AddMember(ctx context.Context, member Membership) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO room_members (id, user_id, room_id, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, NULL)
	`, member.ID, member.UserID, member.RoomID, member.CreatedAt, member.UpdatedAt)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return db.ErrDuplicate
		}
		if db.IsForeignKeyViolation(err) {
			return db.ErrNotFound
		}
		return err
	}

	return nil
}

// FindRoom fetches a room by id, returning db.ErrNotFound when absent.
func (r *Repo) FindRoom(ctx context.Context, roomID string) (*Room, error) {
	var room Room
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_by, created_at, updated_at, deleted_at
		FROM rooms
		WHERE id = $1
	`, roomID).Scan(&room.ID, &room.Name, &room.CreatedBy, &room.CreatedAt, &room.UpdatedAt, &room.DeletedAt)

	if err != nil {
		if db.IsNoRows(err) {
			return nil, db.ErrNotFound
		}
		return nil, err
	}

	return &room, nil
}

// FindMembership fetches the membership for (userID, roomID), returning
// db.ErrNotFound when the pair has no row.
func (r *Repo) FindMembership(ctx context.Context, userID, roomID string) (*Membership, error) {
	var m Membership
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, room_id, created_at, updated_at, deleted_at
		FROM room_members
		WHERE user_id = $1 AND room_id = $2
	`, userID, roomID).Scan(&m.ID, &m.UserID, &m.RoomID, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt)

	if err != nil {
		if db.IsNoRows(err) {
			return nil, db.ErrNotFound
		}
		return nil, err
	}

	return &m, nil
}

// CreateMessage inserts a message row.
func (r *Repo) CreateMessage(ctx context.Context, message Message) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO messages (id, room_id, user_id, content, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULL)
	`, message.ID, message.RoomID, message.UserID, message.Content, message.CreatedAt, message.UpdatedAt)
	return err
}

// RoomMessages returns all messages of a room in insertion order. The seq
// column orders exactly even when created_at collides.
func (r *Repo) RoomMessages(ctx context.Context, roomID string) ([]Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, room_id, user_id, content, created_at, updated_at, deleted_at
		FROM messages
		WHERE room_id = $1
		ORDER BY seq
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.UserID, &m.Content, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// UserRooms returns every membership of a user, without pagination.
func (r *Repo) UserRooms(ctx context.Context, userID string) ([]Membership, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, room_id, created_at, updated_at, deleted_at
		FROM room_members
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := []Membership{}
	for rows.Next() {
		var m Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.RoomID, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

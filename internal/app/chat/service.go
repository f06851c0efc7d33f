/*
Package chat contains the room-membership and message-broadcast core.

This file defines the Service, which owns every invariant check of the chat
domain: room creation with its creator membership, idempotent joins, message
authorization, and history retrieval. The stores underneath are passive; all
consistency rules live here.
*/
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"youapp/internal/app/db"
	"youapp/internal/pkg/errs"
	"youapp/internal/pkg/logx"
)

// Service implements the chat business rules over a Store.
type Service struct {
	store  Store
	logger zerolog.Logger
}

// NewService constructs a Service over the given store.
func NewService(store Store) *Service {
	return &Service{
		store:  store,
		logger: logx.Logger().With().Str("component", "ChatService").Logger(),
	}
}

// CreateRoom creates a room and the creator's membership atomically and
// returns the new room id.
func (s *Service) CreateRoom(ctx context.Context, name *string, createdBy string) (string, error) {
	now := time.Now().UTC()

	room := Room{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	member := Membership{
		ID:        uuid.NewString(),
		UserID:    createdBy,
		RoomID:    room.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateRoomWithCreator(ctx, room, member); err != nil {
		return "", err
	}

	s.logger.Info().Str("room_id", room.ID).Str("created_by", createdBy).Msg("Room created.")
	return room.ID, nil
}

// JoinRoom adds the user to the room. Joining a room the user already belongs
// to is a no-op; the unique constraint on (user_id, room_id) makes the
// operation idempotent under concurrent joins as well.
func (s *Service) JoinRoom(ctx context.Context, roomID, userID string) error {
	now := time.Now().UTC()

	member := Membership{
		ID:        uuid.NewString(),
		UserID:    userID,
		RoomID:    roomID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.AddMember(ctx, member)
	if errors.Is(err, db.ErrDuplicate) {
		return nil
	}
	if errors.Is(err, db.ErrNotFound) {
		return errs.NewError(errs.ErrRoomNotFound)
	}
	if err != nil {
		return err
	}

	s.logger.Info().Str("room_id", roomID).Str("user_id", userID).Msg("User joined room.")
	return nil
}

// CreateMessage persists a message in an existing room and returns its id.
// Posting into a nonexistent room fails with a NotFound error. Sender
// membership is not required; any authenticated user may post into any
// existing room.
func (s *Service) CreateMessage(ctx context.Context, roomID, userID, content string) (string, error) {
	_, err := s.store.FindRoom(ctx, roomID)
	if errors.Is(err, db.ErrNotFound) {
		return "", errs.NewError(errs.ErrRoomNotFound)
	}
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()

	message := Message{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateMessage(ctx, message); err != nil {
		return "", err
	}

	return message.ID, nil
}

// RoomMessages returns the full message history of a room in insertion order.
// Callers without a membership for the room are rejected with an
// authorization error.
func (s *Service) RoomMessages(ctx context.Context, roomID, userID string) ([]Message, error) {
	_, err := s.store.FindMembership(ctx, userID, roomID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errs.NewError(errs.ErrNotRoomMember)
	}
	if err != nil {
		return nil, err
	}

	return s.store.RoomMessages(ctx, roomID)
}

// UserRooms returns every membership of the user, without pagination.
func (s *Service) UserRooms(ctx context.Context, userID string) ([]Membership, error) {
	return s.store.UserRooms(ctx, userID)
}

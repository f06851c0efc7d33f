/*
Package chat contains the room-membership and message-broadcast core shared by
the HTTP query surface and the realtime gateway.

This file defines the persisted record shapes. Timestamps are stamped by the
service at write time; the store never auto-stamps. The deleted_at marker is a
nullable soft-delete timestamp currently unused by any query filter.
*/
package chat

import "time"

// Room is a chat room. The id is immutable once created and rooms are never
// hard-deleted.
type Room struct {
	ID        string     `json:"id"`
	Name      *string    `json:"name,omitempty"`
	CreatedBy string     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// Membership asserts that a user belongs to a room. It is the sole
// authorization primitive for message read access. Uniqueness per
// (UserID, RoomID) is enforced by a database constraint.
type Membership struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	RoomID    string     `json:"roomId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// Message is a chat message, immutable after creation.
type Message struct {
	ID        string     `json:"id"`
	RoomID    string     `json:"roomId"`
	UserID    string     `json:"userId"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

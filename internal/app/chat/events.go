/*
Package chat contains the room-membership and message-broadcast core.

This file defines the WebSocket event vocabulary. Every frame in either
direction is an Envelope carrying an event name and a JSON payload. Events are
independently dispatched; no ordering is guaranteed across event types.
*/
package chat

import "encoding/json"

// Client-to-server events.
const (
	EventCreateRoom  = "createRoom"
	EventJoinRoom    = "joinRoom"
	EventSendMessage = "sendMessage"
	EventIdentify    = "identify"
)

// Server-to-client events.
const (
	EventRoomCreated = "roomCreated"
	EventUserJoined  = "userJoined"
	EventNewMessage  = "newMessage"
	EventError       = "error"
)

// Envelope is the wire frame for every WebSocket event.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// CreateRoomPayload is the inbound payload of EventCreateRoom.
type CreateRoomPayload struct {
	RoomName *string `json:"roomName,omitempty"`
}

// JoinRoomPayload is the inbound payload of EventJoinRoom.
type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
}

// SendMessagePayload is the inbound payload of EventSendMessage.
type SendMessagePayload struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

// RoomCreatedPayload acknowledges room creation to the caller only.
type RoomCreatedPayload struct {
	RoomID string `json:"roomId"`
}

// UserJoinedPayload is broadcast to every subscriber of the room, the joiner
// included.
type UserJoinedPayload struct {
	UserID string `json:"userId"`
	RoomID string `json:"roomId"`
}

// NewMessagePayload is broadcast to every subscriber of the room. The message
// content itself is deliberately not re-broadcast; clients fetch it over HTTP.
type NewMessagePayload struct {
	RoomID string `json:"roomId"`
	Sender string `json:"sender"`
}

// ErrorPayload surfaces a business-rule rejection to the triggering client.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewEvent builds an outbound Envelope, marshaling the payload.
func NewEvent(event string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{Event: event, Data: data}, nil
}

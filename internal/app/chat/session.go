/*
Package chat contains the room-membership and message-broadcast core.

This file defines the Session, an authenticated WebSocket connection. The
decoded identity is held on the session record created at upgrade time and
threaded through every event handler; the connection object itself is never
mutated. ReadPump and WritePump manage the communication loops and heartbeats.
*/
package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"youapp/internal/pkg/errs"
	"youapp/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 8192

	// MaxContentBytes is the maximum allowed size of message content.
	MaxContentBytes = 5000
)

// Session represents an authenticated WebSocket connection and its user.
type Session struct {
	hub *Hub

	svc *Service

	conn *websocket.Conn

	// userID is the identity decoded from the bearer credential at connect time.
	userID string

	// send queues frames waiting to be written to the connection.
	send chan []byte

	logger zerolog.Logger
}

// NewSession constructs a Session for an upgraded, authenticated connection.
func NewSession(hub *Hub, svc *Service, conn *websocket.Conn, userID string) *Session {
	sessionLogger := logx.Logger().With().
		Str("component", "Session").
		Str("user_id", userID).
		Logger()

	return &Session{
		hub:    hub,
		svc:    svc,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 256),
		logger: sessionLogger,
	}
}

// Enqueue implements Outbox. It reports false when the send queue is full,
// which the Hub treats as a dead connection.
func (s *Session) Enqueue(payload []byte) bool {
	select {
	case s.send <- payload:
		return true
	default:
		return false
	}
}

// ReadPump reads frames from the connection, maintains the Pong heartbeat,
// and dispatches events until the connection closes.
func (s *Session) ReadPump() {
	defer s.cleanupOnDisconnect()

	s.logger.Info().Msg("Client connected.")

	s.conn.SetReadLimit(maxMessageSize)

	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Info().Err(err).Msg("Error reading frame (client close/going away)")
			}
			break
		}

		s.dispatch(frame)
	}
}

// cleanupOnDisconnect drops the session from every broadcast group and closes
// the connection.
func (s *Session) cleanupOnDisconnect() {
	s.logger.Info().Msg("Client disconnected.")

	s.hub.Drop(s)
	close(s.send)

	if err := s.conn.Close(); err != nil {
		s.logger.Error().Err(err).Msg("Session connection close error")
	}
}

// dispatch parses an inbound frame and routes it to its event handler. Each
// event is handled independently; there is no ordering across event types.
func (s *Session) dispatch(frame []byte) {
	var inbound Envelope
	if err := json.Unmarshal(frame, &inbound); err != nil {
		s.logger.Warn().Err(err).Bytes("frame", frame).Msg("Client sent invalid JSON")
		return
	}

	ctx := context.Background()

	switch inbound.Event {
	case EventCreateRoom:
		s.handleCreateRoom(ctx, inbound.Data)

	case EventJoinRoom:
		s.handleJoinRoom(ctx, inbound.Data)

	case EventSendMessage:
		s.handleSendMessage(ctx, inbound.Data)

	case EventIdentify:
		s.handleIdentify(ctx)

	default:
		s.logger.Warn().Str("event", inbound.Event).Msg("Client sent unsupported event")
	}
}

// handleCreateRoom creates the room, subscribes the caller to its broadcast
// group, and acknowledges with the new room id. Nothing is emitted to other
// clients.
func (s *Session) handleCreateRoom(ctx context.Context, data json.RawMessage) {
	var payload CreateRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.logger.Warn().Err(err).Msg("Client sent invalid createRoom payload")
		return
	}

	roomID, err := s.svc.CreateRoom(ctx, payload.RoomName, s.userID)
	if err != nil {
		s.sendError(err)
		return
	}

	s.hub.Subscribe(roomID, s)
	s.sendEvent(EventRoomCreated, RoomCreatedPayload{RoomID: roomID})
}

// handleJoinRoom joins the room, subscribes the caller, and broadcasts
// userJoined to all subscribers of the room, the joiner included.
func (s *Session) handleJoinRoom(ctx context.Context, data json.RawMessage) {
	var payload JoinRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.logger.Warn().Err(err).Msg("Client sent invalid joinRoom payload")
		return
	}

	if err := s.svc.JoinRoom(ctx, payload.RoomID, s.userID); err != nil {
		s.sendError(err)
		return
	}

	s.hub.Subscribe(payload.RoomID, s)

	event, err := NewEvent(EventUserJoined, UserJoinedPayload{UserID: s.userID, RoomID: payload.RoomID})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to build userJoined event")
		return
	}
	s.hub.Broadcast(payload.RoomID, event)
}

// handleSendMessage persists the message and broadcasts newMessage carrying
// only the room id and sender; the content is fetched separately over HTTP.
func (s *Session) handleSendMessage(ctx context.Context, data json.RawMessage) {
	var payload SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.logger.Warn().Err(err).Msg("Client sent invalid sendMessage payload")
		return
	}

	if len(payload.Message) > MaxContentBytes {
		s.sendError(errs.NewError(errs.ErrMessageContentTooLong))
		return
	}

	if _, err := s.svc.CreateMessage(ctx, payload.RoomID, s.userID, payload.Message); err != nil {
		s.sendError(err)
		return
	}

	event, err := NewEvent(EventNewMessage, NewMessagePayload{RoomID: payload.RoomID, Sender: s.userID})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to build newMessage event")
		return
	}
	s.hub.Broadcast(payload.RoomID, event)
}

// handleIdentify subscribes the connection to the broadcast group of every
// room the user belongs to. Nothing is emitted.
func (s *Session) handleIdentify(ctx context.Context) {
	memberships, err := s.svc.UserRooms(ctx, s.userID)
	if err != nil {
		s.sendError(err)
		return
	}

	for _, m := range memberships {
		s.hub.Subscribe(m.RoomID, s)
	}

	s.logger.Info().Int("rooms", len(memberships)).Msg("Session identified and resubscribed.")
}

// WritePump writes queued frames to the connection and keeps the heartbeat
// alive with periodic Pings.
func (s *Session) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := s.conn.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Session connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if !ok {
				if err := s.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					s.logger.Error().Err(err).Msg("Error writing close message")
				}
				return
			}

			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				s.logger.Error().Err(err).Msg("Error writing frame")
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logger.Error().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}

// sendEvent queues an outbound event for this session only.
func (s *Session) sendEvent(event string, payload any) {
	envelope, err := NewEvent(event, payload)
	if err != nil {
		s.logger.Error().Err(err).Str("event", event).Msg("Failed to build event")
		return
	}

	frame, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal event")
		return
	}

	if !s.Enqueue(frame) {
		s.logger.Warn().Str("event", event).Msg("Session send queue full, dropping event")
	}
}

// sendError surfaces a business-rule rejection to this client as an error
// event.
func (s *Session) sendError(err error) {
	customErr := errs.From(err)

	s.sendEvent(EventError, ErrorPayload{
		Code:    customErr.Code,
		Message: customErr.Message,
	})
}

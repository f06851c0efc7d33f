package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingOutbox collects broadcast frames; closed simulates a dead
// connection whose outbox rejects every frame.
type recordingOutbox struct {
	frames [][]byte
	closed bool
}

func (o *recordingOutbox) Enqueue(payload []byte) bool {
	if o.closed {
		return false
	}
	o.frames = append(o.frames, payload)
	return true
}

func (o *recordingOutbox) lastEvent(t *testing.T) Envelope {
	t.Helper()
	require.NotEmpty(t, o.frames)

	var env Envelope
	require.NoError(t, json.Unmarshal(o.frames[len(o.frames)-1], &env))
	return env
}

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	alice := &recordingOutbox{}
	bob := &recordingOutbox{}
	hub.Subscribe("room-1", alice)
	hub.Subscribe("room-1", bob)

	event, err := NewEvent(EventUserJoined, UserJoinedPayload{UserID: "bob", RoomID: "room-1"})
	req.NoError(err)
	hub.Broadcast("room-1", event)

	for _, o := range []*recordingOutbox{alice, bob} {
		env := o.lastEvent(t)
		req.Equal(EventUserJoined, env.Event)

		var payload UserJoinedPayload
		req.NoError(json.Unmarshal(env.Data, &payload))
		req.Equal("bob", payload.UserID)
		req.Equal("room-1", payload.RoomID)
	}
}

func TestHub_BroadcastIsScopedToRoom(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	alice := &recordingOutbox{}
	bob := &recordingOutbox{}
	hub.Subscribe("room-1", alice)
	hub.Subscribe("room-2", bob)

	event, err := NewEvent(EventNewMessage, NewMessagePayload{RoomID: "room-1", Sender: "alice"})
	req.NoError(err)
	hub.Broadcast("room-1", event)

	req.Len(alice.frames, 1)
	req.Empty(bob.frames)
}

func TestHub_SubscribeTwiceIsNoOp(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	alice := &recordingOutbox{}
	hub.Subscribe("room-1", alice)
	hub.Subscribe("room-1", alice)
	req.Equal(1, hub.Subscribers("room-1"))

	event, err := NewEvent(EventNewMessage, NewMessagePayload{RoomID: "room-1", Sender: "bob"})
	req.NoError(err)
	hub.Broadcast("room-1", event)

	req.Len(alice.frames, 1)
}

func TestHub_DropRemovesFromAllGroups(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	alice := &recordingOutbox{}
	hub.Subscribe("room-1", alice)
	hub.Subscribe("room-2", alice)

	hub.Drop(alice)
	req.Zero(hub.Subscribers("room-1"))
	req.Zero(hub.Subscribers("room-2"))

	event, err := NewEvent(EventNewMessage, NewMessagePayload{RoomID: "room-1", Sender: "bob"})
	req.NoError(err)
	hub.Broadcast("room-1", event)

	req.Empty(alice.frames)
}

func TestHub_BroadcastDropsStaleOutboxes(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	alice := &recordingOutbox{}
	dead := &recordingOutbox{closed: true}
	hub.Subscribe("room-1", alice)
	hub.Subscribe("room-1", dead)

	event, err := NewEvent(EventUserJoined, UserJoinedPayload{UserID: "carol", RoomID: "room-1"})
	req.NoError(err)
	hub.Broadcast("room-1", event)

	req.Len(alice.frames, 1)
	req.Equal(1, hub.Subscribers("room-1"))
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"youapp/internal/app/chat"
	"youapp/internal/app/db"
	"youapp/internal/app/user"
	"youapp/internal/configs"
	"youapp/internal/pkg/auth/jwt"
	"youapp/internal/pkg/resp"
)

const testSecret = "test-secret"

func testConfig() *configs.AppConfig {
	return &configs.AppConfig{
		Environment:    "development",
		Port:           8080,
		AllowedOrigins: []string{},
		JWTSecret:      testSecret,
	}
}

func tokenFor(t *testing.T, userID, userName string) string {
	t.Helper()

	token, err := jwt.GenerateToken(&jwt.Payload{ID: userID, UserName: userName}, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func bearerFor(t *testing.T, userID, userName string) string {
	t.Helper()

	return "Bearer " + tokenFor(t, userID, userName)
}

func doRequest(t *testing.T, h http.Handler, method, target, authorization string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	r := httptest.NewRequest(method, target, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		r.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) resp.Envelope {
	t.Helper()

	var env resp.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// chatStore is the in-memory chat.Store used to exercise the chat router.
type chatStore struct {
	rooms    map[string]chat.Room
	members  map[string]chat.Membership
	messages []chat.Message
}

func newChatStore() *chatStore {
	return &chatStore{
		rooms:   make(map[string]chat.Room),
		members: make(map[string]chat.Membership),
	}
}

func chatMemberKey(userID, roomID string) string {
	return userID + "|" + roomID
}

func (f *chatStore) CreateRoomWithCreator(ctx context.Context, room chat.Room, member chat.Membership) error {
	f.rooms[room.ID] = room
	f.members[chatMemberKey(member.UserID, member.RoomID)] = member
	return nil
}

func (f *chatStore) AddMember(ctx context.Context, member chat.Membership) error {
	if _, ok := f.rooms[member.RoomID]; !ok {
		return db.ErrNotFound
	}
	if _, ok := f.members[chatMemberKey(member.UserID, member.RoomID)]; ok {
		return db.ErrDuplicate
	}
	f.members[chatMemberKey(member.UserID, member.RoomID)] = member
	return nil
}

func (f *chatStore) FindRoom(ctx context.Context, roomID string) (*chat.Room, error) {
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &room, nil
}

func (f *chatStore) FindMembership(ctx context.Context, userID, roomID string) (*chat.Membership, error) {
	m, ok := f.members[chatMemberKey(userID, roomID)]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &m, nil
}

func (f *chatStore) CreateMessage(ctx context.Context, message chat.Message) error {
	f.messages = append(f.messages, message)
	return nil
}

func (f *chatStore) RoomMessages(ctx context.Context, roomID string) ([]chat.Message, error) {
	messages := []chat.Message{}
	for _, m := range f.messages {
		if m.RoomID == roomID {
			messages = append(messages, m)
		}
	}
	return messages, nil
}

func (f *chatStore) UserRooms(ctx context.Context, userID string) ([]chat.Membership, error) {
	memberships := []chat.Membership{}
	for _, m := range f.members {
		if m.UserID == userID {
			memberships = append(memberships, m)
		}
	}
	return memberships, nil
}

// userStore is the in-memory user.Store used to exercise the user router.
type userStore struct {
	users    map[string]user.User
	profiles map[string]user.Profile
}

func newUserStore() *userStore {
	return &userStore{
		users:    make(map[string]user.User),
		profiles: make(map[string]user.Profile),
	}
}

func (f *userStore) CreateUser(ctx context.Context, u user.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email || existing.UserName == u.UserName {
			return db.ErrDuplicate
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *userStore) FindUserByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *userStore) FindUserByUserName(ctx context.Context, userName string) (*user.User, error) {
	for _, u := range f.users {
		if u.UserName == userName {
			return &u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *userStore) CreateProfile(ctx context.Context, p user.Profile) error {
	if _, ok := f.profiles[p.UserID]; ok {
		return db.ErrDuplicate
	}
	f.profiles[p.UserID] = p
	return nil
}

func (f *userStore) FindProfileByUser(ctx context.Context, userID string) (*user.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &p, nil
}

func (f *userStore) SaveProfile(ctx context.Context, p user.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

// stubStorage hands out deterministic URLs instead of talking to S3 and
// records deleted keys.
type stubStorage struct {
	deleted []string
}

func (s *stubStorage) PresignUpload(ctx context.Context, key string, mimeType string, fileSize int64, duration time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s?signed", key), nil
}

func (s *stubStorage) PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s?signed", key), nil
}

func (s *stubStorage) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

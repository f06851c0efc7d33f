package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"youapp/internal/app/user"
)

func newUserRouter(t *testing.T) (http.Handler, *stubStorage) {
	t.Helper()

	storage := &stubStorage{}
	router := UserRouter(&UserDeps{
		Config:  testConfig(),
		Service: user.NewService(newUserStore(), testSecret),
		Storage: storage,
	})
	return router, storage
}

func TestUserHealth(t *testing.T) {
	req := require.New(t)
	router, _ := newUserRouter(t)

	w := doRequest(t, router, http.MethodGet, "/health", "", nil)
	req.Equal(http.StatusOK, w.Code)
	req.JSONEq(`{"message": "Hello You App"}`, w.Body.String())
}

func TestRegisterLoginFlow(t *testing.T) {
	req := require.New(t)
	router, _ := newUserRouter(t)

	w := doRequest(t, router, http.MethodPost, "/register", "", RegisterInput{
		Email:    "alice@example.com",
		UserName: "alice",
		Password: "secret123",
	})
	req.Equal(http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	req.True(env.Success)

	data, ok := env.Data.(map[string]any)
	req.True(ok)
	req.NotEmpty(data["token"])

	// Registering the same email again is rejected.
	w = doRequest(t, router, http.MethodPost, "/register", "", RegisterInput{
		Email:    "alice@example.com",
		UserName: "alice2",
		Password: "secret123",
	})
	req.Equal(http.StatusForbidden, w.Code)
	req.False(decodeEnvelope(t, w).Success)

	// Login by user name.
	w = doRequest(t, router, http.MethodPost, "/login", "", LoginInput{
		UserName: "alice",
		Password: "secret123",
	})
	req.Equal(http.StatusOK, w.Code)
	req.True(decodeEnvelope(t, w).Success)

	// Wrong password.
	w = doRequest(t, router, http.MethodPost, "/login", "", LoginInput{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	req.Equal(http.StatusForbidden, w.Code)
}

func TestRegister_MalformedBody(t *testing.T) {
	req := require.New(t)
	router, _ := newUserRouter(t)

	bodies := []string{
		`{"email": "alice@example.com",`,
		`{"email": "a@b.co", "userName": "a", "password": "secret123", "extra": true}`,
	}

	for _, body := range bodies {
		r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		req.Equal(http.StatusBadRequest, w.Code, body)
	}
}

func TestProfileLifecycle(t *testing.T) {
	req := require.New(t)
	router, _ := newUserRouter(t)
	auth := bearerFor(t, "u1", "alice")

	// No profile yet.
	w := doRequest(t, router, http.MethodGet, "/getProfile", auth, nil)
	req.Equal(http.StatusNotFound, w.Code)

	name := "Alice"
	gender := user.GenderFemale
	birthday := "1995-08-01"
	w = doRequest(t, router, http.MethodPost, "/createProfile", auth, ProfileInput{
		DisplayName: &name,
		Gender:      &gender,
		Birthday:    &birthday,
		Interests:   []string{"music", "hiking"},
	})
	req.Equal(http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	req.True(env.Success)

	data, ok := env.Data.(map[string]any)
	req.True(ok)
	req.Equal("Leo", data["zodiac"])
	req.Equal("Lion", data["horoscope"])

	// A second create conflicts.
	w = doRequest(t, router, http.MethodPost, "/createProfile", auth, ProfileInput{DisplayName: &name})
	req.Equal(http.StatusForbidden, w.Code)

	// Partial update keeps untouched fields.
	height := 170.0
	w = doRequest(t, router, http.MethodPut, "/updateProfile", auth, ProfileInput{Height: &height})
	req.Equal(http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/getProfile", auth, nil)
	req.Equal(http.StatusOK, w.Code)

	data, ok = decodeEnvelope(t, w).Data.(map[string]any)
	req.True(ok)
	req.Equal("Alice", data["displayName"])
	req.Equal(170.0, data["height"])
	req.Equal("Leo", data["zodiac"])
}

func TestProfileValidation(t *testing.T) {
	req := require.New(t)
	router, _ := newUserRouter(t)
	auth := bearerFor(t, "u1", "alice")

	bad := "UNKNOWN"
	w := doRequest(t, router, http.MethodPost, "/createProfile", auth, ProfileInput{Gender: &bad})
	req.Equal(http.StatusBadRequest, w.Code)

	badDay := "01-08-1995"
	w = doRequest(t, router, http.MethodPost, "/createProfile", auth, ProfileInput{Birthday: &badDay})
	req.Equal(http.StatusBadRequest, w.Code)
}

func TestProfileRoutes_RequireAuth(t *testing.T) {
	router, _ := newUserRouter(t)

	w := doRequest(t, router, http.MethodGet, "/getProfile", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPresignAvatarURL(t *testing.T) {
	req := require.New(t)
	router, _ := newUserRouter(t)
	auth := bearerFor(t, "u1", "alice")

	w := doRequest(t, router, http.MethodPost, "/avatar/presign", auth, PresignAvatarInput{
		FileName: "me.png",
		MimeType: "image/png",
		FileSize: 1024,
	})
	req.Equal(http.StatusOK, w.Code)

	data, ok := decodeEnvelope(t, w).Data.(map[string]any)
	req.True(ok)

	url, _ := data["presignedUrl"].(string)
	req.True(strings.HasPrefix(url, "https://storage.test/avatars/u1/"))

	fileKey, _ := data["fileKey"].(string)
	req.True(strings.HasPrefix(fileKey, "avatars/u1/"))
	req.True(strings.HasSuffix(fileKey, ".png"))
	req.Equal("me.png", data["fileName"])
}

func TestAvatarDownloadAndReplace(t *testing.T) {
	req := require.New(t)
	router, store := newUserRouter(t)
	auth := bearerFor(t, "u1", "alice")

	oldKey := "avatars/u1/old.png"
	w := doRequest(t, router, http.MethodPost, "/createProfile", auth, ProfileInput{ImageURL: &oldKey})
	req.Equal(http.StatusCreated, w.Code)

	// The download URL is presigned for the stored object key.
	w = doRequest(t, router, http.MethodGet, "/avatar", auth, nil)
	req.Equal(http.StatusOK, w.Code)

	data, ok := decodeEnvelope(t, w).Data.(map[string]any)
	req.True(ok)
	req.Equal("https://storage.test/avatars/u1/old.png?signed", data["presignedUrl"])
	req.Equal(oldKey, data["fileKey"])

	// Replacing the avatar deletes the previous object.
	newKey := "avatars/u1/new.png"
	w = doRequest(t, router, http.MethodPut, "/updateProfile", auth, ProfileInput{ImageURL: &newKey})
	req.Equal(http.StatusOK, w.Code)
	req.Equal([]string{oldKey}, store.deleted)

	w = doRequest(t, router, http.MethodGet, "/avatar", auth, nil)
	req.Equal(http.StatusOK, w.Code)

	data, ok = decodeEnvelope(t, w).Data.(map[string]any)
	req.True(ok)
	req.Equal(newKey, data["fileKey"])

	// Re-sending the same key deletes nothing.
	w = doRequest(t, router, http.MethodPut, "/updateProfile", auth, ProfileInput{ImageURL: &newKey})
	req.Equal(http.StatusOK, w.Code)
	req.Equal([]string{oldKey}, store.deleted)
}

func TestAvatarDownload_NotSet(t *testing.T) {
	req := require.New(t)
	router, _ := newUserRouter(t)
	auth := bearerFor(t, "u1", "alice")

	// No profile at all.
	w := doRequest(t, router, http.MethodGet, "/avatar", auth, nil)
	req.Equal(http.StatusNotFound, w.Code)

	// Profile without an avatar.
	name := "Alice"
	w = doRequest(t, router, http.MethodPost, "/createProfile", auth, ProfileInput{DisplayName: &name})
	req.Equal(http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodGet, "/avatar", auth, nil)
	req.Equal(http.StatusNotFound, w.Code)
}

func TestPresignAvatarURL_Validation(t *testing.T) {
	req := require.New(t)
	router, _ := newUserRouter(t)
	auth := bearerFor(t, "u1", "alice")

	// Non-image mime type.
	w := doRequest(t, router, http.MethodPost, "/avatar/presign", auth, PresignAvatarInput{
		FileName: "doc.pdf",
		MimeType: "application/pdf",
		FileSize: 1024,
	})
	req.Equal(http.StatusBadRequest, w.Code)

	// Oversized declared upload.
	w = doRequest(t, router, http.MethodPost, "/avatar/presign", auth, PresignAvatarInput{
		FileName: "big.png",
		MimeType: "image/png",
		FileSize: maxAvatarBytes + 1,
	})
	req.Equal(http.StatusBadRequest, w.Code)
}

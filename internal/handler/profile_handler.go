/*
Package handler provides HTTP handler functions for profile management:
create, fetch, and update, plus presigned avatar uploads.
*/
package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"youapp/internal/app/storage"
	"youapp/internal/app/user"
	"youapp/internal/pkg/auth/jwt"
	"youapp/internal/pkg/errs"
	"youapp/internal/pkg/logx"
	"youapp/internal/pkg/req"
	"youapp/internal/pkg/resp"
)

// ProfileInput is the JSON body of profile create and update requests.
// Omitted fields are left untouched on update.
type ProfileInput struct {
	DisplayName *string  `json:"displayName,omitempty"`
	Gender      *string  `json:"gender,omitempty"`
	Birthday    *string  `json:"birthday,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Interests   []string `json:"interests,omitempty"`
}

// toPatch validates the input and converts it into a service-level patch.
// Birthdays are accepted in YYYY-MM-DD form.
func (in *ProfileInput) toPatch() (user.ProfilePatch, *errs.CustomError) {
	patch := user.ProfilePatch{
		DisplayName: in.DisplayName,
		Gender:      in.Gender,
		Height:      in.Height,
		Weight:      in.Weight,
		ImageURL:    in.ImageURL,
		Interests:   in.Interests,
	}

	if in.Gender != nil {
		switch *in.Gender {
		case user.GenderMale, user.GenderFemale, user.GenderOther:
		default:
			return user.ProfilePatch{}, errs.NewError(errs.ErrInvalidParams)
		}
	}

	if in.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *in.Birthday)
		if err != nil {
			return user.ProfilePatch{}, errs.NewError(errs.ErrInvalidParams)
		}
		patch.Birthday = &birthday
	}

	return patch, nil
}

// HandleGetProfile returns the caller's profile, enriched with zodiac and
// horoscope data.
func HandleGetProfile(deps *UserDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		profile, err := deps.Service.FindProfile(r.Context(), identity.ID)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, http.StatusOK, profile, "Profile fetched successfully")
	}
}

// HandleCreateProfile creates the caller's profile.
func HandleCreateProfile(deps *UserDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input ProfileInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		patch, customErr := input.toPatch()
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		profile, err := deps.Service.CreateProfile(r.Context(), identity.ID, patch)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, http.StatusCreated, profile, "Profile created successfully")
	}
}

// HandleUpdateProfile applies a partial update to the caller's profile.
// Replacing the avatar deletes the previous object from storage.
func HandleUpdateProfile(deps *UserDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input ProfileInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		patch, customErr := input.toPatch()
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var previousKey string
		if input.ImageURL != nil {
			if current, err := deps.Service.FindProfile(r.Context(), identity.ID); err == nil && current.ImageURL != nil {
				previousKey = *current.ImageURL
			}
		}

		profile, err := deps.Service.UpdateProfile(r.Context(), identity.ID, patch)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		if previousKey != "" && input.ImageURL != nil && *input.ImageURL != previousKey {
			if err := deps.Storage.Delete(r.Context(), previousKey); err != nil {
				logx.Warn("Failed to delete replaced avatar object", "key", previousKey)
			}
		}

		resp.RespondSuccess(w, r, http.StatusOK, profile, "Profile update successfully")
	}
}

// HandleAvatarDownloadURL hands out a time-limited presigned URL for the
// caller's current avatar. The profile's imageUrl field holds the storage
// object key issued at presign time.
func HandleAvatarDownloadURL(deps *UserDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		profile, err := deps.Service.FindProfile(r.Context(), identity.ID)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		if profile.ImageURL == nil || *profile.ImageURL == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrAvatarNotSet))
			return
		}

		url, err := deps.Storage.PresignDownload(r.Context(), *profile.ImageURL, storage.PresignedURLDuration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, http.StatusOK, map[string]any{
			"presignedUrl": url,
			"fileKey":      *profile.ImageURL,
		}, "avatar download url")
	}
}

// PresignAvatarInput is the JSON body for requesting an avatar upload URL.
type PresignAvatarInput struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// maxAvatarBytes bounds the declared size of an avatar upload (5 MB).
const maxAvatarBytes int64 = 5 << 20

// HandlePresignAvatarURL generates a time-limited presigned URL for uploading
// the caller's avatar, with the object key scoped to the user id.
func HandlePresignAvatarURL(deps *UserDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input PresignAvatarInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.FileSize <= 0 || input.FileSize > maxAvatarBytes {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if !strings.HasPrefix(input.MimeType, "image/") {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		fileExt := strings.ToLower(filepath.Ext(input.FileName))
		fileKey := fmt.Sprintf("avatars/%s/%s%s", identity.ID, uuid.NewString(), fileExt)

		url, err := deps.Storage.PresignUpload(
			r.Context(),
			fileKey,
			input.MimeType,
			input.FileSize,
			storage.PresignedURLDuration,
		)

		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, http.StatusOK, map[string]any{
			"presignedUrl": url,
			"fileKey":      fileKey,
			"fileName":     input.FileName,
		}, "avatar upload url")
	}
}

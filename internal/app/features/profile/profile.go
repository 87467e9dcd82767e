// internal/app/features/profile/profile.go
package profile

import (
	"net/http"
	"strings"

	"github.com/dalemusser/huddle/internal/app/system/jsonutil"
	"github.com/dalemusser/huddle/internal/app/system/textsanitize"
	"github.com/dalemusser/huddle/internal/app/system/timeouts"
	"github.com/dalemusser/huddle/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// syncRequest is the body of POST /profiles/{userID}/sync.
// A blank display_name falls back to the email's local part, then "User".
// A null or absent photo_url removes the cached photo.
type syncRequest struct {
	DisplayName string  `json:"display_name"`
	Email       string  `json:"email,omitempty"`
	PhotoURL    *string `json:"photo_url"`
}

// photoRequest is the body of POST /profiles/{userID}/photo.
// Absent fields leave the cached values alone.
type photoRequest struct {
	PhotoURL    *string `json:"photo_url"`
	DisplayName string  `json:"display_name,omitempty"`
}

// creatorRequest is the body of POST /profiles/{userID}/ensure-creator.
type creatorRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid := strings.TrimSpace(chi.URLParam(r, "userID"))
	if uid == "" {
		jsonutil.Error(w, http.StatusBadRequest, "user id is required")
		return "", false
	}
	return uid, true
}

// HandleSync pushes a new name/photo into every active group the user belongs to.
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req syncRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	name := models.Profile{
		DisplayName: textsanitize.Text(req.DisplayName),
		Email:       strings.TrimSpace(req.Email),
	}.MemberName()
	photo := req.PhotoURL
	if photo != nil && strings.TrimSpace(*photo) == "" {
		photo = nil
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "sync profile")
	defer cancel()

	if err := h.Sync.SyncProfile(ctx, uid, name, photo); err != nil {
		jsonutil.Error(w, http.StatusInternalServerError, "profile sync failed")
		return
	}
	h.Log.Info("profile synced to groups", zap.String("user_id", uid))
	w.WriteHeader(http.StatusNoContent)
}

// HandlePhoto updates only the fields supplied, after a photo upload.
func (h *Handler) HandlePhoto(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req photoRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "update member photo")
	defer cancel()

	if err := h.Sync.UpdateMemberPhoto(ctx, uid, req.PhotoURL, textsanitize.Text(req.DisplayName)); err != nil {
		jsonutil.Error(w, http.StatusInternalServerError, "photo update failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleEnsureCreator repairs every active group the user created so that it
// lists the user as a member with their current name and photo.
func (h *Handler) HandleEnsureCreator(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req creatorRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	creator := models.Profile{
		UserID:      uid,
		DisplayName: textsanitize.Text(req.DisplayName),
		Email:       strings.TrimSpace(req.Email),
		PhotoURL:    strings.TrimSpace(req.PhotoURL),
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "ensure creator in groups")
	defer cancel()

	groups, err := h.Groups.ListByCreator(ctx, uid)
	if err != nil {
		h.Log.Error("list groups by creator failed", zap.String("user_id", uid), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}
	if err := h.Sync.EnsureCreatorInAllGroups(ctx, groups, creator); err != nil {
		jsonutil.Error(w, http.StatusInternalServerError, "ensure creator failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

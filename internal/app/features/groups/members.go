// internal/app/features/groups/members.go
package groups

import (
	"errors"
	"net/http"
	"strings"

	groupstore "github.com/dalemusser/huddle/internal/app/store/groups"
	"github.com/dalemusser/huddle/internal/app/system/jsonutil"
	"github.com/dalemusser/huddle/internal/app/system/textsanitize"
	"github.com/dalemusser/huddle/internal/app/system/timeouts"
	"github.com/dalemusser/huddle/internal/domain/models"
	"go.uber.org/zap"
)

// HandleAddMember handles POST /groups/{id}/members.
//
// 204 on success, 404 when the group does not exist, 409 when the user is
// already a member. An id that cannot name a group is reported as not found.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	oid, ok := parseGroupID(r)
	if !ok {
		jsonutil.Error(w, http.StatusNotFound, groupstore.ErrGroupNotFound.Error())
		return
	}

	var m models.Member
	if err := jsonutil.Decode(r, &m); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	m = cleanMember(m)
	if m.UserID == "" {
		jsonutil.Error(w, http.StatusBadRequest, "user_id is required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add member")
	defer cancel()

	err := h.Store.AddMember(ctx, oid, m)
	switch {
	case errors.Is(err, groupstore.ErrGroupNotFound):
		jsonutil.Error(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, groupstore.ErrDuplicateMember):
		jsonutil.Error(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.Log.Error("add member failed",
			zap.String("group_id", oid.Hex()),
			zap.String("user_id", m.UserID),
			zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "add member failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleEnsureCreator handles POST /groups/{id}/creator with a profile body.
// The creator record is added or refreshed; a missing group, including an id
// that cannot name one, is a silent 204.
func (h *Handler) HandleEnsureCreator(w http.ResponseWriter, r *http.Request) {
	oid, known := parseGroupID(r)

	var p models.Profile
	if err := jsonutil.Decode(r, &p); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	p.UserID = strings.TrimSpace(p.UserID)
	if p.UserID == "" {
		jsonutil.Error(w, http.StatusBadRequest, "user_id is required")
		return
	}
	p.DisplayName = textsanitize.Text(p.DisplayName)

	if !known {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "ensure creator")
	defer cancel()

	if err := h.Sync.EnsureCreatorInGroup(ctx, oid, p); err != nil {
		jsonutil.Error(w, http.StatusInternalServerError, "ensure creator failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

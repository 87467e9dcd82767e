// internal/app/features/groups/view.go
package groups

import (
	"net/http"

	"github.com/dalemusser/huddle/internal/app/system/jsonutil"
	"github.com/dalemusser/huddle/internal/app/system/textsanitize"
	"github.com/dalemusser/huddle/internal/app/system/timeouts"
	"github.com/dalemusser/huddle/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// parseGroupID parses the {id} URL parameter.
func parseGroupID(r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return oid, err == nil
}

// groupID parses the {id} URL parameter, writing a 400 when it is malformed.
func groupID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, ok := parseGroupID(r)
	if !ok {
		jsonutil.Error(w, http.StatusBadRequest, "bad group id")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// ServeGroup handles GET /groups/{id}. Soft-deleted groups are still returned.
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	oid, ok := groupID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get group")
	defer cancel()

	g, err := h.Store.GetByID(ctx, oid)
	if err != nil {
		h.Log.Error("get group failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}
	if g == nil {
		jsonutil.Error(w, http.StatusNotFound, "group not found")
		return
	}
	jsonutil.Write(w, http.StatusOK, g)
}

// HandleUpdate handles PATCH /groups/{id}. Only the fields present in the body
// change. A missing group is not reported; the store does not upsert.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	oid, ok := groupID(w, r)
	if !ok {
		return
	}

	var upd models.GroupUpdate
	if err := jsonutil.Decode(r, &upd); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if upd.IsEmpty() {
		jsonutil.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}
	upd.Name = textsanitize.TextPtr(upd.Name)
	upd.Description = textsanitize.TextPtr(upd.Description)
	upd.Category = textsanitize.TextPtr(upd.Category)
	upd.Location = textsanitize.TextPtr(upd.Location)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update group")
	defer cancel()

	if err := h.Store.Update(ctx, oid, upd); err != nil {
		h.Log.Error("update group failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "update failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeactivate handles DELETE /groups/{id} as a soft delete.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	oid, ok := groupID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "deactivate group")
	defer cancel()

	if err := h.Store.Deactivate(ctx, oid); err != nil {
		h.Log.Error("deactivate group failed", zap.String("group_id", oid.Hex()), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "deactivate failed")
		return
	}
	h.Log.Info("group deactivated", zap.String("group_id", oid.Hex()))
	w.WriteHeader(http.StatusNoContent)
}

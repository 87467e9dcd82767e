// internal/app/features/groups/create.go
package groups

import (
	"net/http"
	"strings"

	"github.com/dalemusser/huddle/internal/app/system/jsonutil"
	"github.com/dalemusser/huddle/internal/app/system/textsanitize"
	"github.com/dalemusser/huddle/internal/app/system/timeouts"
	"github.com/dalemusser/huddle/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /groups.
//
// Response: 201 {"id": "<hex>"}
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	creator := strings.TrimSpace(req.CreatedBy)
	if creator == "" {
		jsonutil.Error(w, http.StatusBadRequest, "created_by is required")
		return
	}

	in := req.GroupInput
	in.Name = textsanitize.Text(in.Name)
	in.Description = textsanitize.Text(in.Description)
	in.Category = textsanitize.Text(in.Category)
	in.Location = textsanitize.Text(in.Location)
	for i := range in.Members {
		in.Members[i] = cleanMember(in.Members[i])
		if in.Members[i].UserID == "" {
			jsonutil.Error(w, http.StatusBadRequest, "every member needs a user_id")
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create group")
	defer cancel()

	g, err := h.Store.Create(ctx, creator, in)
	if err != nil {
		h.Log.Error("create group failed", zap.String("created_by", creator), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "create failed")
		return
	}

	h.Log.Info("group created", zap.String("group_id", g.ID.Hex()), zap.String("created_by", creator))
	jsonutil.Write(w, http.StatusCreated, createResponse{ID: g.ID.Hex()})
}

func cleanMember(m models.Member) models.Member {
	return models.Member{
		UserID:   strings.TrimSpace(m.UserID),
		Name:     textsanitize.Text(m.Name),
		PhotoURL: strings.TrimSpace(m.PhotoURL),
		Bio:      textsanitize.Text(m.Bio),
	}
}

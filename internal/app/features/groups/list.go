// internal/app/features/groups/list.go
package groups

import (
	"net/http"
	"strings"

	"github.com/dalemusser/huddle/internal/app/system/jsonutil"
	"github.com/dalemusser/huddle/internal/app/system/timeouts"
	"github.com/dalemusser/huddle/internal/domain/models"
	"go.uber.org/zap"
)

// ServeList handles GET /groups.
//
//   - no query: every active group
//   - ?creator=<uid>: active groups created by uid
//   - ?member=<uid>: active groups that list uid as a member
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	creator := strings.TrimSpace(r.URL.Query().Get("creator"))
	member := strings.TrimSpace(r.URL.Query().Get("member"))
	if creator != "" && member != "" {
		jsonutil.Error(w, http.StatusBadRequest, "use either creator or member, not both")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list groups")
	defer cancel()

	var (
		groups []models.Group
		err    error
	)
	switch {
	case creator != "":
		groups, err = h.Store.ListByCreator(ctx, creator)
	case member != "":
		groups, err = h.Store.ListByMember(ctx, member)
	default:
		groups, err = h.Store.ListActive(ctx)
	}
	if err != nil {
		h.Log.Error("list groups failed",
			zap.String("creator", creator),
			zap.String("member", member),
			zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "list failed")
		return
	}

	jsonutil.Write(w, http.StatusOK, listResponse{Groups: groups})
}

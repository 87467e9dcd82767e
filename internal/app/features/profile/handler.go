// internal/app/features/profile/handler.go
package profile

import (
	groupstore "github.com/dalemusser/huddle/internal/app/store/groups"
	"github.com/dalemusser/huddle/internal/app/system/membersync"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the profile-change endpoints. The profile itself lives in
// another system; these endpoints are called after it changes so the cached
// member records in groups follow.
type Handler struct {
	Groups *groupstore.Store
	Sync   *membersync.Synchronizer
	Log    *zap.Logger
}

// NewHandler constructs a Handler bound to the given Mongo database,
// synchronizer, and logger.
func NewHandler(db *mongo.Database, sync *membersync.Synchronizer, logger *zap.Logger) *Handler {
	return &Handler{
		Groups: groupstore.New(db),
		Sync:   sync,
		Log:    logger,
	}
}

// internal/app/features/groups/handler.go
package groups

import (
	groupstore "github.com/dalemusser/huddle/internal/app/store/groups"
	"github.com/dalemusser/huddle/internal/app/system/membersync"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature.
type Handler struct {
	Store *groupstore.Store
	Sync  *membersync.Synchronizer
	Log   *zap.Logger
}

// NewHandler constructs a groups Handler. It is called from the bootstrap
// BuildHandler function, where the database, synchronizer, and logger are
// already initialized.
func NewHandler(db *mongo.Database, sync *membersync.Synchronizer, logger *zap.Logger) *Handler {
	return &Handler{
		Store: groupstore.New(db),
		Sync:  sync,
		Log:   logger,
	}
}

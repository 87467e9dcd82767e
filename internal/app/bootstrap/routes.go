// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	groupsfeature "github.com/dalemusser/huddle/internal/app/features/groups"
	healthfeature "github.com/dalemusser/huddle/internal/app/features/health"
	profilefeature "github.com/dalemusser/huddle/internal/app/features/profile"
	groupstore "github.com/dalemusser/huddle/internal/app/store/groups"
	"github.com/dalemusser/huddle/internal/app/system/membersync"
	"github.com/dalemusser/huddle/internal/app/system/syncmetrics"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connection, index setup, and
// Startup have completed. The synchronizer is built here once and shared by
// the groups and profile features.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.HuddleMongoDatabase

	var rec syncmetrics.Recorder = syncmetrics.Nop{}
	reg := prometheus.NewRegistry()
	if appCfg.MetricsEnabled {
		rec = syncmetrics.NewCollector(reg)
	}
	sync := membersync.New(groupstore.New(db), rec, logger.Named("membersync"))

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(db, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	if appCfg.MetricsEnabled {
		r.Handle("/metrics", syncmetrics.Handler(reg))
	}

	groupsHandler := groupsfeature.NewHandler(db, sync, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	profileHandler := profilefeature.NewHandler(db, sync, logger)
	r.Mount("/profiles", profilefeature.Routes(profileHandler))

	return r, nil
}

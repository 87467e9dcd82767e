// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig carries the
// framework-level settings (ports, TLS, logging level, CORS); AppConfig is
// everything specific to Huddle.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI            string        // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase       string        // Database name within MongoDB
	MongoMaxPoolSize    uint64        // Max connections in the driver pool
	MongoMinPoolSize    uint64        // Min idle connections kept open
	MongoConnectTimeout time.Duration // Bound on the initial connect + ping

	// Handler timeouts (zero keeps the timeouts package defaults)
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	// MetricsEnabled mounts GET /metrics with the membersync counters.
	MetricsEnabled bool
}

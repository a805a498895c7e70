// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers ports, TLS, log level and CORS. Everything
// below is ChapterHub's own and is loaded in LoadConfig from config files,
// CHAPTERHUB_* environment variables or flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // e.g. mongodb://localhost:27017
	MongoDatabase    string // database holding members, chapters and activity records
	MongoMaxPoolSize uint64

	// Session cookie issued by the identity provider
	SessionKey    string // shared signing key
	SessionName   string // cookie name (default: chapterhub-session)
	SessionDomain string // cookie domain (blank means current host)
	SessionMaxAge time.Duration

	// Statistics
	StatsTimeZone          string // IANA zone for calendar bucketing and date windows
	LeaderboardConcurrency int    // per-member fan-out limit

	// Observability
	MetricsEnabled bool // expose /metrics

	// Handler timeouts (zero keeps the default)
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}

// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/chapterhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/chapterhub/internal/app/features/health"
	logoutfeature "github.com/dalemusser/chapterhub/internal/app/features/logout"
	statsfeature "github.com/dalemusser/chapterhub/internal/app/features/stats"
	"github.com/dalemusser/chapterhub/internal/app/stats"
	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/metrics"
	"github.com/dalemusser/chapterhub/internal/app/system/requestlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup and
// Startup have completed. ChapterHub builds the statistics service here,
// applies request logging, metrics and session middleware, and mounts the
// health, metrics, logout and /api/stats routes.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fresh member data on every request, so role changes and removals apply immediately.
	sessionMgr.SetUserFetcher(memberstore.NewFetcher(deps.ChapterHubMongoDatabase))

	loc, err := resolveLocation(appCfg.StatsTimeZone)
	if err != nil {
		return nil, err
	}

	var m *metrics.Metrics
	if appCfg.MetricsEnabled {
		m = metrics.New()
	}

	svc := stats.NewFromDB(deps.ChapterHubMongoDatabase, stats.Config{
		Location:    loc,
		Concurrency: appCfg.LeaderboardConcurrency,
		Metrics:     m,
	})
	logger.Info("stats service ready",
		zap.String("time_zone", loc.String()),
		zap.Int("leaderboard_concurrency", appCfg.LeaderboardConcurrency),
		zap.Bool("metrics", m != nil))

	errLog := errorsfeature.NewErrorLogger(logger)

	return newRouter(routerDeps{
		sessionMgr: sessionMgr,
		health:     healthfeature.NewHandler(deps.ChapterHubMongoClient, logger),
		stats:      statsfeature.NewHandler(svc, errLog, logger),
		metrics:    m,
		logger:     logger,
	}), nil
}

type routerDeps struct {
	sessionMgr *auth.SessionManager
	health     *healthfeature.Handler
	stats      *statsfeature.Handler
	metrics    *metrics.Metrics // nil disables /metrics
	logger     *zap.Logger
}

func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(requestlog.Middleware(d.logger))
	if d.metrics != nil {
		r.Use(d.metrics.Middleware)
	}

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(d.sessionMgr.LoadSessionUser)

	r.Mount("/health", healthfeature.Routes(d.health))
	if d.metrics != nil {
		r.Handle("/metrics", d.metrics.Handler())
	}

	logoutHandler := logoutfeature.NewHandler(d.sessionMgr, d.logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, d.sessionMgr))

	r.Mount("/api/stats", statsfeature.Routes(d.stats, d.sessionMgr))

	return r
}

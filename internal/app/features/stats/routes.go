// internal/app/features/stats/routes.go
package stats

import (
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /api/stats. Every route needs a signed-in member;
// cross-chapter and organization-wide views are limited by role.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/me", h.Me)
	r.Get("/me/weekly", h.MeWeekly)
	r.Get("/me/details", h.MeDetails)
	r.Get("/chapter/leaderboard", h.OwnLeaderboard)
	r.Get("/chapter/overview", h.OwnOverview)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireRole(models.RoleAdmin, models.RoleCoordinator))
		r.Get("/chapters/{chapterID}/leaderboard", h.ChapterLeaderboard)
		r.Get("/chapters/{chapterID}/overview", h.ChapterOverview)
		r.Get("/trends/monthly", h.MonthlyTrend)
	})

	r.With(sm.RequireRole(models.RoleAdmin, models.RoleCoordinator, models.RolePresident)).
		Get("/members/{memberID}", h.Member)

	return r
}

// internal/app/features/stats/chapter.go
package stats

import (
	"context"
	"net/http"

	statssvc "github.com/dalemusser/chapterhub/internal/app/stats"
	"github.com/dalemusser/chapterhub/internal/app/system/respond"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
)

// ownChapter resolves the signed-in member's chapter. It writes the error
// response itself and reports false on failure.
func (h *Handler) ownChapter(w http.ResponseWriter, r *http.Request) (statssvc.ChapterContext, bool) {
	self, ok := selfID(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return statssvc.ChapterContext{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cc, err := h.Stats.ResolveChapter(ctx, self)
	if err != nil {
		h.ErrLog.Write(w, r, "resolve chapter failed", err)
		return statssvc.ChapterContext{}, false
	}
	return cc, true
}

// namedChapter builds the context for /chapters/{chapterID} routes.
func (h *Handler) namedChapter(w http.ResponseWriter, r *http.Request) (statssvc.ChapterContext, bool) {
	chapterID, err := idParam(r, "chapterID")
	if err != nil {
		h.ErrLog.Write(w, r, "parse chapter id", err)
		return statssvc.ChapterContext{}, false
	}
	self, _ := selfID(r)
	return statssvc.ChapterContext{ChapterID: chapterID, MemberID: self}, true
}

// OwnLeaderboard handles GET /api/stats/chapter/leaderboard.
func (h *Handler) OwnLeaderboard(w http.ResponseWriter, r *http.Request) {
	if cc, ok := h.ownChapter(w, r); ok {
		h.serveLeaderboard(w, r, cc)
	}
}

// ChapterLeaderboard handles GET /api/stats/chapters/{chapterID}/leaderboard.
func (h *Handler) ChapterLeaderboard(w http.ResponseWriter, r *http.Request) {
	if cc, ok := h.namedChapter(w, r); ok {
		h.serveLeaderboard(w, r, cc)
	}
}

func (h *Handler) serveLeaderboard(w http.ResponseWriter, r *http.Request, cc statssvc.ChapterContext) {
	win, err := h.windowParam(r)
	if err != nil {
		h.ErrLog.Write(w, r, "parse window", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "leaderboard")
	defer cancel()

	entries, err := h.Stats.Leaderboard(ctx, cc, win)
	if err != nil {
		h.ErrLog.Write(w, r, "leaderboard failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, entries)
}

// OwnOverview handles GET /api/stats/chapter/overview.
func (h *Handler) OwnOverview(w http.ResponseWriter, r *http.Request) {
	if cc, ok := h.ownChapter(w, r); ok {
		h.serveOverview(w, r, cc)
	}
}

// ChapterOverview handles GET /api/stats/chapters/{chapterID}/overview.
func (h *Handler) ChapterOverview(w http.ResponseWriter, r *http.Request) {
	if cc, ok := h.namedChapter(w, r); ok {
		h.serveOverview(w, r, cc)
	}
}

func (h *Handler) serveOverview(w http.ResponseWriter, r *http.Request, cc statssvc.ChapterContext) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ov, err := h.Stats.ChapterOverview(ctx, cc)
	if err != nil {
		h.ErrLog.Write(w, r, "chapter overview failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, ov)
}

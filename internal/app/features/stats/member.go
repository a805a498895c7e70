// internal/app/features/stats/member.go
package stats

import (
	"context"
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/respond"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Me handles GET /api/stats/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	self, ok := selfID(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.serveActivity(w, r, self)
}

// Member handles GET /api/stats/members/{memberID}.
func (h *Handler) Member(w http.ResponseWriter, r *http.Request) {
	memberID, err := idParam(r, "memberID")
	if err != nil {
		h.ErrLog.Write(w, r, "parse member id", err)
		return
	}
	if !authz.CanViewMember(r, memberID) {
		respond.Error(w, http.StatusForbidden, "forbidden")
		return
	}
	h.serveActivity(w, r, memberID)
}

func (h *Handler) serveActivity(w http.ResponseWriter, r *http.Request, memberID primitive.ObjectID) {
	win, err := h.windowParam(r)
	if err != nil {
		h.ErrLog.Write(w, r, "parse window", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	counts, err := h.Stats.ActivityFor(ctx, memberID, win)
	if err != nil {
		h.ErrLog.Write(w, r, "activity counts failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, counts)
}

// MeWeekly handles GET /api/stats/me/weekly?kind=.
func (h *Handler) MeWeekly(w http.ResponseWriter, r *http.Request) {
	self, ok := selfID(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	kind, err := kindParam(r)
	if err != nil {
		h.ErrLog.Write(w, r, "parse kind", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	buckets, err := h.Stats.WeeklyTrend(ctx, self, kind)
	if err != nil {
		h.ErrLog.Write(w, r, "weekly trend failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, buckets)
}

// MeDetails handles GET /api/stats/me/details.
func (h *Handler) MeDetails(w http.ResponseWriter, r *http.Request) {
	self, ok := selfID(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	q, err := detailQuery(h, r)
	if err != nil {
		h.ErrLog.Write(w, r, "parse detail query", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Stats.Details(ctx, self, q)
	if err != nil {
		h.ErrLog.Write(w, r, "activity details failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// internal/app/features/stats/trends.go
package stats

import (
	"context"
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/respond"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
)

// MonthlyTrend handles GET /api/stats/trends/monthly?kind=.
func (h *Handler) MonthlyTrend(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		h.ErrLog.Write(w, r, "parse kind", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	buckets, err := h.Stats.MonthlyTrend(ctx, kind)
	if err != nil {
		h.ErrLog.Write(w, r, "monthly trend failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, buckets)
}

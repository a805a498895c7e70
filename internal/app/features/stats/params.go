// internal/app/features/stats/params.go
package stats

import (
	"fmt"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	statssvc "github.com/dalemusser/chapterhub/internal/app/stats"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/window"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// windowParam reads timeline, time, startDate and endDate.
func (h *Handler) windowParam(r *http.Request) (window.Window, error) {
	return window.FromParams(window.Params{
		Timeline:  query.Get(r, "timeline"),
		Period:    query.Get(r, "time"),
		StartDate: query.Get(r, "startDate"),
		EndDate:   query.Get(r, "endDate"),
	}, h.Stats.Now(), h.Stats.Location())
}

func kindParam(r *http.Request) (models.RecordKind, error) {
	raw := query.Get(r, "kind")
	k, ok := models.ParseRecordKind(raw)
	if !ok {
		return "", fmt.Errorf("%w: kind %q", statssvc.ErrInvalidKind, raw)
	}
	return k, nil
}

func directionParam(r *http.Request) (models.Direction, error) {
	raw := query.Get(r, "direction")
	d, ok := models.ParseDirection(raw)
	if !ok {
		return "", fmt.Errorf("%w: direction %q", uierrors.ErrBadParam, raw)
	}
	return d, nil
}

func detailQuery(h *Handler, r *http.Request) (statssvc.DetailQuery, error) {
	t, err := statssvc.ParseDetailType(query.Get(r, "type"))
	if err != nil {
		return statssvc.DetailQuery{}, err
	}
	dir, err := directionParam(r)
	if err != nil {
		return statssvc.DetailQuery{}, err
	}
	w, err := h.windowParam(r)
	if err != nil {
		return statssvc.DetailQuery{}, err
	}
	return statssvc.DetailQuery{Type: t, Direction: dir, Window: w}, nil
}

func idParam(r *http.Request, name string) (primitive.ObjectID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s %q", uierrors.ErrBadID, name, raw)
	}
	return id, nil
}

// selfID is the signed-in member's id. RequireSignedIn runs first, so a
// miss here means the session carried a malformed id.
func selfID(r *http.Request) (primitive.ObjectID, bool) {
	_, _, id, ok := authz.UserCtx(r)
	return id, ok
}

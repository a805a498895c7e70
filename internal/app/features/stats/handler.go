// internal/app/features/stats/handler.go
package stats

import (
	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	statssvc "github.com/dalemusser/chapterhub/internal/app/stats"
	"go.uber.org/zap"
)

// Handler serves the /api/stats JSON endpoints.
type Handler struct {
	Stats  *statssvc.Service
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler creates a stats Handler.
func NewHandler(svc *statssvc.Service, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Stats:  svc,
		Log:    logger,
		ErrLog: errLog,
	}
}

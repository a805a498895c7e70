// internal/app/features/errors/errors.go
package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/stats"
	"github.com/dalemusser/chapterhub/internal/app/system/respond"
	"github.com/dalemusser/chapterhub/internal/app/system/window"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	// ErrBadID is returned by handlers when a path id is not an ObjectID.
	ErrBadID = stderrors.New("invalid id")
	// ErrBadParam wraps any other unparseable query parameter.
	ErrBadParam = stderrors.New("invalid parameter")
)

// ErrorLogger writes JSON error responses and logs server-side failures.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// Status maps a builder or parse error to an HTTP status code.
func Status(err error) int {
	switch {
	case stderrors.Is(err, window.ErrInvalidParam),
		stderrors.Is(err, stats.ErrInvalidKind),
		stderrors.Is(err, ErrBadID),
		stderrors.Is(err, ErrBadParam),
		stderrors.Is(err, primitive.ErrInvalidHex):
		return http.StatusBadRequest
	case stderrors.Is(err, stats.ErrMemberNotFound),
		stderrors.Is(err, stats.ErrChapterNotFound),
		stderrors.Is(err, stats.ErrNoActiveMembership):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Write responds with {"error": ...} for err. Client errors echo the error
// text; anything else is logged and reported as a generic failure.
func (l *ErrorLogger) Write(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := Status(err)
	if status < http.StatusInternalServerError {
		respond.Error(w, status, err.Error())
		return
	}
	l.LogServerError(w, r, op, err, "An internal error occurred.")
}

// LogServerError logs err with request context and writes a 500 with
// userMsg as the body.
func (l *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	if l != nil && l.Log != nil {
		l.Log.Error(msg,
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
	}
	respond.Error(w, http.StatusInternalServerError, userMsg)
}

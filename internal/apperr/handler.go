package apperr

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/fundbridge/fundbridge/internal/metrics"
	"github.com/fundbridge/fundbridge/internal/middleware"
	"github.com/fundbridge/fundbridge/internal/response"
)

// HandlerFunc is an HTTP handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Reporter forwards server errors to an external error tracker.
type Reporter interface {
	Report(ctx context.Context, err error)
}

// Handler is the global error handler.
type Handler struct {
	logger      *slog.Logger
	development bool
	reporter    Reporter
	metrics     metrics.Recorder
}

// NewHandler creates a Handler. When development is true, responses include
// the error's stack trace. reporter and recorder may be nil.
func NewHandler(logger *slog.Logger, development bool, reporter Reporter, recorder metrics.Recorder) *Handler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Handler{
		logger:      logger,
		development: development,
		reporter:    reporter,
		metrics:     recorder,
	}
}

// Wrap adapts fn to http.HandlerFunc, sending returned errors to Handle.
func (h *Handler) Wrap(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.Handle(w, r, err)
		}
	}
}

// Handle writes the failure envelope for err.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	body := response.Fail(MessageOf(err))
	if h.development {
		body.Stack = Stack(err)
	}

	attrs := []slog.Attr{
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status_code", status),
		slog.String("error", MessageOf(err)),
	}

	h.metrics.IncHandlerError(status)

	if status >= http.StatusInternalServerError {
		h.logger.LogAttrs(r.Context(), slog.LevelError, "request failed", attrs...)
		if h.reporter != nil {
			h.reporter.Report(r.Context(), err)
		}
	} else {
		h.logger.LogAttrs(r.Context(), slog.LevelWarn, "request rejected", attrs...)
	}

	response.JSON(w, status, body)
}

// Stack renders err with its stack trace. Errors without a recorded
// stack get the stack of the caller.
func Stack(err error) string {
	var st stackTracer
	if stderrors.As(err, &st) && len(st.StackTrace()) > 0 {
		return fmt.Sprintf("%s%+v", MessageOf(err), st.StackTrace())
	}
	return fmt.Sprintf("%s\n%s", MessageOf(err), debug.Stack())
}

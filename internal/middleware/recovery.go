package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// ErrorHandler writes the response for a failed request.
type ErrorHandler interface {
	Handle(w http.ResponseWriter, r *http.Request, err error)
}

// PanicConverter turns a recovered value into an error.
type PanicConverter func(rvr any) error

// Recoverer is a middleware that recovers from panics.
// It logs the panic and hands it to the error handler, so clients receive
// the same envelope as for returned errors and the server keeps running.
func Recoverer(logger *slog.Logger, errs ErrorHandler, convert PanicConverter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				errs.Handle(w, r, convert(rvr))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

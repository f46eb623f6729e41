package http

import (
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/example/workforce-scheduler/internal/application"
)

// Manager identity headers. The scheduler trusts the store gateway to
// authenticate managers; these headers carry the result.
const (
	headerManagerID       = "X-Manager-Id"
	headerManagerSection  = "X-Manager-Section"
	headerManagerInitials = "X-Manager-Initials"
)

// RequireManager extracts the acting manager from the identity headers and
// attaches it to the request context. Requests without a manager id are
// rejected.
func RequireManager(logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			managerID := strings.TrimSpace(r.Header.Get(headerManagerID))
			if managerID == "" {
				responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingManagerID)
				return
			}

			principal := application.Principal{
				ManagerID: managerID,
				Section:   strings.TrimSpace(r.Header.Get(headerManagerSection)),
				Initials:  strings.TrimSpace(r.Header.Get(headerManagerInitials)),
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger attaches a request-scoped logger to the context and records
// request timing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}

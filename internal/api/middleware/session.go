package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/stash-api/internal/api/shared"
	"github.com/phrazzld/stash-api/internal/platform/logger"
	"github.com/phrazzld/stash-api/internal/store"
)

// NewSessionMiddleware returns middleware that leases one session handle per
// request, stores it in the request context and releases it when the
// handler returns or panics. The handler runs under timeout; a handle that
// cannot be acquired in time yields 503.
func NewSessionMiddleware(scope *store.Scope, timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			served := false
			err := scope.Do(ctx, func(ctx context.Context, h *store.Handle) error {
				served = true
				next.ServeHTTP(w, r.WithContext(shared.WithHandle(ctx, h)))
				return nil
			})
			if err == nil {
				return
			}
			if served {
				// The response is already written; only the release failed.
				logger.FromContextOrDefault(ctx, slog.Default()).
					Error("session handle release failed after response", "error", err)
				return
			}

			if errors.Is(err, store.ErrAcquireFailed) {
				w.Header().Set("Retry-After", "1")
				shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
					"Service temporarily unavailable", err)
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"An unexpected error occurred", err)
		})
	}
}

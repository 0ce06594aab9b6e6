package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phrazzld/stash-api/internal/platform/logger"
)

// Connector leases dedicated connections. *sql.DB satisfies it.
type Connector interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

// SessionObserver receives handle lifecycle events. Implementations must be
// safe for concurrent use.
type SessionObserver interface {
	HandleAcquired()
	HandleReleased(held time.Duration)
	AcquireFailed()
}

type noopObserver struct{}

func (noopObserver) HandleAcquired()             {}
func (noopObserver) HandleReleased(time.Duration) {}
func (noopObserver) AcquireFailed()              {}

// Handle is one leased connection owned by a single request. It implements
// DBTX. Once released, further queries fail with sql.ErrConnDone.
type Handle struct {
	conn       *sql.Conn
	acquiredAt time.Time
	observer   SessionObserver

	once       sync.Once
	released   atomic.Bool
	releaseErr error
}

func (h *Handle) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return h.conn.ExecContext(ctx, query, args...)
}

func (h *Handle) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return h.conn.PrepareContext(ctx, query)
}

func (h *Handle) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return h.conn.QueryContext(ctx, query, args...)
}

func (h *Handle) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return h.conn.QueryRowContext(ctx, query, args...)
}

// Release returns the connection to the pool. Only the first call has an
// effect; later calls return the first call's result.
func (h *Handle) Release() error {
	h.once.Do(func() {
		h.releaseErr = h.conn.Close()
		h.released.Store(true)
		h.observer.HandleReleased(time.Since(h.acquiredAt))
	})
	return h.releaseErr
}

// Released reports whether Release has run.
func (h *Handle) Released() bool {
	return h.released.Load()
}

var _ DBTX = (*Handle)(nil)

// Scope hands out session handles and guarantees their release.
type Scope struct {
	connector Connector
	observer  SessionObserver
	logger    *slog.Logger
}

// NewScope creates a Scope over connector. A nil observer disables
// lifecycle reporting; a nil logger falls back to the context logger.
func NewScope(connector Connector, observer SessionObserver, l *slog.Logger) *Scope {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Scope{connector: connector, observer: observer, logger: l}
}

// Acquire leases a handle. The caller owns it and must call Release.
// On failure nothing is held and the error wraps ErrAcquireFailed.
func (s *Scope) Acquire(ctx context.Context) (*Handle, error) {
	conn, err := s.connector.Conn(ctx)
	if err != nil {
		s.observer.AcquireFailed()
		return nil, fmt.Errorf("%w: %w", ErrAcquireFailed, err)
	}

	s.observer.HandleAcquired()
	return &Handle{conn: conn, acquiredAt: time.Now(), observer: s.observer}, nil
}

// Do acquires a handle, runs fn with it and releases it on every exit path.
// An error from fn is returned unchanged (joined with a release error if the
// release also failed). A panic in fn is re-raised after the release.
func (s *Scope) Do(ctx context.Context, fn func(ctx context.Context, h *Handle) error) (err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	h, err := s.Acquire(ctx)
	if err != nil {
		log.Warn("could not acquire session handle", slog.String("error", err.Error()))
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			if relErr := h.Release(); relErr != nil {
				log.Error("failed to release session handle after panic",
					slog.String("error", relErr.Error()),
					slog.Any("panic", p))
			} else {
				log.Error("released session handle after panic", slog.Any("panic", p))
			}
			// ALLOW-PANIC: propagating caught panic after release
			panic(p)
		}

		if relErr := h.Release(); relErr != nil {
			log.Error("failed to release session handle", slog.String("error", relErr.Error()))
			err = errors.Join(err, fmt.Errorf("failed to release session handle: %w", relErr))
		}
	}()

	return fn(ctx, h)
}

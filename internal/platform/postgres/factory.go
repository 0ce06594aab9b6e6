package postgres

import (
	"log/slog"

	"github.com/phrazzld/stash-api/internal/store"
)

// Factory vends PostgreSQL stores bound to a caller-supplied handle.
type Factory struct {
	logger *slog.Logger
}

// NewFactory creates a Factory whose stores log through logger.
func NewFactory(logger *slog.Logger) *Factory {
	return &Factory{logger: logger}
}

var _ store.Factory = (*Factory)(nil)

// Users returns a user store bound to db.
func (f *Factory) Users(db store.DBTX) store.UserStore {
	return NewPostgresUserStore(db, f.logger)
}

// Items returns an item store bound to db.
func (f *Factory) Items(db store.DBTX) store.ItemStore {
	return NewPostgresItemStore(db, f.logger)
}

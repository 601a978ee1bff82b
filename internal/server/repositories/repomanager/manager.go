// Package repomanager selects and owns the store backend. The DSN scheme
// decides which implementation backs the credential store adapter.
package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkovalev/accountd/internal/server/config"
	"github.com/dkovalev/accountd/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to one backing store and owns
// the underlying connection.
type RepositoryManager interface {
	Users() users.Repository
	Close(ctx context.Context) error
}

// New picks a backend from the DSN scheme: postgres://, mongodb:// or
// memory:// (tests and local runs).
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch {
	case strings.HasPrefix(cfg.DatabaseDSN, "postgres://"), strings.HasPrefix(cfg.DatabaseDSN, "postgresql://"):
		return NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case strings.HasPrefix(cfg.DatabaseDSN, "mongodb://"), strings.HasPrefix(cfg.DatabaseDSN, "mongodb+srv://"):
		return NewMongoRepositoryManager(ctx, cfg.DatabaseDSN, cfg.DatabaseName, cfg.UserCollection)
	case strings.HasPrefix(cfg.DatabaseDSN, "memory://"):
		return NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported store DSN %q", cfg.DatabaseDSN)
	}
}

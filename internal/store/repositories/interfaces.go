package repositories

import (
	"context"

	"adminconsole/internal/domain/audit"
)

// AuditRepository defines the contract for mutation audit data access
type AuditRepository interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, entry *audit.Entry) error
	FindRecent(ctx context.Context, limit, offset int) ([]*audit.Entry, error)
	FindByScreen(ctx context.Context, screen string, limit, offset int) ([]*audit.Entry, error)
	Count(ctx context.Context) (int, error)
	CountByScreen(ctx context.Context, screen string) (int, error)
}

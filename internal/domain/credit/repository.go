package credit

import (
	"context"

	"creditos-backend/internal/domain/paging"
)

// Repository persists credits. tenantID "" means unscoped.
type Repository interface {
	Create(ctx context.Context, c *Credit) error
	GetByCreditID(ctx context.Context, tenantID, creditID string) (*Credit, error)
	// Same as GetByCreditID but locks the row until the surrounding tx ends.
	GetByCreditIDForUpdate(ctx context.Context, tenantID, creditID string) (*Credit, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Credit, error)
	Save(ctx context.Context, c *Credit) error

	// List returns one page ordered by fecha_solicitud DESC, id DESC, plus the total match count.
	List(ctx context.Context, f ListFilter, p paging.Request) ([]Credit, int64, error)
	CountByStatus(ctx context.Context, tenantID string, s Status) (int64, error)
}

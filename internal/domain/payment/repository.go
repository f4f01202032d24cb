package payment

import (
	"context"
	"time"

	"creditos-backend/internal/domain/paging"
)

// Repository persists installments. tenantID "" means unscoped.
type Repository interface {
	CreateBatch(ctx context.Context, ps []Payment) error
	GetByPaymentID(ctx context.Context, tenantID, paymentID string) (*Payment, error)
	GetByPaymentIDForUpdate(ctx context.Context, tenantID, paymentID string) (*Payment, error)
	Save(ctx context.Context, p *Payment) error

	// List applies f at now, ordered by fecha_vencimiento DESC.
	List(ctx context.Context, f Filter, p paging.Request, now time.Time) ([]Payment, int64, error)
	ListAll(ctx context.Context, tenantID string) ([]Payment, error)
	ListByCredit(ctx context.Context, creditID uint64) ([]Payment, error)

	ListOverduePending(ctx context.Context, now time.Time) ([]Payment, error)
	UpdateMora(ctx context.Context, id uint64, moraDias int) error
}

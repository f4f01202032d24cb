package paymentmock

import (
	"context"
	"time"

	"creditos-backend/internal/domain/paging"
	domain "creditos-backend/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil error; reads default to context.Canceled.
type Repo struct {
	CreateBatchFn             func(ctx context.Context, ps []domain.Payment) error
	GetByPaymentIDFn          func(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error)
	GetByPaymentIDForUpdateFn func(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error)
	SaveFn                    func(ctx context.Context, p *domain.Payment) error
	ListFn                    func(ctx context.Context, f domain.Filter, p paging.Request, now time.Time) ([]domain.Payment, int64, error)
	ListAllFn                 func(ctx context.Context, tenantID string) ([]domain.Payment, error)
	ListByCreditFn            func(ctx context.Context, creditID uint64) ([]domain.Payment, error)
	ListOverduePendingFn      func(ctx context.Context, now time.Time) ([]domain.Payment, error)
	UpdateMoraFn              func(ctx context.Context, id uint64, moraDias int) error
}

func (m *Repo) CreateBatch(ctx context.Context, ps []domain.Payment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, ps)
	}
	return nil
}

func (m *Repo) GetByPaymentID(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, tenantID, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByPaymentIDForUpdate(ctx context.Context, tenantID, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDForUpdateFn != nil {
		return m.GetByPaymentIDForUpdateFn(ctx, tenantID, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, p *domain.Payment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter, p paging.Request, now time.Time) ([]domain.Payment, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, p, now)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) ListAll(ctx context.Context, tenantID string) ([]domain.Payment, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx, tenantID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByCredit(ctx context.Context, creditID uint64) ([]domain.Payment, error) {
	if m.ListByCreditFn != nil {
		return m.ListByCreditFn(ctx, creditID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListOverduePending(ctx context.Context, now time.Time) ([]domain.Payment, error) {
	if m.ListOverduePendingFn != nil {
		return m.ListOverduePendingFn(ctx, now)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateMora(ctx context.Context, id uint64, moraDias int) error {
	if m.UpdateMoraFn != nil {
		return m.UpdateMoraFn(ctx, id, moraDias)
	}
	return nil
}

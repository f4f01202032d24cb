package creditmock

import (
	"context"

	domain "creditos-backend/internal/domain/credit"
	"creditos-backend/internal/domain/paging"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil error; reads default to context.Canceled.
type Repo struct {
	CreateFn                 func(ctx context.Context, c *domain.Credit) error
	GetByCreditIDFn          func(ctx context.Context, tenantID, creditID string) (*domain.Credit, error)
	GetByCreditIDForUpdateFn func(ctx context.Context, tenantID, creditID string) (*domain.Credit, error)
	GetByIDForUpdateFn       func(ctx context.Context, id uint64) (*domain.Credit, error)
	SaveFn                   func(ctx context.Context, c *domain.Credit) error
	ListFn                   func(ctx context.Context, f domain.ListFilter, p paging.Request) ([]domain.Credit, int64, error)
	CountByStatusFn          func(ctx context.Context, tenantID string, s domain.Status) (int64, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Credit) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByCreditID(ctx context.Context, tenantID, creditID string) (*domain.Credit, error) {
	if m.GetByCreditIDFn != nil {
		return m.GetByCreditIDFn(ctx, tenantID, creditID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByCreditIDForUpdate(ctx context.Context, tenantID, creditID string) (*domain.Credit, error) {
	if m.GetByCreditIDForUpdateFn != nil {
		return m.GetByCreditIDForUpdateFn(ctx, tenantID, creditID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Credit, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, c *domain.Credit) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter, p paging.Request) ([]domain.Credit, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, p)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) CountByStatus(ctx context.Context, tenantID string, s domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, tenantID, s)
	}
	return 0, context.Canceled
}

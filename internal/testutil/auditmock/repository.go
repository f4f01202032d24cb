package auditmock

import (
	"context"

	domain "creditos-backend/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, e *domain.Entry) error
	ListByCreditIDFn func(ctx context.Context, creditID uint64) ([]domain.Entry, error)
}

func (m *Repo) Create(ctx context.Context, e *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) ListByCreditID(ctx context.Context, creditID uint64) ([]domain.Entry, error) {
	if m.ListByCreditIDFn != nil {
		return m.ListByCreditIDFn(ctx, creditID)
	}
	return nil, context.Canceled
}

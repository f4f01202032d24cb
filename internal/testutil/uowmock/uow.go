package uowmock

import (
	"context"
	"errors"

	"creditos-backend/internal/domain/credit"
	"creditos-backend/internal/domain/payment"
	"creditos-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinCreditTxFn  func(ctx context.Context, tenantID, creditID string, fn func(r uow.Repos, c *credit.Credit) error) error
	WithinPaymentTxFn func(ctx context.Context, tenantID, paymentID string, fn func(r uow.Repos, p *payment.Payment, c *credit.Credit) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinCreditTx(fn func(context.Context, string, string, func(uow.Repos, *credit.Credit) error) error) *UoW {
	m.WithinCreditTxFn = fn
	return m
}
func (m *UoW) WithWithinPaymentTx(fn func(context.Context, string, string, func(uow.Repos, *payment.Payment, *credit.Credit) error) error) *UoW {
	m.WithinPaymentTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Passthrough runs every tx body directly against r, loading locked rows
// through r's repositories the way the gorm implementation does.
func Passthrough(r uow.Repos) *UoW {
	return New().
		WithWithinTx(func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		}).
		WithWithinCreditTx(func(ctx context.Context, tenantID, creditID string, fn func(uow.Repos, *credit.Credit) error) error {
			c, err := r.Credits.GetByCreditIDForUpdate(ctx, tenantID, creditID)
			if err != nil {
				return err
			}
			return fn(r, c)
		}).
		WithWithinPaymentTx(func(ctx context.Context, tenantID, paymentID string, fn func(uow.Repos, *payment.Payment, *credit.Credit) error) error {
			p, err := r.Payments.GetByPaymentIDForUpdate(ctx, tenantID, paymentID)
			if err != nil {
				return err
			}
			c, err := r.Credits.GetByIDForUpdate(ctx, p.CreditID)
			if err != nil {
				return err
			}
			return fn(r, p, c)
		})
}

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinCreditTx(ctx context.Context, tenantID, creditID string, fn func(r uow.Repos, c *credit.Credit) error) error {
	if m.WithinCreditTxFn != nil {
		return m.WithinCreditTxFn(ctx, tenantID, creditID, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinPaymentTx(ctx context.Context, tenantID, paymentID string, fn func(r uow.Repos, p *payment.Payment, c *credit.Credit) error) error {
	if m.WithinPaymentTxFn != nil {
		return m.WithinPaymentTxFn(ctx, tenantID, paymentID, fn)
	}
	return errUnimplemented
}

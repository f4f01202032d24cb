package uow

import (
	"context"

	"creditos-backend/internal/domain/audit"
	"creditos-backend/internal/domain/credit"
	"creditos-backend/internal/domain/payment"
)

// Repos are bound to one transaction.
type Repos struct {
	Credits  credit.Repository
	Payments payment.Repository
	Audit    audit.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the credit row first, then pass it in
	WithinCreditTx(ctx context.Context, tenantID, creditID string, fn func(r Repos, c *credit.Credit) error) error
	// lock the payment row and its credit row, then pass both in
	WithinPaymentTx(ctx context.Context, tenantID, paymentID string, fn func(r Repos, p *payment.Payment, c *credit.Credit) error) error
}

package mysql

import (
	"context"

	"creditos-backend/internal/domain/credit"
	"creditos-backend/internal/domain/payment"
	"creditos-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

var _ uow.UnitOfWork = (*GormUoW)(nil)

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Credits:  &CreditRepository{db: tx},
		Payments: &PaymentRepository{db: tx},
		Audit:    &AuditRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinCreditTx(ctx context.Context, tenantID, creditID string, fn func(r uow.Repos, c *credit.Credit) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the credit row up-front to prevent races
		c, err := r.Credits.GetByCreditIDForUpdate(ctx, tenantID, creditID)
		if err != nil {
			return err
		}
		return fn(r, c)
	})
}

// WithinPaymentTx locks the credit before the installment, the same order
// WithinCreditTx uses when disbursing.
func (u *GormUoW) WithinPaymentTx(ctx context.Context, tenantID, paymentID string, fn func(r uow.Repos, p *payment.Payment, c *credit.Credit) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		unlocked, err := r.Payments.GetByPaymentID(ctx, tenantID, paymentID)
		if err != nil {
			return err
		}
		c, err := r.Credits.GetByIDForUpdate(ctx, unlocked.CreditID)
		if err != nil {
			return err
		}
		p, err := r.Payments.GetByPaymentIDForUpdate(ctx, tenantID, paymentID)
		if err != nil {
			return err
		}
		return fn(r, p, c)
	})
}

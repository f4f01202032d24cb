package payment

import (
	"context"
	"fmt"
	"time"

	domainAudit "creditos-backend/internal/domain/audit"
	domainCredit "creditos-backend/internal/domain/credit"
	"creditos-backend/internal/domain/paging"
	domainPayment "creditos-backend/internal/domain/payment"
	"creditos-backend/internal/domain/tenant"
	"creditos-backend/internal/domain/uow"
	"creditos-backend/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const actionPagar = "pagar"

type Usecase struct {
	payments domainPayment.Repository
	credits  domainCredit.Repository
	uow      uow.UnitOfWork
	log      *zap.Logger
	now      func() time.Time
	newRef   func() string
}

func NewUsecase(payments domainPayment.Repository, credits domainCredit.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{
		payments: payments,
		credits:  credits,
		uow:      tx,
		log:      log.Named("payment"),
		now:      func() time.Time { return time.Now().UTC() },
		newRef:   id.NewTxnReference,
	}
}

func (u *Usecase) List(ctx context.Context, f domainPayment.Filter, p paging.Request) (paging.Page[domainPayment.Payment], error) {
	f.TenantID = tenant.FromContext(ctx)
	f, err := f.Normalize()
	if err != nil {
		return paging.Page[domainPayment.Payment]{}, err
	}
	p = p.Normalize(domainPayment.DefaultPageSize)
	rows, count, err := u.payments.List(ctx, f, p, u.now())
	if err != nil {
		return paging.Page[domainPayment.Payment]{}, err
	}
	return paging.New(rows, count, p), nil
}

// Process pays one installment and lowers the credit's saldo_capital by the
// installment's capital, in one transaction.
func (u *Usecase) Process(ctx context.Context, paymentID string, in domainPayment.ProcessInput, actor string) (*domainPayment.Payment, error) {
	var out domainPayment.Payment
	err := u.uow.WithinPaymentTx(ctx, tenant.FromContext(ctx), paymentID, func(r uow.Repos, p *domainPayment.Payment, c *domainCredit.Credit) error {
		if err := p.Process(in, u.now(), u.newRef); err != nil {
			return err
		}
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}

		saldo := c.SaldoCapital.Sub(p.Capital)
		if saldo.IsNegative() {
			saldo = decimal.Zero
		}
		c.SaldoCapital = saldo
		if err := r.Credits.Save(ctx, c); err != nil {
			return err
		}

		if err := r.Audit.Create(ctx, &domainAudit.Entry{
			EntryID:    id.NewID32(),
			CreditID:   c.ID,
			Action:     actionPagar,
			FromStatus: string(c.Estado),
			ToStatus:   string(c.Estado),
			Actor:      actor,
			Detail:     fmt.Sprintf("cuota %d %s", p.NumeroCuota, *p.ReferenciaTransaccion),
		}); err != nil {
			return err
		}
		out = *p
		out.Credito = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("payment processed",
		zap.String("payment_id", out.PaymentID),
		zap.String("credito_id", out.CreditoID),
		zap.Int("mora_dias", out.MoraDias))
	return &out, nil
}

// Summary rescans the installment set on every call.
func (u *Usecase) Summary(ctx context.Context) (domainPayment.Summary, error) {
	tenantID := tenant.FromContext(ctx)
	all, err := u.payments.ListAll(ctx, tenantID)
	if err != nil {
		return domainPayment.Summary{}, err
	}
	activos, err := u.credits.CountByStatus(ctx, tenantID, domainCredit.StatusDesembolsado)
	if err != nil {
		return domainPayment.Summary{}, err
	}
	return domainPayment.Summarize(all, activos, u.now()), nil
}

func (u *Usecase) ForCredit(ctx context.Context, creditID string) ([]domainPayment.Payment, error) {
	c, err := u.credits.GetByCreditID(ctx, tenant.FromContext(ctx), creditID)
	if err != nil {
		return nil, err
	}
	ps, err := u.payments.ListByCredit(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = []domainPayment.Payment{}
	}
	return ps, nil
}

// RefreshMora stores the current arrears of every overdue pending installment
// and returns how many rows changed.
func (u *Usecase) RefreshMora(ctx context.Context) (int, error) {
	now := u.now()
	overdue, err := u.payments.ListOverduePending(ctx, now)
	if err != nil {
		return 0, err
	}
	updated := 0
	for i := range overdue {
		p := &overdue[i]
		dias := p.MoraDiasAt(now)
		if dias == p.MoraDias {
			continue
		}
		if err := u.payments.UpdateMora(ctx, p.ID, dias); err != nil {
			return updated, err
		}
		updated++
	}
	if updated > 0 {
		u.log.Info("mora refreshed", zap.Int("updated", updated))
	}
	return updated, nil
}

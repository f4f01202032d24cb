package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	auditDomain "creditos-backend/internal/domain/audit"
	creditDomain "creditos-backend/internal/domain/credit"
	paymentDomain "creditos-backend/internal/domain/payment"
	"creditos-backend/internal/domain/uow"
	"creditos-backend/pkg/id"

	"github.com/shopspring/decimal"
)

func makeEntry(c *creditDomain.Credit, action string, from, to creditDomain.Status) *auditDomain.Entry {
	return &auditDomain.Entry{
		EntryID:    id.NewID32(),
		CreditID:   c.ID,
		Action:     action,
		FromStatus: string(from),
		ToStatus:   string(to),
		Actor:      "tester",
	}
}

// ----------------------------- Tests -----------------------------

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	c := makeCredit(creditSeed{cliente: "Commit", at: time.Now()})
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Credits.Create(ctx, c); err != nil {
			return err
		}
		if c.ID == 0 {
			t.Fatalf("credit auto ID not set")
		}
		return r.Audit.Create(ctx, makeEntry(c, "crear", "", creditDomain.StatusSolicitado))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	if _, err := NewCreditRepository(db).GetByCreditID(ctx, "", c.CreditID); err != nil {
		t.Fatalf("credit not visible after commit: %v", err)
	}
	entries, err := NewAuditRepository(db).ListByCreditID(ctx, c.ID)
	if err != nil || len(entries) != 1 {
		t.Fatalf("audit entry not visible after commit: %v %d", err, len(entries))
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	c := makeCredit(creditSeed{cliente: "Rollback", at: time.Now()})
	sentinel := errors.New("boom")
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Credits.Create(ctx, c); err != nil {
			return err
		}
		if err := r.Audit.Create(ctx, makeEntry(c, "crear", "", creditDomain.StatusSolicitado)); err != nil {
			return err
		}
		return sentinel // force rollback
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}

	if _, err := NewCreditRepository(db).GetByCreditID(ctx, "", c.CreditID); !errors.Is(err, creditDomain.ErrNotFound) {
		t.Fatalf("expected credit not found after rollback, got %v", err)
	}
	entries, _ := NewAuditRepository(db).ListByCreditID(ctx, c.ID)
	if len(entries) != 0 {
		t.Fatalf("expected no audit entries after rollback, got %d", len(entries))
	}
}

func TestGormUoW_WithinCreditTx_DisburseCommit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	seed := mustCreateCredit(t, NewCreditRepository(db), creditSeed{tenant: tenantA, cliente: "Target", estado: creditDomain.StatusAprobado, at: time.Now()})

	err := guow.WithinCreditTx(ctx, tenantA, seed.CreditID, func(r uow.Repos, c *creditDomain.Credit) error {
		if c == nil || c.CreditID != seed.CreditID || c.Estado != creditDomain.StatusAprobado {
			t.Fatalf("unexpected credit passed to fn: %+v", c)
		}
		next, err := creditDomain.Apply(*c, creditDomain.ActionDesembolsar, creditDomain.Params{}, time.Now())
		if err != nil {
			return err
		}
		if err := r.Credits.Save(ctx, &next); err != nil {
			return err
		}
		if err := r.Payments.CreateBatch(ctx, []paymentDomain.Payment{makePayment(&next, 1, time.Now().AddDate(0, 1, 0), "850")}); err != nil {
			return err
		}
		return r.Audit.Create(ctx, makeEntry(&next, "desembolsar", c.Estado, next.Estado))
	})
	if err != nil {
		t.Fatalf("WithinCreditTx commit err: %v", err)
	}

	got, err := NewCreditRepository(db).GetByCreditID(ctx, tenantA, seed.CreditID)
	if err != nil {
		t.Fatalf("GetByCreditID post-commit: %v", err)
	}
	if got.Estado != creditDomain.StatusDesembolsado || got.FechaDesembolso == nil {
		t.Fatalf("credit not disbursed: %+v", got)
	}
	ps, _ := NewPaymentRepository(db).ListByCredit(ctx, got.ID)
	if len(ps) != 1 {
		t.Fatalf("expected 1 installment, got %d", len(ps))
	}
}

func TestGormUoW_WithinCreditTx_RollbackAndNotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	seed := mustCreateCredit(t, NewCreditRepository(db), creditSeed{tenant: tenantA, cliente: "Target", estado: creditDomain.StatusEnEvaluacion, at: time.Now()})

	sentinel := errors.New("stop")
	_ = guow.WithinCreditTx(ctx, tenantA, seed.CreditID, func(r uow.Repos, c *creditDomain.Credit) error {
		c.Estado = creditDomain.StatusAprobado
		if err := r.Credits.Save(ctx, c); err != nil {
			return err
		}
		return sentinel
	})
	got, _ := NewCreditRepository(db).GetByCreditID(ctx, "", seed.CreditID)
	if got.Estado != creditDomain.StatusEnEvaluacion {
		t.Fatalf("state must be rolled back, got %s", got.Estado)
	}

	called := false
	err := guow.WithinCreditTx(ctx, tenantB, seed.CreditID, func(uow.Repos, *creditDomain.Credit) error {
		called = true
		return nil
	})
	if !errors.Is(err, creditDomain.ErrNotFound) || called {
		t.Fatalf("expected ErrNotFound without calling fn, got %v called=%v", err, called)
	}
}

func TestGormUoW_WithinPaymentTx(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	seeded := seedPayments(t, db)

	err := guow.WithinPaymentTx(ctx, tenantA, seeded[0].PaymentID, func(r uow.Repos, p *paymentDomain.Payment, c *creditDomain.Credit) error {
		if p.PaymentID != seeded[0].PaymentID || c.ID != p.CreditID {
			t.Fatalf("payment/credit mismatch: %+v %+v", p, c)
		}
		c.SaldoCapital = c.SaldoCapital.Sub(p.Capital)
		return r.Credits.Save(ctx, c)
	})
	if err != nil {
		t.Fatalf("WithinPaymentTx: %v", err)
	}
	c, _ := NewCreditRepository(db).GetByIDForUpdate(ctx, seeded[0].CreditID)
	if !c.SaldoCapital.Equal(decimal.NewFromInt(9900)) {
		t.Fatalf("saldo_capital = %s, want 9900", c.SaldoCapital)
	}

	err = guow.WithinPaymentTx(ctx, tenantA, "ffffffffffffffffffffffffffffffff", func(uow.Repos, *paymentDomain.Payment, *creditDomain.Credit) error {
		t.Fatalf("fn must not run for a missing payment")
		return nil
	})
	if !errors.Is(err, paymentDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

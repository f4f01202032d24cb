package paymentmock

import (
	"context"
	"errors"
	"testing"
	"time"

	"creditos-backend/internal/domain/paging"
	domain "creditos-backend/internal/domain/payment"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if err := m.CreateBatch(ctx, nil); err != nil {
		t.Fatalf("CreateBatch default: %v", err)
	}
	if err := m.Save(ctx, &domain.Payment{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}
	if err := m.UpdateMora(ctx, 1, 2); err != nil {
		t.Fatalf("UpdateMora default: %v", err)
	}
	if _, err := m.GetByPaymentID(ctx, "", "p"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByPaymentID default: %v", err)
	}
	if _, err := m.GetByPaymentIDForUpdate(ctx, "", "p"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByPaymentIDForUpdate default: %v", err)
	}
	if _, _, err := m.List(ctx, domain.Filter{}, paging.Request{}, time.Now()); !errors.Is(err, context.Canceled) {
		t.Fatalf("List default: %v", err)
	}
	if _, err := m.ListAll(ctx, ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("ListAll default: %v", err)
	}
	if _, err := m.ListByCredit(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("ListByCredit default: %v", err)
	}
	if _, err := m.ListOverduePending(ctx, time.Now()); !errors.Is(err, context.Canceled) {
		t.Fatalf("ListOverduePending default: %v", err)
	}
}

func TestRepo_ForwardsCalls(t *testing.T) {
	ctx := context.Background()
	var gotID uint64
	var gotDias int
	m := &Repo{
		UpdateMoraFn: func(_ context.Context, id uint64, moraDias int) error {
			gotID, gotDias = id, moraDias
			return nil
		},
		ListAllFn: func(_ context.Context, tenantID string) ([]domain.Payment, error) {
			return []domain.Payment{{PaymentID: tenantID}}, nil
		},
	}
	_ = m.UpdateMora(ctx, 42, 3)
	if gotID != 42 || gotDias != 3 {
		t.Fatalf("UpdateMora not forwarded: %d %d", gotID, gotDias)
	}
	ps, err := m.ListAll(ctx, "T")
	if err != nil || len(ps) != 1 || ps[0].PaymentID != "T" {
		t.Fatalf("ListAll not forwarded: %v %+v", err, ps)
	}
}

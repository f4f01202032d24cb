package creditmock

import (
	"context"
	"errors"
	"testing"

	domain "creditos-backend/internal/domain/credit"
	"creditos-backend/internal/domain/paging"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	c := &domain.Credit{CreditID: "CR-1"}

	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Credit) error {
			called = true
			if gotCtx != ctx || got != c {
				t.Fatalf("Create args mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, c); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	if err := (&Repo{}).Create(ctx, c); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
	if err := (&Repo{}).Save(ctx, c); err != nil {
		t.Fatalf("Save default: want nil, got %v", err)
	}
}

func TestRepo_ReadDefaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if _, err := m.GetByCreditID(ctx, "", "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByCreditID default: %v", err)
	}
	if _, err := m.GetByCreditIDForUpdate(ctx, "", "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByCreditIDForUpdate default: %v", err)
	}
	if _, err := m.GetByIDForUpdate(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByIDForUpdate default: %v", err)
	}
	if _, _, err := m.List(ctx, domain.ListFilter{}, paging.Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("List default: %v", err)
	}
	if _, err := m.CountByStatus(ctx, "", domain.StatusAprobado); !errors.Is(err, context.Canceled) {
		t.Fatalf("CountByStatus default: %v", err)
	}
}

func TestRepo_ForwardsReads(t *testing.T) {
	ctx := context.Background()
	want := &domain.Credit{CreditID: "CR-2"}
	m := &Repo{
		GetByCreditIDFn: func(_ context.Context, tenantID, creditID string) (*domain.Credit, error) {
			if tenantID != "T" || creditID != "CR-2" {
				t.Fatalf("args mismatch: %s %s", tenantID, creditID)
			}
			return want, nil
		},
		ListFn: func(_ context.Context, f domain.ListFilter, p paging.Request) ([]domain.Credit, int64, error) {
			return []domain.Credit{*want}, 7, nil
		},
	}
	got, err := m.GetByCreditID(ctx, "T", "CR-2")
	if err != nil || got != want {
		t.Fatalf("GetByCreditID: %v %+v", err, got)
	}
	rows, n, err := m.List(ctx, domain.ListFilter{}, paging.Request{Page: 1, PageSize: 10})
	if err != nil || n != 7 || len(rows) != 1 {
		t.Fatalf("List: %v %d %d", err, n, len(rows))
	}
}

package credit

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	domainAudit "creditos-backend/internal/domain/audit"
	domainCredit "creditos-backend/internal/domain/credit"
	"creditos-backend/internal/domain/paging"
	domainPayment "creditos-backend/internal/domain/payment"
	"creditos-backend/internal/domain/tenant"
	"creditos-backend/internal/domain/uow"
	"creditos-backend/internal/testutil/auditmock"
	"creditos-backend/internal/testutil/creditmock"
	"creditos-backend/internal/testutil/paymentmock"
	"creditos-backend/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const tenantID = "tttttttttttttttttttttttttttttttt"

var fixedNow = time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)

// fakeStore keeps credits, installments and audit entries in maps behind the mocks.
type fakeStore struct {
	credits  map[string]domainCredit.Credit
	payments []domainPayment.Payment
	entries  []domainAudit.Entry
	nextID   uint64
}

func newFakeStore() *fakeStore { return &fakeStore{credits: map[string]domainCredit.Credit{}} }

func (s *fakeStore) creditRepo() *creditmock.Repo {
	get := func(_ context.Context, tenantID, creditID string) (*domainCredit.Credit, error) {
		c, ok := s.credits[creditID]
		if !ok || (tenantID != "" && c.TenantID != tenantID) {
			return nil, domainCredit.ErrNotFound
		}
		return &c, nil
	}
	return &creditmock.Repo{
		CreateFn: func(_ context.Context, c *domainCredit.Credit) error {
			s.nextID++
			c.ID = s.nextID
			s.credits[c.CreditID] = *c
			return nil
		},
		SaveFn: func(_ context.Context, c *domainCredit.Credit) error {
			s.credits[c.CreditID] = *c
			return nil
		},
		GetByCreditIDFn:          get,
		GetByCreditIDForUpdateFn: get,
	}
}

func (s *fakeStore) repos() uow.Repos {
	return uow.Repos{
		Credits: s.creditRepo(),
		Payments: &paymentmock.Repo{CreateBatchFn: func(_ context.Context, ps []domainPayment.Payment) error {
			s.payments = append(s.payments, ps...)
			return nil
		}},
		Audit: &auditmock.Repo{
			CreateFn: func(_ context.Context, e *domainAudit.Entry) error {
				s.entries = append(s.entries, *e)
				return nil
			},
			ListByCreditIDFn: func(_ context.Context, id uint64) ([]domainAudit.Entry, error) {
				var out []domainAudit.Entry
				for _, e := range s.entries {
					if e.CreditID == id {
						out = append(out, e)
					}
				}
				return out, nil
			},
		},
	}
}

func newTestUsecase(s *fakeStore) *Usecase {
	r := s.repos()
	uc := NewUsecase(r.Credits, r.Audit, uowmock.Passthrough(r), zap.NewNop())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func validInput() CreateCreditInput {
	return CreateCreditInput{
		Cliente:    "Ana Torres",
		Producto:   "Personal",
		Moneda:     "usd",
		Monto:      decimal.NewFromInt(10000),
		TasaAnual:  decimal.NewFromInt(12),
		PlazoMeses: 12,
	}
}

func TestCreate_Success(t *testing.T) {
	s := newFakeStore()
	uc := newTestUsecase(s)
	ctx := tenant.WithID(context.Background(), tenantID)

	c, err := uc.Create(ctx, validInput())
	require.NoError(t, err)

	assert.Len(t, c.CreditID, 32)
	assert.Regexp(t, regexp.MustCompile(`^CR-2025-[A-F0-9]{6}$`), c.Codigo)
	assert.Equal(t, domainCredit.StatusSolicitado, c.Estado)
	assert.Equal(t, domainCredit.MonedaUSD, c.Moneda)
	assert.Equal(t, domainCredit.FrecuenciaMensual, c.Frecuencia)
	assert.Equal(t, domainCredit.SistemaFrances, c.Sistema)
	assert.True(t, c.SaldoCapital.Equal(c.Monto))
	assert.Equal(t, fixedNow, c.FechaSolicitud)
	assert.Equal(t, tenantID, c.TenantID)

	require.Len(t, s.entries, 1)
	assert.Equal(t, actionCrear, s.entries[0].Action)
	assert.Equal(t, string(domainCredit.StatusSolicitado), s.entries[0].ToStatus)
}

func TestCreate_InvalidInput(t *testing.T) {
	cases := map[string]func(*CreateCreditInput){
		"cliente":    func(in *CreateCreditInput) { in.Cliente = "  " },
		"moneda":     func(in *CreateCreditInput) { in.Moneda = "BTC" },
		"monto":      func(in *CreateCreditInput) { in.Monto = decimal.Zero },
		"tasa":       func(in *CreateCreditInput) { in.TasaAnual = decimal.NewFromInt(-1) },
		"plazo":      func(in *CreateCreditInput) { in.PlazoMeses = 0 },
		"frecuencia": func(in *CreateCreditInput) { in.Frecuencia = "DIARIA" },
		"sistema":    func(in *CreateCreditInput) { in.Sistema = "BULLET" },
	}
	for name, mut := range cases {
		t.Run(name, func(t *testing.T) {
			s := newFakeStore()
			uc := newTestUsecase(s)
			in := validInput()
			mut(&in)
			_, err := uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domainCredit.ErrInvalidInput)
			assert.Empty(t, s.credits)
		})
	}
}

func TestTransition_EvaluarAprobarDesembolsar(t *testing.T) {
	s := newFakeStore()
	uc := newTestUsecase(s)
	ctx := tenant.WithID(context.Background(), tenantID)

	c, err := uc.Create(ctx, validInput())
	require.NoError(t, err)

	c, err = uc.ChangeStatus(ctx, c.CreditID, domainCredit.ActionEvaluar, "analista")
	require.NoError(t, err)
	assert.Equal(t, domainCredit.StatusEnEvaluacion, c.Estado)

	_, err = uc.ChangeStatus(ctx, c.CreditID, domainCredit.ActionEvaluar, "analista")
	assert.ErrorIs(t, err, domainCredit.ErrInvalidTransition)

	c, err = uc.ChangeStatus(ctx, c.CreditID, domainCredit.ActionAprobar, "gerente")
	require.NoError(t, err)
	require.NotNil(t, c.FechaAprobacion)

	c, err = uc.Desembolsar(ctx, c.CreditID, "BNK-77", "tesoreria")
	require.NoError(t, err)
	assert.Equal(t, domainCredit.StatusDesembolsado, c.Estado)
	assert.True(t, c.SaldoCapital.Equal(decimal.NewFromInt(10000)))
	require.NotNil(t, c.FechaDesembolso)
	assert.Equal(t, "BNK-77", *c.ReferenciaBancaria)

	stored := s.credits[c.CreditID]
	assert.Equal(t, domainCredit.StatusDesembolsado, stored.Estado)

	require.Len(t, s.payments, 12)
	assert.Equal(t, 1, s.payments[0].NumeroCuota)
	assert.Equal(t, c.ID, s.payments[0].CreditID)
	assert.Equal(t, domainPayment.StatusPendiente, s.payments[11].Estado)
	assert.Equal(t, fixedNow.AddDate(0, 1, 0).Truncate(24*time.Hour), s.payments[0].FechaVencimiento)

	hist, err := uc.History(ctx, c.CreditID)
	require.NoError(t, err)
	require.Len(t, hist, 4)
	assert.Equal(t, []string{"crear", "evaluar", "aprobar", "desembolsar"},
		[]string{hist[0].Action, hist[1].Action, hist[2].Action, hist[3].Action})
	assert.Equal(t, "tesoreria", hist[3].Actor)
}

func TestTransition_RejectedNeverSaves(t *testing.T) {
	s := newFakeStore()
	r := s.repos()
	credits := r.Credits.(*creditmock.Repo)
	_ = credits.Create(context.Background(), &domainCredit.Credit{CreditID: "C1", Estado: domainCredit.StatusRechazado})
	credits.SaveFn = func(context.Context, *domainCredit.Credit) error {
		t.Fatalf("Save must not be called for an illegal action")
		return nil
	}
	uc := NewUsecase(credits, r.Audit, uowmock.Passthrough(r), zap.NewNop())

	for _, a := range domainCredit.AllActions() {
		_, err := uc.Transition(context.Background(), "C1", a, domainCredit.Params{ReferenciaBancaria: "x"}, "u")
		var ite *domainCredit.InvalidTransitionError
		require.True(t, errors.As(err, &ite), "action %s: %v", a, err)
		assert.Equal(t, domainCredit.StatusRechazado, ite.Status)
		assert.Equal(t, a, ite.Action)
	}
	assert.Empty(t, s.entries)
}

func TestTransition_PersistenceFailurePropagates(t *testing.T) {
	s := newFakeStore()
	r := s.repos()
	_ = r.Credits.Create(context.Background(), &domainCredit.Credit{
		CreditID: "C1", Estado: domainCredit.StatusAprobado,
		Monto: decimal.NewFromInt(500), TasaAnual: decimal.NewFromInt(10), PlazoMeses: 2,
		Frecuencia: domainCredit.FrecuenciaMensual, Sistema: domainCredit.SistemaAleman,
	})
	boom := errors.New("db down")
	r.Payments = &paymentmock.Repo{CreateBatchFn: func(context.Context, []domainPayment.Payment) error { return boom }}
	uc := NewUsecase(r.Credits, r.Audit, uowmock.Passthrough(r), zap.NewNop())

	_, err := uc.Desembolsar(context.Background(), "C1", "", "u")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.entries, "audit must not be written after a failed step")
}

func TestTransition_NotFound(t *testing.T) {
	uc := newTestUsecase(newFakeStore())
	_, err := uc.ChangeStatus(context.Background(), "missing", domainCredit.ActionEvaluar, "u")
	assert.ErrorIs(t, err, domainCredit.ErrNotFound)
}

func TestProgramarAndConciliar(t *testing.T) {
	s := newFakeStore()
	uc := newTestUsecase(s)
	ctx := context.Background()
	_ = s.repos().Credits.Create(ctx, &domainCredit.Credit{CreditID: "C1", Estado: domainCredit.StatusAprobado,
		Monto: decimal.NewFromInt(1200), TasaAnual: decimal.Zero, PlazoMeses: 12,
		Frecuencia: domainCredit.FrecuenciaMensual, Sistema: domainCredit.SistemaFrances})

	when := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	c, err := uc.ProgramarDesembolso(ctx, "C1", ProgramarInput{CuentaOrigenID: "ACC-9", FechaProgramada: when}, "u")
	require.NoError(t, err)
	assert.Equal(t, domainCredit.StatusAprobado, c.Estado)
	assert.Equal(t, when, *c.FechaProgramada)

	cuotas, err := uc.GetCuotas(ctx, "C1")
	require.NoError(t, err)
	require.Len(t, cuotas, 12)
	assert.Equal(t, when.AddDate(0, 1, 0), cuotas[0].Fecha, "schedule starts from fecha_programada")

	_, err = uc.ConciliarDesembolso(ctx, "C1", ConciliarInput{ReferenciaBancaria: "R"}, "u")
	assert.ErrorIs(t, err, domainCredit.ErrInvalidTransition)

	_, err = uc.Desembolsar(ctx, "C1", "", "u")
	require.NoError(t, err)
	op := time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)
	c, err = uc.ConciliarDesembolso(ctx, "C1", ConciliarInput{ReferenciaBancaria: "BNK-1", FechaOperacion: &op}, "u")
	require.NoError(t, err)
	assert.Equal(t, op, *c.ConciliadoAt)
	assert.Equal(t, "BNK-1", *c.ReferenciaBancaria)
}

func TestList_ScopesAndNormalizes(t *testing.T) {
	var gotF domainCredit.ListFilter
	var gotP paging.Request
	repo := &creditmock.Repo{ListFn: func(_ context.Context, f domainCredit.ListFilter, p paging.Request) ([]domainCredit.Credit, int64, error) {
		gotF, gotP = f, p
		return []domainCredit.Credit{{CreditID: "C1"}}, 42, nil
	}}
	uc := NewUsecase(repo, &auditmock.Repo{}, uowmock.New(), zap.NewNop())
	ctx := tenant.WithID(context.Background(), tenantID)

	page, err := uc.List(ctx, domainCredit.ListFilter{Estado: "ALL", Moneda: "usd"}, paging.Request{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotF.TenantID)
	assert.Equal(t, "", gotF.Estado)
	assert.Equal(t, "USD", gotF.Moneda)
	assert.Equal(t, paging.Request{Page: 1, PageSize: domainCredit.DefaultPageSize}, gotP)
	assert.EqualValues(t, 42, page.Count)
	assert.Len(t, page.Results, 1)

	_, err = uc.List(ctx, domainCredit.ListFilter{Estado: "PAGADO"}, paging.Request{})
	assert.ErrorIs(t, err, domainCredit.ErrInvalidInput)
}

func TestList_WithPageSize(t *testing.T) {
	var got paging.Request
	repo := &creditmock.Repo{ListFn: func(_ context.Context, _ domainCredit.ListFilter, p paging.Request) ([]domainCredit.Credit, int64, error) {
		got = p
		return nil, 0, nil
	}}
	uc := NewUsecase(repo, &auditmock.Repo{}, uowmock.New(), zap.NewNop()).WithPageSize(25)

	page, err := uc.List(context.Background(), domainCredit.ListFilter{}, paging.Request{})
	require.NoError(t, err)
	assert.Equal(t, 25, got.PageSize)
	assert.NotNil(t, page.Results)

	uc.WithPageSize(0)
	_, _ = uc.List(context.Background(), domainCredit.ListFilter{}, paging.Request{})
	assert.Equal(t, 25, got.PageSize, "non-positive sizes are ignored")
}

func TestProgramar_MissingDate(t *testing.T) {
	s := newFakeStore()
	uc := newTestUsecase(s)
	_ = s.repos().Credits.Create(context.Background(), &domainCredit.Credit{CreditID: "C1", Estado: domainCredit.StatusAprobado})

	_, err := uc.ProgramarDesembolso(context.Background(), "C1", ProgramarInput{CuentaOrigenID: "ACC"}, "u")
	assert.ErrorIs(t, err, domainCredit.ErrInvalidInput)
	assert.Nil(t, s.credits["C1"].FechaProgramada)
}

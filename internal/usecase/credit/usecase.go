package credit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"creditos-backend/internal/domain/amortization"
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

// actionCrear is the audit label for origination; it is not a workflow action.
const actionCrear = "crear"

type Usecase struct {
	credits domainCredit.Repository
	audits  domainAudit.Repository
	uow     uow.UnitOfWork
	log     *zap.Logger
	now     func() time.Time

	pageSize int
}

// NewUsecase: reads go through the repos, every write through the UoW.
func NewUsecase(credits domainCredit.Repository, audits domainAudit.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{
		credits: credits,
		audits:  audits,
		uow:     tx,
		log:     log.Named("credit"),
		now:     func() time.Time { return time.Now().UTC() },

		pageSize: domainCredit.DefaultPageSize,
	}
}

// WithPageSize overrides the listing page size used when the caller sends none.
func (u *Usecase) WithPageSize(n int) *Usecase {
	if n > 0 {
		u.pageSize = n
	}
	return u
}

func (u *Usecase) Create(ctx context.Context, in CreateCreditInput) (*domainCredit.Credit, error) {
	c, err := u.newCredit(ctx, in)
	if err != nil {
		return nil, err
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Credits.Create(ctx, c); err != nil {
			return err
		}
		return r.Audit.Create(ctx, entry(c, actionCrear, "", c.Estado, "", ""))
	})
	if err != nil {
		u.log.Error("create credit failed", zap.Error(err))
		return nil, err
	}
	u.log.Info("credit created", zap.String("credit_id", c.CreditID), zap.String("codigo", c.Codigo))
	return c, nil
}

func (u *Usecase) newCredit(ctx context.Context, in CreateCreditInput) (*domainCredit.Credit, error) {
	cliente := strings.TrimSpace(in.Cliente)
	moneda := domainCredit.Moneda(strings.ToUpper(strings.TrimSpace(in.Moneda)))
	frecuencia := domainCredit.Frecuencia(strings.ToUpper(strings.TrimSpace(in.Frecuencia)))
	if frecuencia == "" {
		frecuencia = domainCredit.FrecuenciaMensual
	}
	sistema := domainCredit.Sistema(strings.ToUpper(strings.TrimSpace(in.Sistema)))
	if sistema == "" {
		sistema = domainCredit.SistemaFrances
	}

	switch {
	case cliente == "":
		return nil, fmt.Errorf("%w: cliente is required", domainCredit.ErrInvalidInput)
	case !moneda.Valid():
		return nil, fmt.Errorf("%w: unknown moneda %q", domainCredit.ErrInvalidInput, in.Moneda)
	case !in.Monto.IsPositive():
		return nil, fmt.Errorf("%w: monto must be positive", domainCredit.ErrInvalidInput)
	case in.TasaAnual.IsNegative():
		return nil, fmt.Errorf("%w: tasa_anual must not be negative", domainCredit.ErrInvalidInput)
	case in.PlazoMeses <= 0:
		return nil, fmt.Errorf("%w: plazo_meses must be positive", domainCredit.ErrInvalidInput)
	case !frecuencia.Valid():
		return nil, fmt.Errorf("%w: unknown frecuencia %q", domainCredit.ErrInvalidInput, in.Frecuencia)
	case !sistema.Valid():
		return nil, fmt.Errorf("%w: unknown sistema %q", domainCredit.ErrInvalidInput, in.Sistema)
	}

	now := u.now()
	monto := in.Monto.Round(2)
	return &domainCredit.Credit{
		CreditID:       id.NewID32(),
		TenantID:       tenant.FromContext(ctx),
		Codigo:         id.NewCreditCode(now),
		ClienteID:      strings.TrimSpace(in.ClienteID),
		Cliente:        cliente,
		Producto:       strings.TrimSpace(in.Producto),
		Moneda:         moneda,
		Monto:          monto,
		TasaAnual:      in.TasaAnual,
		PlazoMeses:     in.PlazoMeses,
		Frecuencia:     frecuencia,
		Sistema:        sistema,
		Estado:         domainCredit.StatusSolicitado,
		FechaSolicitud: now,
		SaldoCapital:   monto,
	}, nil
}

func (u *Usecase) Get(ctx context.Context, creditID string) (*domainCredit.Credit, error) {
	return u.credits.GetByCreditID(ctx, tenant.FromContext(ctx), creditID)
}

func (u *Usecase) List(ctx context.Context, f domainCredit.ListFilter, p paging.Request) (paging.Page[domainCredit.Credit], error) {
	f.TenantID = tenant.FromContext(ctx)
	f, err := f.Normalize()
	if err != nil {
		return paging.Page[domainCredit.Credit]{}, err
	}
	p = p.Normalize(u.pageSize)
	rows, count, err := u.credits.List(ctx, f, p)
	if err != nil {
		return paging.Page[domainCredit.Credit]{}, err
	}
	return paging.New(rows, count, p), nil
}

// Transition validates action against the locked row, applies it and records
// an audit entry in one transaction. Disbursing also creates the installments.
func (u *Usecase) Transition(ctx context.Context, creditID string, action domainCredit.Action, params domainCredit.Params, actor string) (*domainCredit.Credit, error) {
	var out domainCredit.Credit
	err := u.uow.WithinCreditTx(ctx, tenant.FromContext(ctx), creditID, func(r uow.Repos, c *domainCredit.Credit) error {
		next, err := domainCredit.Apply(*c, action, params, u.now())
		if err != nil {
			return err
		}
		if err := r.Credits.Save(ctx, &next); err != nil {
			return err
		}
		if action == domainCredit.ActionDesembolsar {
			if err := createInstallments(ctx, r, &next); err != nil {
				return err
			}
		}
		detail := ""
		if next.ReferenciaBancaria != nil {
			detail = *next.ReferenciaBancaria
		}
		if err := r.Audit.Create(ctx, entry(&next, string(action), c.Estado, next.Estado, actor, detail)); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("credit transition",
		zap.String("credit_id", out.CreditID),
		zap.String("action", string(action)),
		zap.String("estado", string(out.Estado)),
		zap.String("actor", actor))
	return &out, nil
}

func (u *Usecase) ChangeStatus(ctx context.Context, creditID string, action domainCredit.Action, actor string) (*domainCredit.Credit, error) {
	return u.Transition(ctx, creditID, action, domainCredit.Params{}, actor)
}

func (u *Usecase) ProgramarDesembolso(ctx context.Context, creditID string, in ProgramarInput, actor string) (*domainCredit.Credit, error) {
	params := domainCredit.Params{CuentaOrigenID: in.CuentaOrigenID}
	if !in.FechaProgramada.IsZero() {
		fp := in.FechaProgramada
		params.FechaProgramada = &fp
	}
	return u.Transition(ctx, creditID, domainCredit.ActionProgramar, params, actor)
}

func (u *Usecase) Desembolsar(ctx context.Context, creditID, referencia, actor string) (*domainCredit.Credit, error) {
	return u.Transition(ctx, creditID, domainCredit.ActionDesembolsar, domainCredit.Params{ReferenciaBancaria: referencia}, actor)
}

func (u *Usecase) ConciliarDesembolso(ctx context.Context, creditID string, in ConciliarInput, actor string) (*domainCredit.Credit, error) {
	return u.Transition(ctx, creditID, domainCredit.ActionConciliar, domainCredit.Params{
		ReferenciaBancaria: in.ReferenciaBancaria,
		FechaOperacion:     in.FechaOperacion,
	}, actor)
}

// GetCuotas computes the schedule from the disbursement date, else the
// scheduled date, else today.
func (u *Usecase) GetCuotas(ctx context.Context, creditID string) ([]amortization.Cuota, error) {
	c, err := u.Get(ctx, creditID)
	if err != nil {
		return nil, err
	}
	start := u.now()
	switch {
	case c.FechaDesembolso != nil:
		start = *c.FechaDesembolso
	case c.FechaProgramada != nil:
		start = *c.FechaProgramada
	}
	return amortization.Schedule(amortization.TermsOf(*c, start))
}

func (u *Usecase) History(ctx context.Context, creditID string) ([]domainAudit.Entry, error) {
	c, err := u.Get(ctx, creditID)
	if err != nil {
		return nil, err
	}
	entries, err := u.audits.ListByCreditID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domainAudit.Entry{}
	}
	return entries, nil
}

func createInstallments(ctx context.Context, r uow.Repos, c *domainCredit.Credit) error {
	cuotas, err := amortization.Schedule(amortization.TermsOf(*c, *c.FechaDesembolso))
	if err != nil {
		return fmt.Errorf("%w: %v", domainCredit.ErrInvalidInput, err)
	}
	ps := make([]domainPayment.Payment, 0, len(cuotas))
	for _, q := range cuotas {
		ps = append(ps, domainPayment.Payment{
			PaymentID:        id.NewID32(),
			TenantID:         c.TenantID,
			CreditID:         c.ID,
			CreditoID:        c.CreditID,
			NumeroCuota:      q.Numero,
			MontoProgramado:  q.Cuota,
			Capital:          q.Capital,
			Interes:          q.Interes,
			MontoPagado:      decimal.Zero,
			FechaVencimiento: q.Fecha,
			Estado:           domainPayment.StatusPendiente,
		})
	}
	return r.Payments.CreateBatch(ctx, ps)
}

func entry(c *domainCredit.Credit, action string, from, to domainCredit.Status, actor, detail string) *domainAudit.Entry {
	return &domainAudit.Entry{
		EntryID:    id.NewID32(),
		CreditID:   c.ID,
		Action:     action,
		FromStatus: string(from),
		ToStatus:   string(to),
		Actor:      actor,
		Detail:     detail,
	}
}

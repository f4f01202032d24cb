package payment

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"creditos-backend/internal/domain/paging"
)

const DefaultPageSize = 20

// Filter holds the conjunctive payment listing filters. Empty fields do not filter.
type Filter struct {
	TenantID     string
	Search       string // codigo, cliente or referencia_transaccion
	Estado       string // a Status, "ALL" or empty
	CreditoID    string
	MetodoPago   string
	SoloVencidos bool // pending and past due
	SoloEnMora   bool // at least one day of arrears
}

func (f Filter) Normalize() (Filter, error) {
	f.Search = strings.TrimSpace(f.Search)
	f.CreditoID = strings.TrimSpace(f.CreditoID)
	f.Estado = strings.ToUpper(strings.TrimSpace(f.Estado))
	f.MetodoPago = strings.ToUpper(strings.TrimSpace(f.MetodoPago))
	if f.Estado == "ALL" {
		f.Estado = ""
	}
	if f.MetodoPago == "ALL" {
		f.MetodoPago = ""
	}
	if f.Estado != "" && f.Estado != string(StatusPendiente) && f.Estado != string(StatusCompletado) {
		return f, fmt.Errorf("%w: unknown estado %q", ErrInvalidInput, f.Estado)
	}
	if f.MetodoPago != "" && !Method(f.MetodoPago).Valid() {
		return f, fmt.Errorf("%w: unknown metodo_pago %q", ErrInvalidInput, f.MetodoPago)
	}
	return f, nil
}

// Matches is the in-memory form of the repository query.
func (f Filter) Matches(p Payment, now time.Time) bool {
	if f.TenantID != "" && p.TenantID != f.TenantID {
		return false
	}
	if f.Estado != "" && string(p.Estado) != f.Estado {
		return false
	}
	if f.CreditoID != "" && p.CreditoID != f.CreditoID {
		return false
	}
	if f.MetodoPago != "" && (p.MetodoPago == nil || string(*p.MetodoPago) != f.MetodoPago) {
		return false
	}
	if f.SoloVencidos && !p.Overdue(now) {
		return false
	}
	if f.SoloEnMora && p.MoraDiasAt(now) == 0 {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		hay := []string{}
		if p.Credito != nil {
			hay = append(hay, p.Credito.Codigo, p.Credito.Cliente)
		}
		if p.ReferenciaTransaccion != nil {
			hay = append(hay, *p.ReferenciaTransaccion)
		}
		found := false
		for _, h := range hay {
			if strings.Contains(strings.ToLower(h), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Sort orders by fecha_vencimiento DESC, then payment id.
func Sort(ps []Payment) {
	sort.SliceStable(ps, func(i, j int) bool {
		if !ps[i].FechaVencimiento.Equal(ps[j].FechaVencimiento) {
			return ps[i].FechaVencimiento.After(ps[j].FechaVencimiento)
		}
		return ps[i].PaymentID < ps[j].PaymentID
	})
}

// Select filters, orders and paginates an in-memory installment set.
func Select(all []Payment, f Filter, req paging.Request, now time.Time) paging.Page[Payment] {
	out := make([]Payment, 0, len(all))
	for _, p := range all {
		if f.Matches(p, now) {
			out = append(out, p)
		}
	}
	Sort(out)
	return paging.Slice(out, req)
}

package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary is derived from the installment set on every call; it is never stored.
type Summary struct {
	TotalPendientes  int             `json:"total_pendientes"`
	TotalCompletados int             `json:"total_completados"`
	TotalVencidos    int             `json:"total_vencidos"`
	TotalEnMora      int             `json:"total_en_mora"`
	MontoPendiente   decimal.Decimal `json:"monto_pendiente"`
	MontoCobradoMes  decimal.Decimal `json:"monto_cobrado_mes"`
	CreditosActivos  int64           `json:"creditos_activos"`
}

func Summarize(ps []Payment, creditosActivos int64, now time.Time) Summary {
	now = now.UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	s := Summary{
		MontoPendiente:  decimal.Zero,
		MontoCobradoMes: decimal.Zero,
		CreditosActivos: creditosActivos,
	}
	for i := range ps {
		p := &ps[i]
		if p.MoraDiasAt(now) > 0 {
			s.TotalEnMora++
		}
		if p.Pending() {
			s.TotalPendientes++
			s.MontoPendiente = s.MontoPendiente.Add(p.MontoProgramado)
			if p.Overdue(now) {
				s.TotalVencidos++
			}
			continue
		}
		s.TotalCompletados++
		if p.FechaPago != nil && !p.FechaPago.Before(monthStart) && !p.FechaPago.After(now) {
			s.MontoCobradoMes = s.MontoCobradoMes.Add(p.MontoPagado)
		}
	}
	return s
}

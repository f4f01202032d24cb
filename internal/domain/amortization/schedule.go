// Package amortization builds installment schedules for the French
// (constant installment), German (constant capital) and American
// (interest only, bullet principal) systems.
package amortization

import (
	"errors"
	"fmt"
	"time"

	"creditos-backend/internal/domain/credit"

	"github.com/shopspring/decimal"
)

var ErrInvalidTerms = errors.New("invalid amortization terms")

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

type Terms struct {
	Monto      decimal.Decimal
	TasaAnual  decimal.Decimal // percentage, e.g. 18.5
	PlazoMeses int
	Frecuencia credit.Frecuencia
	Sistema    credit.Sistema
	Inicio     time.Time
}

// TermsOf reads the schedule terms off a credit, starting at start.
func TermsOf(c credit.Credit, start time.Time) Terms {
	return Terms{
		Monto:      c.Monto,
		TasaAnual:  c.TasaAnual,
		PlazoMeses: c.PlazoMeses,
		Frecuencia: c.Frecuencia,
		Sistema:    c.Sistema,
		Inicio:     start,
	}
}

type Cuota struct {
	Numero  int             `json:"numero"`
	Fecha   time.Time       `json:"fecha"`
	Capital decimal.Decimal `json:"capital"`
	Interes decimal.Decimal `json:"interes"`
	Cuota   decimal.Decimal `json:"cuota"`
	Saldo   decimal.Decimal `json:"saldo"`
}

func PeriodsPerYear(f credit.Frecuencia) int {
	switch f {
	case credit.FrecuenciaQuincenal:
		return 24
	case credit.FrecuenciaSemanal:
		return 52
	default:
		return 12
	}
}

// Periods is the installment count for a term in months, rounded up.
func Periods(plazoMeses int, f credit.Frecuencia) int {
	ppy := PeriodsPerYear(f)
	return (plazoMeses*ppy + 11) / 12
}

// DueDate of installment i (1-based).
func DueDate(start time.Time, f credit.Frecuencia, i int) time.Time {
	switch f {
	case credit.FrecuenciaQuincenal:
		return start.AddDate(0, 0, 15*i)
	case credit.FrecuenciaSemanal:
		return start.AddDate(0, 0, 7*i)
	default:
		return start.AddDate(0, i, 0)
	}
}

func (t Terms) validate() error {
	switch {
	case !t.Monto.IsPositive():
		return fmt.Errorf("%w: monto must be positive", ErrInvalidTerms)
	case t.TasaAnual.IsNegative():
		return fmt.Errorf("%w: tasa_anual must not be negative", ErrInvalidTerms)
	case t.PlazoMeses <= 0:
		return fmt.Errorf("%w: plazo_meses must be positive", ErrInvalidTerms)
	case !t.Frecuencia.Valid():
		return fmt.Errorf("%w: frecuencia %q", ErrInvalidTerms, t.Frecuencia)
	case !t.Sistema.Valid():
		return fmt.Errorf("%w: sistema %q", ErrInvalidTerms, t.Sistema)
	}
	return nil
}

// Schedule returns every installment. Amounts are rounded to cents and the
// last installment absorbs the rounding so capital adds up to Monto.
func Schedule(t Terms) ([]Cuota, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	n := Periods(t.PlazoMeses, t.Frecuencia)
	rate := t.TasaAnual.Div(hundred).Div(decimal.NewFromInt(int64(PeriodsPerYear(t.Frecuencia))))
	start := t.Inicio.UTC().Truncate(24 * time.Hour)

	var fixed decimal.Decimal
	switch t.Sistema {
	case credit.SistemaFrances:
		fixed = frenchInstallment(t.Monto, rate, n).Round(2)
	case credit.SistemaAleman:
		fixed = t.Monto.Div(decimal.NewFromInt(int64(n))).Round(2)
	}

	out := make([]Cuota, 0, n)
	saldo := t.Monto
	for i := 1; i <= n; i++ {
		interes := saldo.Mul(rate).Round(2)

		var capital decimal.Decimal
		switch {
		case i == n:
			capital = saldo
		case t.Sistema == credit.SistemaFrances:
			capital = fixed.Sub(interes)
		case t.Sistema == credit.SistemaAleman:
			capital = fixed
		default:
			capital = decimal.Zero
		}
		if capital.GreaterThan(saldo) {
			capital = saldo
		}
		saldo = saldo.Sub(capital)

		out = append(out, Cuota{
			Numero:  i,
			Fecha:   DueDate(start, t.Frecuencia, i),
			Capital: capital,
			Interes: interes,
			Cuota:   capital.Add(interes),
			Saldo:   saldo,
		})
	}
	return out, nil
}

// frenchInstallment is P*r / (1 - (1+r)^-n), or P/n when r is zero.
func frenchInstallment(p, r decimal.Decimal, n int) decimal.Decimal {
	if r.IsZero() {
		return p.Div(decimal.NewFromInt(int64(n)))
	}
	f := one.Add(r).Pow(decimal.NewFromInt(int64(n)))
	return p.Mul(r).Mul(f).Div(f.Sub(one))
}

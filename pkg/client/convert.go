package client

import (
	"errors"
	"fmt"

	domainCredit "creditos-backend/internal/domain/credit"
	domainPayment "creditos-backend/internal/domain/payment"
)

// The SDK reuses the server's workflow and listing rules for local checks and
// the offline fallback; these helpers move values across that boundary.

func creditToDomain(c Credit) domainCredit.Credit {
	return domainCredit.Credit{
		CreditID:           c.ID,
		TenantID:           c.TenantID,
		Codigo:             c.Codigo,
		ClienteID:          c.ClienteID,
		Cliente:            c.Cliente,
		Producto:           c.Producto,
		Moneda:             domainCredit.Moneda(c.Moneda),
		Monto:              c.Monto,
		TasaAnual:          c.TasaAnual,
		PlazoMeses:         c.PlazoMeses,
		Frecuencia:         domainCredit.Frecuencia(c.Frecuencia),
		Sistema:            domainCredit.Sistema(c.Sistema),
		Estado:             domainCredit.Status(c.Estado),
		FechaSolicitud:     c.FechaSolicitud,
		FechaAprobacion:    c.FechaAprobacion,
		FechaDesembolso:    c.FechaDesembolso,
		FechaProgramada:    c.FechaProgramada,
		SaldoCapital:       c.SaldoCapital,
		CuentaOrigenID:     c.CuentaOrigenID,
		ReferenciaBancaria: c.ReferenciaBancaria,
		ConciliadoAt:       c.ConciliadoAt,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}.Clone()
}

func creditFromDomain(d domainCredit.Credit) Credit {
	d = d.Clone()
	return Credit{
		ID:                 d.CreditID,
		TenantID:           d.TenantID,
		Codigo:             d.Codigo,
		ClienteID:          d.ClienteID,
		Cliente:            d.Cliente,
		Producto:           d.Producto,
		Moneda:             string(d.Moneda),
		Monto:              d.Monto,
		TasaAnual:          d.TasaAnual,
		PlazoMeses:         d.PlazoMeses,
		Frecuencia:         string(d.Frecuencia),
		Sistema:            string(d.Sistema),
		Estado:             Status(d.Estado),
		FechaSolicitud:     d.FechaSolicitud,
		FechaAprobacion:    d.FechaAprobacion,
		FechaDesembolso:    d.FechaDesembolso,
		FechaProgramada:    d.FechaProgramada,
		SaldoCapital:       d.SaldoCapital,
		CuentaOrigenID:     d.CuentaOrigenID,
		ReferenciaBancaria: d.ReferenciaBancaria,
		ConciliadoAt:       d.ConciliadoAt,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func paramsToDomain(p TransitionParams) domainCredit.Params {
	return domainCredit.Params{
		CuentaOrigenID:     p.CuentaOrigenID,
		FechaProgramada:    p.FechaProgramada,
		ReferenciaBancaria: p.ReferenciaBancaria,
		FechaOperacion:     p.FechaOperacion,
	}
}

func paymentToDomain(p Payment) domainPayment.Payment {
	out := domainPayment.Payment{
		PaymentID:             p.ID,
		TenantID:              p.TenantID,
		CreditoID:             p.CreditoID,
		NumeroCuota:           p.NumeroCuota,
		MontoProgramado:       p.MontoProgramado,
		Capital:               p.Capital,
		Interes:               p.Interes,
		MontoPagado:           p.MontoPagado,
		FechaVencimiento:      p.FechaVencimiento,
		FechaPago:             p.FechaPago,
		Estado:                domainPayment.Status(p.Estado),
		ReferenciaTransaccion: p.ReferenciaTransaccion,
		Observaciones:         p.Observaciones,
		MoraDias:              p.MoraDias,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
	if p.MetodoPago != nil {
		m := domainPayment.Method(*p.MetodoPago)
		out.MetodoPago = &m
	}
	if p.Credito != nil {
		c := creditToDomain(*p.Credito)
		out.Credito = &c
	}
	return out
}

func paymentFromDomain(d domainPayment.Payment) Payment {
	out := Payment{
		ID:                    d.PaymentID,
		TenantID:              d.TenantID,
		CreditoID:             d.CreditoID,
		NumeroCuota:           d.NumeroCuota,
		MontoProgramado:       d.MontoProgramado,
		Capital:               d.Capital,
		Interes:               d.Interes,
		MontoPagado:           d.MontoPagado,
		FechaVencimiento:      d.FechaVencimiento,
		FechaPago:             d.FechaPago,
		Estado:                PaymentStatus(d.Estado),
		ReferenciaTransaccion: d.ReferenciaTransaccion,
		Observaciones:         d.Observaciones,
		MoraDias:              d.MoraDias,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
	if d.MetodoPago != nil {
		m := PaymentMethod(*d.MetodoPago)
		out.MetodoPago = &m
	}
	if d.Credito != nil {
		c := creditFromDomain(*d.Credito)
		out.Credito = &c
	}
	return out
}

func paymentsToDomain(ps []Payment) []domainPayment.Payment {
	out := make([]domainPayment.Payment, len(ps))
	for i, p := range ps {
		out[i] = paymentToDomain(p)
	}
	return out
}

func filterToDomain(f PaymentFilter) domainPayment.Filter {
	return domainPayment.Filter{
		Search:       f.Search,
		Estado:       f.Estado,
		CreditoID:    f.CreditoID,
		MetodoPago:   f.MetodoPago,
		SoloVencidos: f.SoloVencidos,
		SoloEnMora:   f.SoloEnMora,
	}
}

func summaryFromDomain(s domainPayment.Summary) Summary {
	return Summary{
		TotalPendientes:  s.TotalPendientes,
		TotalCompletados: s.TotalCompletados,
		TotalVencidos:    s.TotalVencidos,
		TotalEnMora:      s.TotalEnMora,
		MontoPendiente:   s.MontoPendiente,
		MontoCobradoMes:  s.MontoCobradoMes,
		CreditosActivos:  s.CreditosActivos,
	}
}

// localError rewrites an error from a local rule check into the SDK's own errors.
func localError(err error) error {
	var ite *domainCredit.InvalidTransitionError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ite):
		return &InvalidTransitionError{Status: Status(ite.Status), Action: Action(ite.Action)}
	case errors.Is(err, domainCredit.ErrInvalidInput), errors.Is(err, domainPayment.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return err
}

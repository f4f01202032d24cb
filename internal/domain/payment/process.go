package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ProcessInput struct {
	MontoPagado           decimal.Decimal
	MetodoPago            Method
	ReferenciaTransaccion string
	Observaciones         string
}

// Process marks a pending installment as paid. fecha_pago and metodo_pago are
// set together here and nowhere else; mora_dias is fixed by the payment date.
// newRef is called only when no reference was supplied.
func (p *Payment) Process(in ProcessInput, now time.Time, newRef func() string) error {
	if !p.Pending() {
		return fmt.Errorf("%w: %s is %s", ErrAlreadyProcessed, p.PaymentID, p.Estado)
	}
	if !in.MontoPagado.IsPositive() {
		return fmt.Errorf("%w: monto_pagado must be positive", ErrInvalidInput)
	}
	if !in.MetodoPago.Valid() {
		return fmt.Errorf("%w: unknown metodo_pago %q", ErrInvalidInput, in.MetodoPago)
	}

	now = now.UTC()
	ref := strings.TrimSpace(in.ReferenciaTransaccion)
	if ref == "" {
		ref = newRef()
	}
	method := in.MetodoPago

	p.MontoPagado = in.MontoPagado.Round(2)
	p.FechaPago = &now
	p.MetodoPago = &method
	p.ReferenciaTransaccion = &ref
	if obs := strings.TrimSpace(in.Observaciones); obs != "" {
		p.Observaciones = &obs
	}
	p.MoraDias = daysLate(p.FechaVencimiento, now)
	p.Estado = StatusCompletado
	return nil
}

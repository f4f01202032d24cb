package payment

import (
	"errors"
	"time"

	"creditos-backend/internal/domain/credit"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("payment not found")
	ErrAlreadyProcessed = errors.New("payment already processed")
	ErrInvalidInput     = errors.New("invalid payment input")
)

type Status string

const (
	StatusPendiente  Status = "PENDIENTE"
	StatusCompletado Status = "COMPLETADO"
)

type Method string

const (
	MethodEfectivo       Method = "EFECTIVO"
	MethodTransferencia  Method = "TRANSFERENCIA"
	MethodTarjetaCredito Method = "TARJETA_CREDITO"
	MethodTarjetaDebito  Method = "TARJETA_DEBITO"
)

func (m Method) Valid() bool {
	switch m {
	case MethodEfectivo, MethodTransferencia, MethodTarjetaCredito, MethodTarjetaDebito:
		return true
	}
	return false
}

// Table: pagos. One row per installment of a disbursed credit.
type Payment struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PaymentID string `gorm:"column:payment_id;type:char(32);not null;uniqueIndex:ux_pagos_payment_id" json:"id"`
	TenantID  string `gorm:"column:tenant_id;type:char(32);index" json:"tenant_id,omitempty"`
	// FK to creditos.id (numeric)
	CreditID uint64 `gorm:"column:credit_id;not null;uniqueIndex:ux_pagos_credit_cuota" json:"-"`
	// Public credit id, denormalized for listings
	CreditoID   string `gorm:"column:credito_id;type:char(32);not null;index" json:"credito_id"`
	NumeroCuota int    `gorm:"column:numero_cuota;not null;uniqueIndex:ux_pagos_credit_cuota" json:"numero_cuota"`

	MontoProgramado decimal.Decimal `gorm:"column:monto_programado;type:decimal(18,2);not null" json:"monto_programado"`
	Capital         decimal.Decimal `gorm:"column:capital;type:decimal(18,2);not null" json:"capital"`
	Interes         decimal.Decimal `gorm:"column:interes;type:decimal(18,2);not null" json:"interes"`
	MontoPagado     decimal.Decimal `gorm:"column:monto_pagado;type:decimal(18,2);not null;default:0" json:"monto_pagado"`

	FechaVencimiento      time.Time  `gorm:"column:fecha_vencimiento;not null;index" json:"fecha_vencimiento"`
	FechaPago             *time.Time `gorm:"column:fecha_pago" json:"fecha_pago"`
	Estado                Status     `gorm:"column:estado;size:12;not null;index" json:"estado"`
	MetodoPago            *Method    `gorm:"column:metodo_pago;size:20" json:"metodo_pago"`
	ReferenciaTransaccion *string    `gorm:"column:referencia_transaccion;size:64" json:"referencia_transaccion"`
	Observaciones         *string    `gorm:"column:observaciones;type:text" json:"observaciones"`
	MoraDias              int        `gorm:"column:mora_dias;not null;default:0" json:"mora_dias"`

	Credito *credit.Credit `gorm:"foreignKey:CreditID;references:ID" json:"credito,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string { return "pagos" }

func (p *Payment) Pending() bool { return p.Estado == StatusPendiente }

// MoraDiasAt is the whole days past due at now for a pending installment,
// or the value fixed at payment time for a completed one.
func (p *Payment) MoraDiasAt(now time.Time) int {
	if !p.Pending() {
		return p.MoraDias
	}
	return daysLate(p.FechaVencimiento, now)
}

func (p *Payment) Overdue(now time.Time) bool {
	return p.Pending() && now.After(p.FechaVencimiento)
}

func daysLate(due, at time.Time) int {
	if !at.After(due) {
		return 0
	}
	return int(at.Sub(due) / (24 * time.Hour))
}

package credit

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusSolicitado   Status = "SOLICITADO"
	StatusEnEvaluacion Status = "EN_EVALUACION"
	StatusAprobado     Status = "APROBADO"
	StatusRechazado    Status = "RECHAZADO"
	StatusDesembolsado Status = "DESEMBOLSADO"
	// EN_MORA and CANCELADO are set by the system of record; no workflow action enters them.
	StatusEnMora    Status = "EN_MORA"
	StatusCancelado Status = "CANCELADO"
)

// AllStatuses lists every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusSolicitado, StatusEnEvaluacion, StatusAprobado, StatusRechazado,
		StatusDesembolsado, StatusEnMora, StatusCancelado,
	}
}

func (s Status) Valid() bool {
	for _, v := range AllStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

type Moneda string

const (
	MonedaUSD Moneda = "USD"
	MonedaEUR Moneda = "EUR"
	MonedaPEN Moneda = "PEN"
	MonedaCLP Moneda = "CLP"
	MonedaARS Moneda = "ARS"
)

func (m Moneda) Valid() bool {
	switch m {
	case MonedaUSD, MonedaEUR, MonedaPEN, MonedaCLP, MonedaARS:
		return true
	}
	return false
}

type Frecuencia string

const (
	FrecuenciaMensual   Frecuencia = "MENSUAL"
	FrecuenciaQuincenal Frecuencia = "QUINCENAL"
	FrecuenciaSemanal   Frecuencia = "SEMANAL"
)

func (f Frecuencia) Valid() bool {
	switch f {
	case FrecuenciaMensual, FrecuenciaQuincenal, FrecuenciaSemanal:
		return true
	}
	return false
}

type Sistema string

const (
	SistemaFrances   Sistema = "FRANCES"
	SistemaAleman    Sistema = "ALEMAN"
	SistemaAmericano Sistema = "AMERICANO"
)

func (s Sistema) Valid() bool {
	switch s {
	case SistemaFrances, SistemaAleman, SistemaAmericano:
		return true
	}
	return false
}

// Table: creditos
type Credit struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	CreditID string `gorm:"column:credit_id;type:char(32);not null;uniqueIndex:ux_creditos_credit_id" json:"id"`
	TenantID string `gorm:"column:tenant_id;type:char(32);index:idx_creditos_tenant_estado" json:"tenant_id,omitempty"`
	Codigo   string `gorm:"column:codigo;size:20;not null;uniqueIndex:ux_creditos_codigo" json:"codigo"`

	ClienteID string `gorm:"column:cliente_id;size:64" json:"cliente_id,omitempty"`
	Cliente   string `gorm:"column:cliente;size:160;not null" json:"cliente"`
	Producto  string `gorm:"column:producto;size:120" json:"producto"`

	Moneda     Moneda          `gorm:"column:moneda;size:3;not null" json:"moneda"`
	Monto      decimal.Decimal `gorm:"column:monto;type:decimal(18,2);not null" json:"monto"`
	TasaAnual  decimal.Decimal `gorm:"column:tasa_anual;type:decimal(7,4);not null" json:"tasa_anual"`
	PlazoMeses int             `gorm:"column:plazo_meses;not null" json:"plazo_meses"`
	Frecuencia Frecuencia      `gorm:"column:frecuencia;size:12;not null" json:"frecuencia"`
	Sistema    Sistema         `gorm:"column:sistema;size:12;not null" json:"sistema"`

	Estado          Status     `gorm:"column:estado;size:20;not null;index:idx_creditos_tenant_estado" json:"estado"`
	FechaSolicitud  time.Time  `gorm:"column:fecha_solicitud;not null;index" json:"fecha_solicitud"`
	FechaAprobacion *time.Time `gorm:"column:fecha_aprobacion" json:"fecha_aprobacion"`
	FechaDesembolso *time.Time `gorm:"column:fecha_desembolso" json:"fecha_desembolso"`
	FechaProgramada *time.Time `gorm:"column:fecha_programada" json:"fecha_programada"`

	SaldoCapital       decimal.Decimal `gorm:"column:saldo_capital;type:decimal(18,2);not null" json:"saldo_capital"`
	CuentaOrigenID     *string         `gorm:"column:cuenta_origen_id;size:64" json:"cuenta_origen_id"`
	ReferenciaBancaria *string         `gorm:"column:referencia_bancaria;size:64" json:"referencia_bancaria"`
	ConciliadoAt       *time.Time      `gorm:"column:conciliado_at" json:"conciliado_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Credit) TableName() string { return "creditos" }

// Clone returns a deep copy; pointer fields are not shared with c.
func (c Credit) Clone() Credit {
	out := c
	out.FechaAprobacion = cloneTime(c.FechaAprobacion)
	out.FechaDesembolso = cloneTime(c.FechaDesembolso)
	out.FechaProgramada = cloneTime(c.FechaProgramada)
	out.ConciliadoAt = cloneTime(c.ConciliadoAt)
	out.CuentaOrigenID = cloneString(c.CuentaOrigenID)
	out.ReferenciaBancaria = cloneString(c.ReferenciaBancaria)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

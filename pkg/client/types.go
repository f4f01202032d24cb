package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is a credit's workflow status as sent by the API.
type Status string

const (
	StatusSolicitado   Status = "SOLICITADO"
	StatusEnEvaluacion Status = "EN_EVALUACION"
	StatusAprobado     Status = "APROBADO"
	StatusRechazado    Status = "RECHAZADO"
	StatusDesembolsado Status = "DESEMBOLSADO"
	StatusEnMora       Status = "EN_MORA"
	StatusCancelado    Status = "CANCELADO"
)

// Action is a workflow action; its value is the last path segment of the
// transition endpoint.
type Action string

const (
	ActionEvaluar     Action = "evaluar"
	ActionAprobar     Action = "aprobar"
	ActionRechazar    Action = "rechazar"
	ActionProgramar   Action = "programar"
	ActionDesembolsar Action = "desembolsar"
	ActionConciliar   Action = "conciliar"
)

type PaymentStatus string

const (
	PaymentPendiente  PaymentStatus = "PENDIENTE"
	PaymentCompletado PaymentStatus = "COMPLETADO"
)

type PaymentMethod string

const (
	MethodEfectivo       PaymentMethod = "EFECTIVO"
	MethodTransferencia  PaymentMethod = "TRANSFERENCIA"
	MethodTarjetaCredito PaymentMethod = "TARJETA_CREDITO"
	MethodTarjetaDebito  PaymentMethod = "TARJETA_DEBITO"
)

// DefaultPaymentPageSize applies when a payment listing asks for no page size.
const DefaultPaymentPageSize = 20

type Credit struct {
	ID        string `json:"id"`
	TenantID  string `json:"tenant_id,omitempty"`
	Codigo    string `json:"codigo"`
	ClienteID string `json:"cliente_id,omitempty"`
	Cliente   string `json:"cliente"`
	Producto  string `json:"producto"`

	Moneda     string          `json:"moneda"`
	Monto      decimal.Decimal `json:"monto"`
	TasaAnual  decimal.Decimal `json:"tasa_anual"`
	PlazoMeses int             `json:"plazo_meses"`
	Frecuencia string          `json:"frecuencia"`
	Sistema    string          `json:"sistema"`

	Estado          Status     `json:"estado"`
	FechaSolicitud  time.Time  `json:"fecha_solicitud"`
	FechaAprobacion *time.Time `json:"fecha_aprobacion"`
	FechaDesembolso *time.Time `json:"fecha_desembolso"`
	FechaProgramada *time.Time `json:"fecha_programada"`

	SaldoCapital       decimal.Decimal `json:"saldo_capital"`
	CuentaOrigenID     *string         `json:"cuenta_origen_id"`
	ReferenciaBancaria *string         `json:"referencia_bancaria"`
	ConciliadoAt       *time.Time      `json:"conciliado_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransitionParams carries the inputs of programar, desembolsar and conciliar.
type TransitionParams struct {
	CuentaOrigenID     string
	FechaProgramada    *time.Time
	ReferenciaBancaria string
	FechaOperacion     *time.Time
}

// Cuota is one row of a credit's amortization schedule.
type Cuota struct {
	Numero  int             `json:"numero"`
	Fecha   time.Time       `json:"fecha"`
	Capital decimal.Decimal `json:"capital"`
	Interes decimal.Decimal `json:"interes"`
	Cuota   decimal.Decimal `json:"cuota"`
	Saldo   decimal.Decimal `json:"saldo"`
}

type HistoryEntry struct {
	ID             string    `json:"id"`
	Accion         string    `json:"accion"`
	EstadoAnterior string    `json:"estado_anterior"`
	EstadoNuevo    string    `json:"estado_nuevo"`
	Actor          string    `json:"actor,omitempty"`
	Detalle        string    `json:"detalle,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Payment is one installment of a disbursed credit.
type Payment struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id,omitempty"`
	CreditoID   string `json:"credito_id"`
	NumeroCuota int    `json:"numero_cuota"`

	MontoProgramado decimal.Decimal `json:"monto_programado"`
	Capital         decimal.Decimal `json:"capital"`
	Interes         decimal.Decimal `json:"interes"`
	MontoPagado     decimal.Decimal `json:"monto_pagado"`

	FechaVencimiento      time.Time      `json:"fecha_vencimiento"`
	FechaPago             *time.Time     `json:"fecha_pago"`
	Estado                PaymentStatus  `json:"estado"`
	MetodoPago            *PaymentMethod `json:"metodo_pago"`
	ReferenciaTransaccion *string        `json:"referencia_transaccion"`
	Observaciones         *string        `json:"observaciones"`
	MoraDias              int            `json:"mora_dias"`

	Credito *Credit `json:"credito,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentFilter holds the conjunctive payment listing filters. Empty fields do not filter.
type PaymentFilter struct {
	Search       string // codigo, cliente or referencia_transaccion
	Estado       string // PENDIENTE, COMPLETADO, ALL or empty
	CreditoID    string
	MetodoPago   string
	SoloVencidos bool
	SoloEnMora   bool
}

type Summary struct {
	TotalPendientes  int             `json:"total_pendientes"`
	TotalCompletados int             `json:"total_completados"`
	TotalVencidos    int             `json:"total_vencidos"`
	TotalEnMora      int             `json:"total_en_mora"`
	MontoPendiente   decimal.Decimal `json:"monto_pendiente"`
	MontoCobradoMes  decimal.Decimal `json:"monto_cobrado_mes"`
	CreditosActivos  int64           `json:"creditos_activos"`
}

// Page is one window of a listing. Count is the number of matches before pagination.
type Page[T any] struct {
	Results  []T   `json:"results"`
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

package credit

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateCreditInput struct {
	ClienteID  string
	Cliente    string
	Producto   string
	Moneda     string
	Monto      decimal.Decimal
	TasaAnual  decimal.Decimal // percentage
	PlazoMeses int
	Frecuencia string // defaults to MENSUAL
	Sistema    string // defaults to FRANCES
}

type ProgramarInput struct {
	CuentaOrigenID  string
	FechaProgramada time.Time
}

type ConciliarInput struct {
	ReferenciaBancaria string
	FechaOperacion     *time.Time // defaults to now
}

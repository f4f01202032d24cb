package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	domainCredit "creditos-backend/internal/domain/credit"

	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

type CreditFilter struct {
	Search string
	Estado string
	Moneda string
	Desde  *time.Time
	Hasta  *time.Time
}

type CreateCreditRequest struct {
	ClienteID  string          `json:"cliente_id,omitempty"`
	Cliente    string          `json:"cliente"`
	Producto   string          `json:"producto,omitempty"`
	Moneda     string          `json:"moneda"`
	Monto      decimal.Decimal `json:"monto"`
	TasaAnual  decimal.Decimal `json:"tasa_anual"`
	PlazoMeses int             `json:"plazo_meses"`
	Frecuencia string          `json:"frecuencia,omitempty"`
	Sistema    string          `json:"sistema,omitempty"`
}

type transitionBody struct {
	CuentaOrigenID     string `json:"cuenta_origen_id,omitempty"`
	FechaProgramada    string `json:"fecha_programada,omitempty"`
	ReferenciaBancaria string `json:"referencia_bancaria,omitempty"`
	FechaOperacion     string `json:"fecha_operacion,omitempty"`
}

// bodyOf sends dates as full RFC3339 UTC timestamps.
func bodyOf(p TransitionParams) transitionBody {
	b := transitionBody{CuentaOrigenID: p.CuentaOrigenID, ReferenciaBancaria: p.ReferenciaBancaria}
	if p.FechaProgramada != nil {
		b.FechaProgramada = p.FechaProgramada.UTC().Format(time.RFC3339)
	}
	if p.FechaOperacion != nil {
		b.FechaOperacion = p.FechaOperacion.UTC().Format(time.RFC3339)
	}
	return b
}

func (c *Client) ListCredits(ctx context.Context, f CreditFilter, page, pageSize int) (Page[Credit], error) {
	q := url.Values{}
	setIf(q, "search", f.Search)
	setIf(q, "estado", f.Estado)
	setIf(q, "moneda", f.Moneda)
	if f.Desde != nil {
		q.Set("desde", f.Desde.UTC().Format(dayLayout))
	}
	if f.Hasta != nil {
		q.Set("hasta", f.Hasta.UTC().Format(dayLayout))
	}
	pageQuery(q, page, pageSize)

	var out Page[Credit]
	err := c.do(ctx, http.MethodGet, "/api/creditos", q, nil, &out)
	return out, err
}

func (c *Client) GetCredit(ctx context.Context, id string) (Credit, error) {
	var out Credit
	err := c.do(ctx, http.MethodGet, "/api/creditos/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) CreateCredit(ctx context.Context, in CreateCreditRequest) (Credit, error) {
	var out Credit
	err := c.do(ctx, http.MethodPost, "/api/creditos", nil, in, &out)
	return out, err
}

// ChangeStatus applies a parameterless action. Illegal actions are rejected
// locally from current.Estado and never reach the server.
func (c *Client) ChangeStatus(ctx context.Context, current Credit, a Action) (Credit, error) {
	return c.transition(ctx, current, a, TransitionParams{})
}

func (c *Client) ProgramarDesembolso(ctx context.Context, current Credit, cuentaOrigenID string, fecha time.Time) (Credit, error) {
	return c.transition(ctx, current, ActionProgramar, TransitionParams{
		CuentaOrigenID:  cuentaOrigenID,
		FechaProgramada: &fecha,
	})
}

func (c *Client) Desembolsar(ctx context.Context, current Credit, referencia string) (Credit, error) {
	return c.transition(ctx, current, ActionDesembolsar, TransitionParams{ReferenciaBancaria: referencia})
}

func (c *Client) ConciliarDesembolso(ctx context.Context, current Credit, referencia string, fechaOperacion *time.Time) (Credit, error) {
	return c.transition(ctx, current, ActionConciliar, TransitionParams{
		ReferenciaBancaria: referencia,
		FechaOperacion:     fechaOperacion,
	})
}

func (c *Client) transition(ctx context.Context, current Credit, a Action, p TransitionParams) (Credit, error) {
	if err := domainCredit.Validate(domainCredit.Status(current.Estado), domainCredit.Action(a)); err != nil {
		return Credit{}, localError(err)
	}
	var out Credit
	path := "/api/creditos/" + url.PathEscape(current.ID) + "/" + string(a)
	err := c.do(ctx, http.MethodPost, path, nil, bodyOf(p), &out)
	return out, err
}

// TransitionOptimistic shows the locally applied result in h while the request
// is in flight, then commits the server's credit or reverts on any error.
func (c *Client) TransitionOptimistic(ctx context.Context, h *Holder[Credit], a Action, p TransitionParams) (Credit, error) {
	current := h.Confirmed()
	applied, err := domainCredit.Apply(creditToDomain(current), domainCredit.Action(a), paramsToDomain(p), c.now().UTC())
	if err != nil {
		return Credit{}, localError(err)
	}
	if err := h.Begin(creditFromDomain(applied)); err != nil {
		return Credit{}, err
	}
	confirmed, err := c.transition(ctx, current, a, p)
	if err != nil {
		h.Revert()
		return Credit{}, err
	}
	h.Commit(confirmed)
	return confirmed, nil
}

func (c *Client) GetCuotas(ctx context.Context, id string) ([]Cuota, error) {
	var out []Cuota
	err := c.do(ctx, http.MethodGet, "/api/creditos/"+url.PathEscape(id)+"/cuotas", nil, nil, &out)
	return out, err
}

func (c *Client) History(ctx context.Context, id string) ([]HistoryEntry, error) {
	var out []HistoryEntry
	err := c.do(ctx, http.MethodGet, "/api/creditos/"+url.PathEscape(id)+"/historial", nil, nil, &out)
	return out, err
}

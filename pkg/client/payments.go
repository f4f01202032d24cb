package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"creditos-backend/internal/domain/paging"
	domainPayment "creditos-backend/internal/domain/payment"

	"github.com/shopspring/decimal"
)

const (
	keyPaymentSnapshot = "cache.pagos."
	keySummary         = "cache.pagos.resumen."
)

// PaymentList is one listing page. Stale is set when it was built from the
// local snapshot because the server could not be reached.
type PaymentList struct {
	Page[Payment]
	Stale bool
}

type SummaryResult struct {
	Summary
	Stale bool
}

type ProcessPaymentRequest struct {
	MontoPagado           decimal.Decimal `json:"monto_pagado"`
	MetodoPago            PaymentMethod   `json:"metodo_pago"`
	ReferenciaTransaccion string          `json:"referencia_transaccion,omitempty"`
	Observaciones         string          `json:"observaciones,omitempty"`
}

func (c *Client) ListPayments(ctx context.Context, f PaymentFilter, page, pageSize int) (PaymentList, error) {
	q := url.Values{}
	setIf(q, "search", f.Search)
	setIf(q, "estado", f.Estado)
	setIf(q, "credito_id", f.CreditoID)
	setIf(q, "metodo_pago", f.MetodoPago)
	if f.SoloVencidos {
		q.Set("solo_vencidos", strconv.FormatBool(true))
	}
	if f.SoloEnMora {
		q.Set("solo_en_mora", strconv.FormatBool(true))
	}
	pageQuery(q, page, pageSize)

	var out Page[Payment]
	err := c.do(ctx, http.MethodGet, "/api/pagos", q, nil, &out)
	if err == nil {
		if err := c.remember(ctx, out.Results...); err != nil {
			return PaymentList{}, err
		}
		return PaymentList{Page: out}, nil
	}
	var te *TransportError
	if !errors.As(err, &te) {
		return PaymentList{}, err
	}

	snap, ok, serr := c.snapshot(ctx)
	if serr != nil || !ok {
		return PaymentList{}, err
	}
	nf, nerr := filterToDomain(f).Normalize()
	if nerr != nil {
		return PaymentList{}, localError(nerr)
	}
	req := paging.Request{Page: page, PageSize: pageSize}.Normalize(DefaultPaymentPageSize)
	sel := domainPayment.Select(paymentsToDomain(snap), nf, req, c.now())
	results := make([]Payment, len(sel.Results))
	for i, p := range sel.Results {
		results[i] = paymentFromDomain(p)
	}
	return PaymentList{
		Page:  Page[Payment]{Results: results, Count: sel.Count, Page: sel.Page, PageSize: sel.PageSize},
		Stale: true,
	}, nil
}

// PaymentSummary falls back to recomputing the summary from the local snapshot.
func (c *Client) PaymentSummary(ctx context.Context) (SummaryResult, error) {
	key, err := c.scoped(ctx, keySummary)
	if err != nil {
		return SummaryResult{}, err
	}
	var out Summary
	err = c.do(ctx, http.MethodGet, "/api/pagos/resumen", nil, nil, &out)
	if err == nil {
		if err := c.putJSON(ctx, key, out); err != nil {
			return SummaryResult{}, err
		}
		return SummaryResult{Summary: out}, nil
	}
	var te *TransportError
	if !errors.As(err, &te) {
		return SummaryResult{}, err
	}

	var last Summary
	haveLast, lerr := c.getJSON(ctx, key, &last)
	if lerr != nil {
		return SummaryResult{}, err
	}
	snap, haveSnap, serr := c.snapshot(ctx)
	if serr != nil {
		return SummaryResult{}, err
	}
	switch {
	case haveSnap:
		s := domainPayment.Summarize(paymentsToDomain(snap), last.CreditosActivos, c.now())
		return SummaryResult{Summary: summaryFromDomain(s), Stale: true}, nil
	case haveLast:
		return SummaryResult{Summary: last, Stale: true}, nil
	}
	return SummaryResult{}, err
}

// ProcessPayment has no fallback: a TransportError is returned as is.
func (c *Client) ProcessPayment(ctx context.Context, id string, in ProcessPaymentRequest) (Payment, error) {
	var out Payment
	path := "/api/pagos/" + url.PathEscape(id) + "/procesar"
	if err := c.do(ctx, http.MethodPost, path, nil, in, &out); err != nil {
		return Payment{}, err
	}
	if err := c.remember(ctx, out); err != nil {
		return Payment{}, err
	}
	return out, nil
}

// ---- snapshot ----

func (c *Client) scoped(ctx context.Context, prefix string) (string, error) {
	t, err := c.tenant(ctx)
	if err != nil {
		return "", fmt.Errorf("read tenant: %w", err)
	}
	if t == "" {
		t = "-"
	}
	return prefix + t, nil
}

func (c *Client) snapshot(ctx context.Context) ([]Payment, bool, error) {
	key, err := c.scoped(ctx, keyPaymentSnapshot)
	if err != nil {
		return nil, false, err
	}
	var ps []Payment
	ok, err := c.getJSON(ctx, key, &ps)
	return ps, ok, err
}

// remember merges ps into the snapshot, replacing rows with the same id.
func (c *Client) remember(ctx context.Context, ps ...Payment) error {
	key, err := c.scoped(ctx, keyPaymentSnapshot)
	if err != nil {
		return err
	}
	snap, _, err := c.snapshot(ctx)
	if err != nil {
		return err
	}
	idx := make(map[string]int, len(snap))
	for i, p := range snap {
		idx[p.ID] = i
	}
	for _, p := range ps {
		if i, ok := idx[p.ID]; ok {
			if p.Credito == nil {
				p.Credito = snap[i].Credito
			}
			snap[i] = p
			continue
		}
		idx[p.ID] = len(snap)
		snap = append(snap, p)
	}
	return c.putJSON(ctx, key, snap)
}

func (c *Client) getJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *Client) putJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key, string(b))
}

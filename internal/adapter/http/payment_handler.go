package http

import (
	"net/http"

	"creditos-backend/internal/domain/paging"
	domainPayment "creditos-backend/internal/domain/payment"
	"creditos-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	uc  *payment.Usecase
	log *zap.Logger
}

func NewPaymentHandler(uc *payment.Usecase, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, log: log.Named("http.payment")}
}

type listPaymentsReq struct {
	Search       string `query:"search"        validate:"max=120"`
	Estado       string `query:"estado"`
	CreditoID    string `query:"credito_id"    validate:"omitempty,hex32"`
	MetodoPago   string `query:"metodo_pago"`
	SoloVencidos bool   `query:"solo_vencidos"`
	SoloEnMora   bool   `query:"solo_en_mora"`
	Page         int    `query:"page"          validate:"gte=0,lte=1000000"`
	PageSize     int    `query:"page_size"     validate:"gte=0,lte=100"`
}

type processPaymentReq struct {
	MontoPagado           decimal.Decimal `json:"monto_pagado"           validate:"gt=0,dec2"`
	MetodoPago            string          `json:"metodo_pago"            validate:"required,oneof=EFECTIVO TRANSFERENCIA TARJETA_CREDITO TARJETA_DEBITO"`
	ReferenciaTransaccion string          `json:"referencia_transaccion" validate:"max=64"`
	Observaciones         string          `json:"observaciones"          validate:"max=500"`
}

func (h *PaymentHandler) List(c echo.Context) error {
	var req listPaymentsReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid query")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	page, err := h.uc.List(c.Request().Context(), domainPayment.Filter{
		Search:       req.Search,
		Estado:       req.Estado,
		CreditoID:    req.CreditoID,
		MetodoPago:   req.MetodoPago,
		SoloVencidos: req.SoloVencidos,
		SoloEnMora:   req.SoloEnMora,
	}, paging.Request{Page: req.Page, PageSize: req.PageSize})
	if err != nil {
		return domainError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *PaymentHandler) Summary(c echo.Context) error {
	s, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return domainError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *PaymentHandler) Process(c echo.Context) error {
	var req processPaymentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	p, err := h.uc.Process(c.Request().Context(), c.Param("id"), domainPayment.ProcessInput{
		MontoPagado:           req.MontoPagado,
		MetodoPago:            domainPayment.Method(req.MetodoPago),
		ReferenciaTransaccion: req.ReferenciaTransaccion,
		Observaciones:         req.Observaciones,
	}, actorOf(c))
	if err != nil {
		return domainError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}

// ForCredit lists a credit's installments by numero_cuota.
func (h *PaymentHandler) ForCredit(c echo.Context) error {
	ps, err := h.uc.ForCredit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ps)
}

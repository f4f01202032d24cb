package http

import (
	"net/http"
	"strings"
	"time"

	domainCredit "creditos-backend/internal/domain/credit"
	"creditos-backend/internal/domain/paging"
	"creditos-backend/internal/usecase/credit"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// HeaderActor names the operator recorded in the audit trail.
const HeaderActor = "X-User-Id"

const defaultActor = "api"

type CreditHandler struct {
	uc  *credit.Usecase
	log *zap.Logger
}

func NewCreditHandler(uc *credit.Usecase, log *zap.Logger) *CreditHandler {
	return &CreditHandler{uc: uc, log: log.Named("http.credit")}
}

type listCreditsReq struct {
	Search   string `query:"search"    validate:"max=120"`
	Estado   string `query:"estado"`
	Moneda   string `query:"moneda"`
	Desde    string `query:"desde"`
	Hasta    string `query:"hasta"`
	Page     int    `query:"page"      validate:"gte=0,lte=1000000"`
	PageSize int    `query:"page_size" validate:"gte=0,lte=100"`
}

type createCreditReq struct {
	ClienteID  string          `json:"cliente_id"  validate:"max=64"`
	Cliente    string          `json:"cliente"     validate:"required,max=160"`
	Producto   string          `json:"producto"    validate:"max=80"`
	Moneda     string          `json:"moneda"      validate:"required,len=3"`
	Monto      decimal.Decimal `json:"monto"       validate:"gt=0,dec2"`
	TasaAnual  decimal.Decimal `json:"tasa_anual"  validate:"gte=0,lte=1000"`
	PlazoMeses int             `json:"plazo_meses" validate:"gte=1,lte=480"`
	Frecuencia string          `json:"frecuencia"`
	Sistema    string          `json:"sistema"`
}

// transitionReq is the optional body of POST /creditos/:id/:accion.
type transitionReq struct {
	CuentaOrigenID     string `json:"cuenta_origen_id"    validate:"max=64"`
	FechaProgramada    string `json:"fecha_programada"`
	ReferenciaBancaria string `json:"referencia_bancaria" validate:"max=64"`
	FechaOperacion     string `json:"fecha_operacion"`
}

func (h *CreditHandler) List(c echo.Context) error {
	var req listCreditsReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid query")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	f := domainCredit.ListFilter{Search: req.Search, Estado: req.Estado, Moneda: req.Moneda}
	var err error
	if f.Desde, err = optionalDay(req.Desde); err != nil {
		return domainError(c, h.log, err)
	}
	if f.Hasta, err = optionalDay(req.Hasta); err != nil {
		return domainError(c, h.log, err)
	}
	page, err := h.uc.List(c.Request().Context(), f, paging.Request{Page: req.Page, PageSize: req.PageSize})
	if err != nil {
		return domainError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CreditHandler) Create(c echo.Context) error {
	var req createCreditReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	cr, err := h.uc.Create(c.Request().Context(), credit.CreateCreditInput(req))
	if err != nil {
		return domainError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, cr)
}

func (h *CreditHandler) Get(c echo.Context) error {
	cr, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, cr)
}

func (h *CreditHandler) Transition(c echo.Context) error {
	action, err := domainCredit.ParseAction(c.Param("accion"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: codeNotFound})
	}
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	ctx := c.Request().Context()
	creditID := c.Param("id")
	actor := actorOf(c)

	var cr *domainCredit.Credit
	switch action {
	case domainCredit.ActionProgramar:
		var fp time.Time
		if req.FechaProgramada != "" {
			if fp, err = domainCredit.ParseDay(req.FechaProgramada); err != nil {
				return domainError(c, h.log, err)
			}
		}
		cr, err = h.uc.ProgramarDesembolso(ctx, creditID, credit.ProgramarInput{
			CuentaOrigenID:  req.CuentaOrigenID,
			FechaProgramada: fp,
		}, actor)
	case domainCredit.ActionDesembolsar:
		cr, err = h.uc.Desembolsar(ctx, creditID, req.ReferenciaBancaria, actor)
	case domainCredit.ActionConciliar:
		var fo *time.Time
		if fo, err = optionalDay(req.FechaOperacion); err != nil {
			return domainError(c, h.log, err)
		}
		cr, err = h.uc.ConciliarDesembolso(ctx, creditID, credit.ConciliarInput{
			ReferenciaBancaria: req.ReferenciaBancaria,
			FechaOperacion:     fo,
		}, actor)
	default:
		cr, err = h.uc.ChangeStatus(ctx, creditID, action, actor)
	}
	if err != nil {
		return domainError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, cr)
}

func (h *CreditHandler) Cuotas(c echo.Context) error {
	cuotas, err := h.uc.GetCuotas(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, cuotas)
}

func (h *CreditHandler) History(c echo.Context) error {
	entries, err := h.uc.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func optionalDay(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := domainCredit.ParseDay(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func actorOf(c echo.Context) string {
	if a := strings.TrimSpace(c.Request().Header.Get(HeaderActor)); a != "" {
		return a
	}
	return defaultActor
}

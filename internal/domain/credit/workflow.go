package credit

import (
	"fmt"
	"strings"
	"time"
)

type Action string

const (
	ActionEvaluar     Action = "evaluar"
	ActionAprobar     Action = "aprobar"
	ActionRechazar    Action = "rechazar"
	ActionProgramar   Action = "programar"
	ActionDesembolsar Action = "desembolsar"
	ActionConciliar   Action = "conciliar"
)

func AllActions() []Action {
	return []Action{
		ActionEvaluar, ActionAprobar, ActionRechazar,
		ActionProgramar, ActionDesembolsar, ActionConciliar,
	}
}

// ParseAction maps a raw action name (case-insensitive) to an Action.
func ParseAction(raw string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(raw)))
	for _, v := range AllActions() {
		if a == v {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown action %q", ErrInvalidInput, raw)
}

// Next is the workflow table: the status reached by applying a from s,
// and whether the pair is legal at all.
func Next(s Status, a Action) (Status, bool) {
	switch a {
	case ActionEvaluar:
		if s == StatusSolicitado {
			return StatusEnEvaluacion, true
		}
	case ActionAprobar:
		if s == StatusEnEvaluacion {
			return StatusAprobado, true
		}
	case ActionRechazar:
		if s == StatusEnEvaluacion {
			return StatusRechazado, true
		}
	case ActionProgramar:
		if s == StatusAprobado {
			return StatusAprobado, true
		}
	case ActionDesembolsar:
		if s == StatusAprobado {
			return StatusDesembolsado, true
		}
	case ActionConciliar:
		if s == StatusDesembolsado {
			return StatusDesembolsado, true
		}
	}
	return s, false
}

// Validate returns an *InvalidTransitionError when a is not legal from s.
func Validate(s Status, a Action) error {
	if _, ok := Next(s, a); !ok {
		return &InvalidTransitionError{Status: s, Action: a}
	}
	return nil
}

// AllowedActions lists the actions legal from s, in AllActions order.
func AllowedActions(s Status) []Action {
	var out []Action
	for _, a := range AllActions() {
		if _, ok := Next(s, a); ok {
			out = append(out, a)
		}
	}
	return out
}

// Params carries the action-specific inputs. Fields not used by an action are ignored.
type Params struct {
	CuentaOrigenID     string
	FechaProgramada    *time.Time
	ReferenciaBancaria string
	FechaOperacion     *time.Time
}

// Apply validates a against c.Estado and returns the resulting credit.
// c itself is never modified; on error the zero Credit is returned.
func Apply(c Credit, a Action, p Params, now time.Time) (Credit, error) {
	next, ok := Next(c.Estado, a)
	if !ok {
		return Credit{}, &InvalidTransitionError{Status: c.Estado, Action: a}
	}
	now = now.UTC()
	out := c.Clone()

	switch a {
	case ActionAprobar:
		out.FechaAprobacion = &now
	case ActionProgramar:
		cuenta := strings.TrimSpace(p.CuentaOrigenID)
		if cuenta == "" || p.FechaProgramada == nil {
			return Credit{}, fmt.Errorf("%w: programar requires cuenta_origen_id and fecha_programada", ErrInvalidInput)
		}
		fp := p.FechaProgramada.UTC()
		out.CuentaOrigenID = &cuenta
		out.FechaProgramada = &fp
	case ActionDesembolsar:
		out.FechaDesembolso = &now
		out.SaldoCapital = c.Monto
		if ref := strings.TrimSpace(p.ReferenciaBancaria); ref != "" {
			out.ReferenciaBancaria = &ref
		}
	case ActionConciliar:
		ref := strings.TrimSpace(p.ReferenciaBancaria)
		if ref == "" {
			return Credit{}, fmt.Errorf("%w: conciliar requires referencia_bancaria", ErrInvalidInput)
		}
		at := now
		if p.FechaOperacion != nil {
			at = p.FechaOperacion.UTC()
		}
		out.ReferenciaBancaria = &ref
		out.ConciliadoAt = &at
	}

	out.Estado = next
	return out, nil
}

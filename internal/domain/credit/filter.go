package credit

import (
	"fmt"
	"strings"
	"time"
)

// FilterAll disables the estado / moneda filters.
const FilterAll = "ALL"

const DefaultPageSize = 10

// ListFilter holds the conjunctive listing filters. Empty fields do not filter.
type ListFilter struct {
	TenantID string
	Search   string // case-insensitive substring of codigo or cliente
	Estado   string // a Status, FilterAll or empty
	Moneda   string // a Moneda, FilterAll or empty
	Desde    *time.Time
	Hasta    *time.Time // inclusive of the whole day
}

// Normalize trims the filter, folds ALL into "no filter" and rejects unknown values.
func (f ListFilter) Normalize() (ListFilter, error) {
	f.Search = strings.TrimSpace(f.Search)
	f.Estado = strings.ToUpper(strings.TrimSpace(f.Estado))
	f.Moneda = strings.ToUpper(strings.TrimSpace(f.Moneda))
	if f.Estado == FilterAll {
		f.Estado = ""
	}
	if f.Moneda == FilterAll {
		f.Moneda = ""
	}
	if f.Estado != "" && !Status(f.Estado).Valid() {
		return f, fmt.Errorf("%w: unknown estado %q", ErrInvalidInput, f.Estado)
	}
	if f.Moneda != "" && !Moneda(f.Moneda).Valid() {
		return f, fmt.Errorf("%w: unknown moneda %q", ErrInvalidInput, f.Moneda)
	}
	if f.Desde != nil && f.Hasta != nil && f.Hasta.Before(*f.Desde) {
		return f, fmt.Errorf("%w: hasta before desde", ErrInvalidInput)
	}
	return f, nil
}

// Bounds returns the half-open [from, to) range on fecha_solicitud.
// from is the start of Desde's day, to is the start of the day after Hasta.
func (f ListFilter) Bounds() (from, to *time.Time) {
	if f.Desde != nil {
		d := startOfDay(*f.Desde)
		from = &d
	}
	if f.Hasta != nil {
		h := startOfDay(*f.Hasta).AddDate(0, 0, 1)
		to = &h
	}
	return from, to
}

// ParseDay accepts YYYY-MM-DD or RFC3339.
func ParseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidInput, raw)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

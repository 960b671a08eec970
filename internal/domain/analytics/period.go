package analytics

import (
	"fmt"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/domain"
)

const dateLayout = "2006-01-02"

// Claves de período aceptadas por los reportes.
const (
	PeriodToday  = "today"
	Period7d     = "7d"
	Period30d    = "30d"
	Period90d    = "90d"
	Period1y     = "1y"
	PeriodAll    = "all"
	PeriodCustom = "custom"
)

// Period rango de fechas cerrado [Start, End] usado para filtrar colecciones.
// Si All es true no se filtra.
type Period struct {
	Key   string
	Label string
	Start time.Time
	End   time.Time
	All   bool
}

// Contains indica si t cae dentro del período (extremos inclusivos).
func (p Period) Contains(t time.Time) bool {
	if p.All {
		return true
	}
	return !t.Before(p.Start) && !t.After(p.End)
}

// ResolvePeriod traduce una clave de período (o fechas explícitas YYYY-MM-DD) al rango concreto.
// Las fechas explícitas tienen prioridad sobre la clave. key vacío usa defaultKey.
func ResolvePeriod(key, startStr, endStr, defaultKey string, now time.Time) (Period, error) {
	if startStr != "" || endStr != "" {
		return customPeriod(startStr, endStr, now)
	}
	if key == "" {
		key = defaultKey
	}

	switch key {
	case PeriodToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return Period{Key: key, Label: "Today", Start: start, End: now}, nil
	case Period7d:
		return Period{Key: key, Label: "Last 7 days", Start: now.AddDate(0, 0, -7), End: now}, nil
	case Period30d:
		return Period{Key: key, Label: "Last 30 days", Start: now.AddDate(0, 0, -30), End: now}, nil
	case Period90d:
		return Period{Key: key, Label: "Last 90 days", Start: now.AddDate(0, 0, -90), End: now}, nil
	case Period1y:
		return Period{Key: key, Label: "Last 12 months", Start: now.AddDate(-1, 0, 0), End: now}, nil
	case PeriodAll:
		return Period{Key: key, Label: "All time", All: true}, nil
	}
	return Period{}, fmt.Errorf("%w: período desconocido %q", domain.ErrInvalidInput, key)
}

// customPeriod construye el rango explícito; el día final se incluye completo.
func customPeriod(startStr, endStr string, now time.Time) (Period, error) {
	p := Period{Key: PeriodCustom}

	if startStr == "" {
		p.Start = time.Time{}
	} else {
		start, err := time.ParseInLocation(dateLayout, startStr, now.Location())
		if err != nil {
			return Period{}, fmt.Errorf("%w: start_date inválido: %v", domain.ErrInvalidInput, err)
		}
		p.Start = start
	}

	if endStr == "" {
		p.End = now
	} else {
		end, err := time.ParseInLocation(dateLayout, endStr, now.Location())
		if err != nil {
			return Period{}, fmt.Errorf("%w: end_date inválido: %v", domain.ErrInvalidInput, err)
		}
		p.End = end.Add(24*time.Hour - time.Nanosecond)
	}

	if p.Start.After(p.End) {
		return Period{}, fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidInput)
	}

	from := "beginning"
	if !p.Start.IsZero() {
		from = p.Start.Format(dateLayout)
	}
	p.Label = fmt.Sprintf("%s to %s", from, p.End.Format(dateLayout))
	return p, nil
}

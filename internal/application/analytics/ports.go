package analytics

import "github.com/jhoicas/Backoffice-api/internal/domain/analytics"

// ReportRenderer genera el archivo de exportación de KPIs en un formato concreto.
type ReportRenderer interface {
	Format() string // csv, xlsx, pdf
	ContentType() string
	Render(r analytics.KPIReport) ([]byte, error)
}

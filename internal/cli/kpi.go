package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	appanalytics "github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/report"
)

func newKPICommand(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Reporte de KPIs",
	}
	cmd.AddCommand(newKPIExportCommand(env))
	return cmd
}

func newKPIExportCommand(env Env) *cobra.Command {
	var (
		req    dto.KPIReportRequest
		outDir string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Genera el archivo de exportación (csv, xlsx o pdf)",
		Example: `  backofficectl kpi export --format xlsx --range 90d
  backofficectl kpi export --start-date 2026-01-01 --end-date 2026-03-31 --out q1.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, src, err := env.source()
			if err != nil {
				return err
			}
			uc := appanalytics.NewKPIUseCase(src, env.logger(),
				report.NewCSVRenderer(), report.NewXLSXRenderer(), report.NewPDFRenderer())
			file, err := uc.Export(cmd.Context(), req)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = filepath.Join(outDir, file.Filename)
			}
			if err := os.WriteFile(path, file.Content, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", path, len(file.Content))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Format, "format", "csv", "csv, xlsx o pdf")
	f.StringVar(&req.Range, "range", "", "today, 7d, 30d, 90d, 1y o all (30d por defecto)")
	f.StringVar(&req.StartDate, "start-date", "", "Inicio YYYY-MM-DD (prioridad sobre --range)")
	f.StringVar(&req.EndDate, "end-date", "", "Fin YYYY-MM-DD, inclusive")
	f.StringVar(&req.KPIs, "kpis", "", "KPIs de la tabla de tendencias, separados por coma")
	f.StringVar(&outDir, "dir", ".", "Directorio destino con el nombre sugerido")
	f.StringVar(&out, "out", "", "Ruta exacta del archivo (ignora --dir)")
	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	appanalytics "github.com/jhoicas/Backoffice-api/internal/application/analytics"
)

func newAlertsCommand(env Env) *cobra.Command {
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Muestra las alertas operativas calculadas con el backend actual",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, src, err := env.source()
			if err != nil {
				return err
			}
			out, err := appanalytics.NewAlertsUseCase(src, env.logger()).GetAlerts(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if summaryOnly {
				s := out.Summary
				fmt.Fprintf(w, "low_stock\t%d\n", s.LowStock)
				fmt.Fprintf(w, "overstock\t%d\n", s.Overstock)
				fmt.Fprintf(w, "delayed_orders\t%d\n", s.DelayedOrders)
				fmt.Fprintf(w, "demand_spikes\t%d\n", s.DemandSpikes)
				fmt.Fprintf(w, "stuck_returns\t%d\n", s.StuckReturns)
				fmt.Fprintf(w, "total\t%d\n", s.Total)
				for name, st := range out.Sources {
					if !st.OK {
						fmt.Fprintf(w, "fuente %s no disponible: %s\n", name, st.Error)
					}
				}
				return nil
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "Solo los conteos por categoría, en vez del JSON completo")
	return cmd
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Backoffice-api/pkg/jwt"
)

// newTokenCommand emite un token firmado con JWT_SECRET para probar la API en local.
func newTokenCommand(env Env) *cobra.Command {
	var (
		id  jwt.Identity
		ttl time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT de servicio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := env.LoadConfig()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			if ttl <= 0 {
				ttl = time.Duration(cfg.JWT.Expiration) * time.Minute
			}
			tok, err := jwt.Issue(jwt.Options{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer}, id, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&id.UserID, "user", "backofficectl", "user_id del token")
	f.StringVar(&id.CompanyID, "company", "", "company_id del token")
	f.StringVar(&id.Role, "role", "admin", "admin, bodeguero o vendedor")
	f.DurationVar(&ttl, "ttl", 0, "Vigencia (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}

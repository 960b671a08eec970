// Package cli comandos de backofficectl: consultas y exportaciones contra el backend
// sin levantar el servidor HTTP.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/upstream"
	"github.com/jhoicas/Backoffice-api/pkg/config"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// Env dependencias de los comandos; los tests reemplazan Source.
type Env struct {
	LoadConfig func() (*config.Config, error)
	Source     func(cfg *config.Config) (repository.BackofficeSource, error)
	Out        io.Writer
	Log        *logger.Logger
}

// DefaultEnv configuración desde env vars y lectura directa del backend (sin caché).
func DefaultEnv() Env {
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: os.Stderr})
	return Env{
		LoadConfig: config.Load,
		Source: func(cfg *config.Config) (repository.BackofficeSource, error) {
			client, err := upstream.NewClient(upstream.Config{
				BaseURL:  cfg.Upstream.BaseURL,
				Token:    cfg.Upstream.Token,
				Timeout:  cfg.Upstream.Timeout,
				PageSize: cfg.Upstream.PageSize,
				Log:      log.Component("upstream"),
			}, nil)
			if err != nil {
				return nil, err
			}
			return upstream.NewSource(client), nil
		},
		Out: os.Stdout,
		Log: log,
	}
}

// NewRootCommand arma el árbol de comandos.
func NewRootCommand(env Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "backofficectl",
		Short: "Herramientas de línea de comandos del backoffice",
		Long: `backofficectl consulta el backend de inventario con las mismas reglas
que la API del backoffice: alertas, reporte de KPIs y su exportación,
y emisión de tokens de servicio para pruebas.`,
		SilenceUsage: true,
	}
	root.SetOut(env.Out)
	root.AddCommand(newAlertsCommand(env), newKPICommand(env), newTokenCommand(env))
	return root
}

// Execute ejecuta backofficectl con las dependencias por defecto.
func Execute() {
	if err := NewRootCommand(DefaultEnv()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (env Env) source() (*config.Config, repository.BackofficeSource, error) {
	cfg, err := env.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	src, err := env.Source(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("cliente del backend: %w", err)
	}
	return cfg, src, nil
}

func (env Env) logger() *logger.Logger {
	if env.Log == nil {
		return logger.Nop()
	}
	return env.Log
}

// Command sipp-admin agrupa las tareas de operación sobre la base de datos de SiPP:
// migraciones, administrador inicial e informe mensual bajo demanda.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/sipp-api/internal/application/auth"
	"github.com/jhoicas/sipp-api/internal/application/reporting"
	"github.com/jhoicas/sipp-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/sipp-api/internal/infrastructure/pdf"
	"github.com/jhoicas/sipp-api/internal/infrastructure/postgres"
	"github.com/jhoicas/sipp-api/pkg/config"
	"github.com/jhoicas/sipp-api/pkg/logger"
)

const (
	Version = "0.1.0"
	appName = "sipp-admin"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Tareas de administración de SiPP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Nivel de log (debug, info, warn, error)")

	cmd.AddCommand(migrateCmd(&logLevel))
	cmd.AddCommand(seedAdminCmd(&logLevel))
	cmd.AddCommand(monthlyReportCmd(&logLevel))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func migrateCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), *logLevel, func(ctx context.Context, _ *config.Config, pool *pgxpool.Pool, log *logger.Logger) error {
				applied, err := postgres.Migrate(ctx, pool)
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					log.Info().Msg("base de datos al día")
					return nil
				}
				log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
				return nil
			})
		},
	}
}

func seedAdminCmd(logLevel *string) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Crea el administrador inicial si no existe",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), *logLevel, func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, log *logger.Logger) error {
				repos := postgres.NewRepositories(pool)
				uc := auth.NewAuthUseCase(repos.Users, repos.Sessions, auth.JWTConfig{
					Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
				})
				admin, created, err := uc.EnsureAdmin(ctx, email, password, name)
				if err != nil {
					return err
				}
				if !created {
					log.Warn().Str("email", admin.Email).Msg("el usuario ya existe, no se modifica")
					return nil
				}
				log.Info().Str("id", admin.ID).Str("email", admin.Email).Msg("administrador creado")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email del administrador")
	cmd.Flags().StringVar(&password, "password", "", "Contraseña (mínimo 8 caracteres)")
	cmd.Flags().StringVar(&name, "name", "Administrador", "Nombre completo")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func monthlyReportCmd(logLevel *string) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "monthly-report",
		Short: "Genera el informe mensual de pedidos (por defecto el mes anterior)",
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := parseMonth(month, time.Now())
			if err != nil {
				return err
			}
			return withPool(cmd.Context(), *logLevel, func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, log *logger.Logger) error {
				repos := postgres.NewRepositories(pool)
				uc := reporting.NewReportUseCase(reporting.Repositories{
					Orders:   repos.Orders,
					Projects: repos.Projects,
					Users:    repos.Users,
					Acts:     repos.Acts,
					Reports:  repos.Reports,
				}, infrapdf.NewRenderer(), excel.NewWorkbook(), nil, log, cfg.Reports.Institution)

				report, created, err := uc.GenerateMonthly(ctx, period)
				if err != nil {
					return err
				}
				log.Info().
					Str("id", report.ID).
					Str("period", report.PeriodStart.Format("2006-01")).
					Int("orders", report.OrderCount).
					Bool("created", created).
					Msg("informe mensual")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Mes a generar en formato YYYY-MM")
	return cmd
}

// withPool carga la configuración, abre el pool y ejecuta fn.
func withPool(ctx context.Context, logLevel string, fn func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, log *logger.Logger) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: logLevel, Output: os.Stderr}).Component(appName)

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, cfg, pool, log)
}

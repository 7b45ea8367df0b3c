package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/sipp-api/docs"
	appanalytics "github.com/jhoicas/sipp-api/internal/application/analytics"
	"github.com/jhoicas/sipp-api/internal/application/auth"
	"github.com/jhoicas/sipp-api/internal/application/ordering"
	"github.com/jhoicas/sipp-api/internal/application/reporting"
	"github.com/jhoicas/sipp-api/internal/application/usecase"
	"github.com/jhoicas/sipp-api/internal/infrastructure/excel"
	"github.com/jhoicas/sipp-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/sipp-api/internal/infrastructure/pdf"
	"github.com/jhoicas/sipp-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/sipp-api/internal/interfaces/http"
	"github.com/jhoicas/sipp-api/pkg/config"
	"github.com/jhoicas/sipp-api/pkg/logger"
)

// @title						SiPP API
// @version					1.0
// @description				Sistema Integral de Pedidos para Proyectos.
// @BasePath					/api
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	recorder := metrics.NewRecorder()
	workbook := excel.NewWorkbook()

	authUC := auth.NewAuthUseCase(store.users, store.sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Email != "" {
		admin, created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("administrador inicial")
		}
		if created {
			log.Info().Str("email", admin.Email).Msg("administrador inicial creado")
		}
	}

	orderUC := ordering.NewOrderUseCase(store.tx, store.orders, store.catalogs, recorder)
	reportUC := reporting.NewReportUseCase(reporting.Repositories{
		Orders:   store.orders,
		Projects: store.projects,
		Users:    store.users,
		Acts:     store.acts,
		Reports:  store.reports,
	}, infrapdf.NewRenderer(), workbook, recorder, log, cfg.Reports.Institution)

	var jobs *scheduler.Scheduler
	if cfg.Reports.SchedulerEnabled {
		jobs = scheduler.New(log, 5*time.Minute)
		if err := jobs.AddMonthlyReport(cfg.Reports.MonthlyCron, reportUC); err != nil {
			log.Fatal().Err(err).Msg("programar informe mensual")
		}
		jobs.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SiPP API",
	}))
	app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})
	app.Get("/metrics", recorder.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(store.users, store.sessions),
		ProjectUC:   usecase.NewProjectUseCase(store.projects),
		CatalogUC:   usecase.NewCatalogUseCase(store.catalogs, workbook),
		MessageUC:   usecase.NewMessageUseCase(store.messages, store.users),
		OrderUC:     orderUC,
		ReportUC:    reportUC,
		DashboardUC: appanalytics.NewDashboardUseCase(store.projects, store.orders),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if jobs != nil {
		jobs.Stop(shutdownCtx)
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

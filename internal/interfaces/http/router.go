package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/sipp-api/internal/application/analytics"
	"github.com/jhoicas/sipp-api/internal/application/auth"
	"github.com/jhoicas/sipp-api/internal/application/ordering"
	"github.com/jhoicas/sipp-api/internal/application/reporting"
	"github.com/jhoicas/sipp-api/internal/application/usecase"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProjectUC   *usecase.ProjectUseCase
	CatalogUC   *usecase.CatalogUseCase
	MessageUC   *usecase.MessageUseCase
	OrderUC     *ordering.OrderUseCase
	ReportUC    *reporting.ReportUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (Bearer Token + sesión activa)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	adminOnly := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleComercial)

	protected.Post("/auth/logout", authHandler.Logout)

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/me", userHandler.Me)
	protected.Put("/me", userHandler.UpdateMe)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.Get)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)
	projects.Get("/:id/budget", projectHandler.Budget)

	catalogs := protected.Group("/catalogs")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs.Get("/", catalogHandler.List)
	catalogs.Get("/search", catalogHandler.Search)
	catalogs.Get("/:id", catalogHandler.Get)
	catalogs.Post("/", staff, catalogHandler.Upsert)
	catalogs.Post("/import", staff, catalogHandler.Import)
	catalogs.Delete("/:id", adminOnly, catalogHandler.Delete)

	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Patch("/:id/status", staff, orderHandler.UpdateStatus)
	orders.Patch("/:id/progress", staff, orderHandler.UpdateProgress)
	orders.Post("/:id/conformity-act", reportHandler.CreateConformityAct)
	orders.Get("/:id/conformity-act", reportHandler.ConformityAct)

	reports := protected.Group("/reports")
	reports.Get("/orders.pdf", reportHandler.OrdersPDF)
	reports.Get("/orders.xlsx", reportHandler.OrdersSheet)
	reports.Get("/pending-conformity", reportHandler.PendingConformity)
	reports.Get("/monthly", staff, reportHandler.ListMonthly)
	reports.Get("/monthly/:id", staff, reportHandler.MonthlyFile)

	messages := protected.Group("/messages")
	messageHandler := NewMessageHandler(deps.MessageUC)
	messages.Post("/", messageHandler.Send)
	messages.Get("/", messageHandler.Inbox)
	messages.Get("/sent", messageHandler.Sent)
	messages.Get("/unread-count", messageHandler.UnreadCount)
	messages.Patch("/:id/read", messageHandler.MarkRead)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}

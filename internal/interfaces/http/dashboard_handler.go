package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/sipp-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary resumen de presupuesto y pedidos.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (proyectos, presupuesto total y gastado, porcentaje,
// pedidos por estado, gasto por categoría y por mes de los últimos 12 meses).
// El usuario ve sus datos; admin ve todo.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/application/reporting"
)

const queryDateLayout = "2006-01-02"

// ReportHandler descargas de informes, actas y hojas de cálculo.
type ReportHandler struct {
	uc *reporting.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ordersQuery lee from/to (YYYY-MM-DD), project_id y status.
func ordersQuery(c *fiber.Ctx) (reporting.OrdersQuery, bool) {
	q := reporting.OrdersQuery{ProjectID: c.Query("project_id"), Status: c.Query("status")}
	for key, dst := range map[string]**time.Time{"from": &q.From, "to": &q.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return q, false
		}
		*dst = &t
	}
	return q, true
}

// sendFile escribe el documento como adjunto con las cabeceras de informe.
func sendFile(c *fiber.Ctx, f *reporting.File) error {
	c.Attachment(f.Filename)
	c.Set(fiber.HeaderContentType, f.ContentType)
	if f.Empty {
		c.Set("X-Report-Empty", "true")
	}
	if f.Fallback {
		c.Set("X-Report-Fallback", "true")
	}
	return c.Send(f.Content)
}

// OrdersPDF godoc
// @Summary      Informe de pedidos en PDF
// @Description  Sin pedidos que cumplan los filtros devuelve un PDF con aviso y la cabecera X-Report-Empty: true.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        project_id  query  string  false  "Proyecto"
// @Param        status      query  string  false  "Estado"
// @Success      200         {file}    file
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/reports/orders.pdf [get]
func (h *ReportHandler) OrdersPDF(c *fiber.Ctx) error {
	q, ok := ordersQuery(c)
	if !ok {
		return badRequest(c, "INVALID_DATE", "from y to deben tener formato YYYY-MM-DD")
	}
	f, err := h.uc.OrdersPDF(c.UserContext(), actor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}

// OrdersSheet godoc
// @Summary      Listado de pedidos en .xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        project_id  query  string  false  "Proyecto"
// @Param        status      query  string  false  "Estado"
// @Success      200         {file}    file
// @Router       /api/reports/orders.xlsx [get]
func (h *ReportHandler) OrdersSheet(c *fiber.Ctx) error {
	q, ok := ordersQuery(c)
	if !ok {
		return badRequest(c, "INVALID_DATE", "from y to deben tener formato YYYY-MM-DD")
	}
	f, err := h.uc.OrdersSheet(c.UserContext(), actor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}

// CreateConformityAct godoc
// @Summary      Emitir acta de conformidad
// @Description  El pedido debe estar Completado; un acta por pedido.
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        id    path  string                          true  "ID del pedido"
// @Param        body  body  dto.CreateConformityActRequest  true  "Datos del acta"
// @Success      201   {file}    file
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/conformity-act [post]
func (h *ReportHandler) CreateConformityAct(c *fiber.Ctx) error {
	var in dto.CreateConformityActRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	f, err := h.uc.CreateConformityAct(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Status(fiber.StatusCreated)
	return sendFile(c, f)
}

// ConformityAct godoc
// @Summary      Descargar acta de conformidad
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/conformity-act [get]
func (h *ReportHandler) ConformityAct(c *fiber.Ctx) error {
	f, err := h.uc.ConformityActPDF(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}

// PendingConformity godoc
// @Summary      Pedidos completados sin acta
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/reports/pending-conformity [get]
func (h *ReportHandler) PendingConformity(c *fiber.Ctx) error {
	out, err := h.uc.PendingConformity(c.UserContext(), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMonthly godoc
// @Summary      Informes mensuales guardados
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ReportListResponse
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) ListMonthly(c *fiber.Ctx) error {
	out, err := h.uc.ListMonthly(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MonthlyFile godoc
// @Summary      Descargar informe mensual
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del informe"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly/{id} [get]
func (h *ReportHandler) MonthlyFile(c *fiber.Ctx) error {
	f, err := h.uc.MonthlyFile(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, f)
}

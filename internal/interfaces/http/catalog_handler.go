package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/application/usecase"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

// CatalogHandler catálogos de proveedores.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Upsert godoc
// @Summary      Crear o fusionar catálogo
// @Description  Clave company+supplier+data_type. Los ítems se fusionan por id (o por nombre si no traen id).
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertCatalogRequest  true  "Catálogo"
// @Success      200   {object}  dto.UpsertCatalogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalogs [post]
func (h *CatalogHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertCatalogRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Upsert(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar catálogo desde .xlsx
// @Description  Columnas: id, name, description, category, unit, price (fila 1 de cabecera).
// @Tags         catalogs
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    true  "Hoja .xlsx"
// @Param        company    formData  string  true  "Empresa"
// @Param        supplier   formData  string  true  "Proveedor"
// @Param        data_type  formData  string  true  "products | services"
// @Success      200        {object}  dto.UpsertCatalogResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/catalogs/import [post]
func (h *CatalogHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "el campo file es requerido")
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".xlsx") {
		return badRequest(c, "INVALID_FILE", "solo se aceptan archivos .xlsx")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "INVALID_FILE", "no se pudo leer el archivo")
	}
	defer f.Close()

	out, err := h.uc.Import(c.UserContext(), c.FormValue("company"), c.FormValue("supplier"), c.FormValue("data_type"), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar catálogos
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        company    query  string  false  "Empresa"
// @Param        supplier   query  string  false  "Proveedor"
// @Param        data_type  query  string  false  "products | services"
// @Success      200        {array}   dto.CatalogResponse
// @Router       /api/catalogs [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), repository.CatalogFilter{
		Company:  c.Query("company"),
		Supplier: c.Query("supplier"),
		DataType: c.Query("data_type"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener catálogo
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del catálogo"
// @Success      200  {object}  dto.CatalogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogs/{id} [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar ítems en los catálogos
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  true  "Texto (nombre o descripción)"
// @Success      200  {array}   dto.CatalogSearchHit
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalogs/search [get]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar catálogo
// @Tags         catalogs
// @Security     Bearer
// @Param        id   path  string  true  "ID del catálogo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogs/{id} [delete]
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

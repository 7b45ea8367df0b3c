package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sipp-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// los errores se reportan con el nombre JSON del campo
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationFields mapa campo -> regla incumplida.
func validationFields(err error) map[string]string {
	fields := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fields
	}
	for _, fe := range verrs {
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		fields[key] = fe.Tag()
	}
	return fields
}

// bindJSON parsea el cuerpo y valida las etiquetas validate del DTO.
// Devuelve nil si todo está bien; si no, el cuerpo de la respuesta 400.
func bindJSON(c *fiber.Ctx, in any) *dto.ErrorResponse {
	if err := c.BodyParser(in); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	return check(in)
}

// check valida un DTO ya poblado.
func check(in any) *dto.ErrorResponse {
	if err := validate.Struct(in); err != nil {
		return &dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Fields:  validationFields(err),
		}
	}
	return nil
}

// pageFromQuery lee limit/offset de la query.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

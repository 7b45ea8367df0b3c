package usecase

import (
	"io"

	"github.com/jhoicas/sipp-api/internal/domain/entity"
)

// CatalogSheetParser lee los ítems de un catálogo desde una hoja de cálculo subida por el usuario.
type CatalogSheetParser interface {
	ParseCatalogItems(r io.Reader) ([]entity.CatalogItem, error)
}

package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/sipp-api/internal/application/usecase"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
)

var _ usecase.CatalogSheetParser = (*Workbook)(nil)

// Columnas del catálogo en orden posicional; la cabecera puede reordenarlas.
const (
	colID = iota
	colName
	colDescription
	colCategory
	colUnit
	colPrice
)

var headerAliases = map[string]int{
	"id":          colID,
	"codigo":      colID,
	"código":      colID,
	"name":        colName,
	"nombre":      colName,
	"description": colDescription,
	"descripcion": colDescription,
	"descripción": colDescription,
	"category":    colCategory,
	"categoria":   colCategory,
	"categoría":   colCategory,
	"unit":        colUnit,
	"unidad":      colUnit,
	"price":       colPrice,
	"precio":      colPrice,
}

// ParseCatalogItems lee la primera hoja: fila 1 de cabecera y un ítem por fila.
// Las filas vacías se omiten; un precio ilegible es ErrInvalidInput.
func (w *Workbook) ParseCatalogItems(r io.Reader) ([]entity.CatalogItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: archivo no válido (%v): %w", err, domain.ErrInvalidInput)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel: libro sin hojas: %w", domain.ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("excel: leer filas: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	index := columnIndex(rows[0])
	items := make([]entity.CatalogItem, 0, len(rows)-1)
	for n, cells := range rows[1:] {
		get := func(col int) string {
			i := index[col]
			if i < 0 || i >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[i])
		}
		if isBlank(cells) {
			continue
		}
		price, err := parsePrice(get(colPrice))
		if err != nil {
			return nil, fmt.Errorf("excel: fila %d: precio %q: %w", n+2, get(colPrice), domain.ErrInvalidInput)
		}
		items = append(items, entity.CatalogItem{
			ID:          get(colID),
			Name:        get(colName),
			Description: get(colDescription),
			Category:    get(colCategory),
			Unit:        get(colUnit),
			Price:       price,
		})
	}
	return items, nil
}

// columnIndex posición de cada columna según la cabecera; sin alias reconocidos se usa el orden fijo.
func columnIndex(header []string) [6]int {
	idx := [6]int{-1, -1, -1, -1, -1, -1}
	found := false
	for i, h := range header {
		if c, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok && idx[c] < 0 {
			idx[c] = i
			found = true
		}
	}
	if !found {
		return [6]int{colID, colName, colDescription, colCategory, colUnit, colPrice}
	}
	return idx
}

func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, nil
	}
	// "1.234,50" → "1234.50"
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Package excel importa catálogos y exporta pedidos en .xlsx con excelize.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/sipp-api/internal/application/reporting"
)

var _ reporting.SpreadsheetExporter = (*Workbook)(nil)

// OrdersSheetName nombre de la hoja del listado de pedidos.
const OrdersSheetName = "Pedidos"

var orderHeaders = []any{"Código", "Fecha", "Usuario", "Proyecto", "Tipo", "Estado", "Prioridad", "Total"}

// Workbook implementa la exportación de pedidos y el parser de catálogos.
type Workbook struct{}

// NewWorkbook construye el adaptador.
func NewWorkbook() *Workbook { return &Workbook{} }

// ExportOrders genera un libro con una hoja: cabecera y una fila por pedido.
func (w *Workbook) ExportOrders(rows []reporting.OrderRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OrdersSheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo cabecera: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("excel: estilo importe: %w", err)
	}

	if err := f.SetSheetRow(OrdersSheetName, "A1", &orderHeaders); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(orderHeaders), 1)
	if err := f.SetCellStyle(OrdersSheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("excel: estilo cabecera: %w", err)
	}

	for i, o := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			o.Code,
			o.CreatedAt.Format("2006-01-02"),
			o.UserName,
			o.ProjectName,
			o.Type,
			o.Status,
			o.Priority,
			o.Total.InexactFloat64(),
		}
		if err := f.SetSheetRow(OrdersSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}

	if len(rows) > 0 {
		first, _ := excelize.CoordinatesToCellName(len(orderHeaders), 2)
		last, _ := excelize.CoordinatesToCellName(len(orderHeaders), len(rows)+1)
		if err := f.SetCellStyle(OrdersSheetName, first, last, moneyStyle); err != nil {
			return nil, fmt.Errorf("excel: estilo importe: %w", err)
		}
	}
	_ = f.SetColWidth(OrdersSheetName, "A", "A", 24)
	_ = f.SetColWidth(OrdersSheetName, "C", "D", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

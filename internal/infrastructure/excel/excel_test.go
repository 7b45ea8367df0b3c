package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/sipp-api/internal/application/reporting"
	"github.com/jhoicas/sipp-api/internal/domain"
)

func workbookBytes(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestExportOrders_CabeceraYFilas(t *testing.T) {
	rows := []reporting.OrderRow{
		{Code: "PED-20260901-AAAAAA", CreatedAt: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), UserName: "Ana",
			ProjectName: "P-1 Lab", Type: "Compra", Status: "Pendiente", Priority: "alta", Total: decimal.NewFromInt(1500)},
		{Code: "PED-20260902-BBBBBB", CreatedAt: time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC), UserName: "Luis",
			ProjectName: "Sin proyecto", Type: "Extra", Status: "Completado", Priority: "media", Total: decimal.NewFromInt(20)},
	}

	content, err := NewWorkbook().ExportOrders(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(OrdersSheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Código", "Fecha", "Usuario", "Proyecto", "Tipo", "Estado", "Prioridad", "Total"}, got[0])
	assert.Equal(t, "PED-20260901-AAAAAA", got[1][0])
	assert.Equal(t, "2026-09-01", got[1][1])
	assert.Equal(t, "Sin proyecto", got[2][3])
}

func TestExportOrders_SinFilasSoloCabecera(t *testing.T) {
	content, err := NewWorkbook().ExportOrders(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetRows(OrdersSheetName)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestParseCatalogItems_ConCabecera(t *testing.T) {
	buf := workbookBytes(t, [][]any{
		{"Nombre", "Precio", "Unidad", "ID"},
		{"Resma carta", "12500", "paquete", "ITM-1"},
		{},
		{"Tóner", "1.234,50", "unidad", ""},
	})

	items, err := NewWorkbook().ParseCatalogItems(buf)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "ITM-1", items[0].ID)
	assert.Equal(t, "Resma carta", items[0].Name)
	assert.Equal(t, "paquete", items[0].Unit)
	assert.True(t, decimal.NewFromInt(12500).Equal(items[0].Price))
	assert.Empty(t, items[1].ID)
	assert.True(t, decimal.RequireFromString("1234.50").Equal(items[1].Price))
}

func TestParseCatalogItems_OrdenPosicional(t *testing.T) {
	buf := workbookBytes(t, [][]any{
		{"col1", "col2", "col3", "col4", "col5", "col6"},
		{"A-1", "Cable UTP", "Cat 6", "Redes", "metro", "3200"},
	})

	items, err := NewWorkbook().ParseCatalogItems(buf)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A-1", items[0].ID)
	assert.Equal(t, "Redes", items[0].Category)
	assert.True(t, decimal.NewFromInt(3200).Equal(items[0].Price))
}

func TestParseCatalogItems_PrecioInvalido(t *testing.T) {
	buf := workbookBytes(t, [][]any{
		{"name", "price"},
		{"Silla", "barato"},
	})

	_, err := NewWorkbook().ParseCatalogItems(buf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseCatalogItems_ArchivoNoXLSX(t *testing.T) {
	_, err := NewWorkbook().ParseCatalogItems(bytes.NewReader([]byte("no es un xlsx")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

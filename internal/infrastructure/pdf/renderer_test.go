package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sipp-api/internal/application/reporting"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
)

var generatedAt = time.Date(2026, 9, 30, 10, 0, 0, 0, time.UTC)

func assertPDF(t *testing.T, content []byte) {
	t.Helper()
	require.NotEmpty(t, content)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")), "debe ser un PDF")
}

func TestRenderOrdersReport_ConPedidos(t *testing.T) {
	rep := reporting.OrdersReport{
		Title:       "Informe de pedidos",
		Institution: "Departamento de Ingeniería",
		Period:      "01/09/2026 al 30/09/2026",
		Filters:     []reporting.Field{{Label: "Estado", Value: entity.OrderStatusCompleted}},
		Rows: []reporting.OrderRow{{
			Code: "PED-20260901-ABC123", CreatedAt: generatedAt, UserName: "Ana",
			ProjectName: "P-1 Laboratorio", Type: "Compra", Status: entity.OrderStatusCompleted,
			Priority: entity.PriorityHigh, Total: decimal.NewFromInt(150000),
		}},
		Total:         decimal.NewFromInt(150000),
		CountByStatus: map[string]int{entity.OrderStatusCompleted: 1},
		GeneratedAt:   generatedAt,
	}

	content, err := NewRenderer().RenderOrdersReport(context.Background(), rep)
	require.NoError(t, err)
	assertPDF(t, content)
}

func TestRenderOrdersReport_VacioGeneraDocumento(t *testing.T) {
	rep := reporting.OrdersReport{Title: "Informe de pedidos", Period: "Todos los pedidos", GeneratedAt: generatedAt}

	content, err := NewRenderer().RenderOrdersReport(context.Background(), rep)
	require.NoError(t, err)
	assertPDF(t, content)
}

func TestRenderOrdersReport_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer().RenderOrdersReport(ctx, reporting.OrdersReport{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderConformityAct(t *testing.T) {
	completed := generatedAt.Add(-time.Hour)
	act := reporting.ActDocument{
		Institution: "Departamento de Ingeniería",
		Code:        "ACT-20260930-XYZ789",
		IssuedAt:    generatedAt,
		Order: reporting.OrderRow{
			Code: "PED-20260901-ABC123", CreatedAt: generatedAt.AddDate(0, 0, -29),
			CompletedAt: &completed, UserName: "Ana", ProjectName: "P-1 Laboratorio",
			Type: "Servicio", Total: decimal.NewFromInt(80000),
		},
		Items: []entity.OrderItem{{
			Name: "Mantenimiento", Supplier: "TecnoSur", Unit: "servicio",
			Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(80000), Subtotal: decimal.NewFromInt(80000),
		}},
		CostCenter:   "CC-100",
		IssuedBy:     "Admin",
		ReceivedBy:   "Ana",
		Observations: "Sin novedades",
		Satisfactory: true,
	}

	content, err := NewRenderer().RenderConformityAct(context.Background(), act)
	require.NoError(t, err)
	assertPDF(t, content)
}

func TestRenderEmergency(t *testing.T) {
	content, err := NewRenderer().RenderEmergency(reporting.EmergencyDocument{
		Title: "Acta de conformidad", Code: "ACT-1", Total: decimal.NewFromInt(10), GeneratedAt: generatedAt,
	})
	require.NoError(t, err)
	assertPDF(t, content)
}

func TestMoney_FormatoEspanol(t *testing.T) {
	got := Money(decimal.RequireFromString("1234567.5"))
	assert.Contains(t, got, "1.234.567")
	assert.Contains(t, got, ",50")
}

func TestStatusSummary_Ordenado(t *testing.T) {
	kv := statusSummary(map[string]int{entity.OrderStatusPending: 2, entity.OrderStatusCompleted: 1})
	require.Len(t, kv, 2)
	assert.Equal(t, entity.OrderStatusCompleted, kv[0].Label)
	assert.Equal(t, "2", kv[1].Value)
}

package pdf

import (
	"context"
	"fmt"
	"sort"

	"github.com/johnfercher/maroto/v2/pkg/consts/align"

	"github.com/jhoicas/sipp-api/internal/application/reporting"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
)

var _ reporting.DocumentRenderer = (*Renderer)(nil)

// Renderer implementa reporting.DocumentRenderer con el Builder compartido.
type Renderer struct{}

// NewRenderer construye el renderer.
func NewRenderer() *Renderer { return &Renderer{} }

var orderColumns = []Column{
	{Label: "Código", Size: 2, Align: align.Left},
	{Label: "Fecha", Size: 1, Align: align.Center},
	{Label: "Usuario", Size: 2, Align: align.Left},
	{Label: "Proyecto", Size: 2, Align: align.Left},
	{Label: "Tipo", Size: 1, Align: align.Left},
	{Label: "Estado", Size: 1, Align: align.Left},
	{Label: "Prioridad", Size: 1, Align: align.Left},
	{Label: "Total", Size: 2, Align: align.Right},
}

var itemColumns = []Column{
	{Label: "Descripción", Size: 5, Align: align.Left},
	{Label: "Cant.", Size: 1, Align: align.Center},
	{Label: "Unidad", Size: 1, Align: align.Center},
	{Label: "Precio Unit.", Size: 2, Align: align.Right},
	{Label: "Subtotal", Size: 3, Align: align.Right},
}

// RenderOrdersReport informe de pedidos (también el mensual).
// Sin filas imprime el aviso de informe vacío en lugar de la tabla.
func (r *Renderer) RenderOrdersReport(ctx context.Context, rep reporting.OrdersReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := NewBuilder(Header{
		Institution: rep.Institution,
		Title:       rep.Title,
		Reference:   rep.Period,
		GeneratedAt: rep.GeneratedAt,
	})

	if len(rep.Filters) > 0 {
		b.Section("Filtros aplicados").KeyValues(toKeyValues(rep.Filters))
	}

	b.Section("Pedidos")
	if rep.Empty() {
		b.EmptyState(reporting.EmptyReportMessage)
		return b.Bytes()
	}

	rows := make([][]string, 0, len(rep.Rows))
	for _, o := range rep.Rows {
		rows = append(rows, []string{
			o.Code, formatDate(o.CreatedAt), o.UserName, o.ProjectName,
			o.Type, o.Status, o.Priority, Money(o.Total),
		})
	}
	b.Table(orderColumns, rows).
		Total(fmt.Sprintf("TOTAL (%d pedidos):", len(rep.Rows)), Money(rep.Total))

	b.Section("Resumen por estado").KeyValues(statusSummary(rep.CountByStatus))
	return b.Bytes()
}

// RenderConformityAct acta de conformidad de un pedido completado.
func (r *Renderer) RenderConformityAct(ctx context.Context, a reporting.ActDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := NewBuilder(Header{
		Institution: a.Institution,
		Title:       "ACTA DE CONFORMIDAD",
		Reference:   a.Code,
		GeneratedAt: a.IssuedAt,
	})

	conformity := "No conforme"
	if a.Satisfactory {
		conformity = "Conforme"
	}
	completed := "-"
	if a.Order.CompletedAt != nil {
		completed = formatDate(*a.Order.CompletedAt)
	}

	b.Section("Datos del pedido").KeyValues([]KeyValue{
		{Label: "Pedido", Value: a.Order.Code},
		{Label: "Tipo", Value: a.Order.Type},
		{Label: "Solicitante", Value: a.Order.UserName},
		{Label: "Proyecto", Value: a.Order.ProjectName},
		{Label: "Centro de costo", Value: nonEmpty(a.CostCenter, "-")},
		{Label: "Fecha pedido", Value: formatDate(a.Order.CreatedAt)},
		{Label: "Fecha entrega", Value: completed},
		{Label: "Resultado", Value: conformity},
	})

	rows := make([][]string, 0, len(a.Items))
	for _, it := range a.Items {
		rows = append(rows, []string{
			itemLabel(it), it.Quantity.String(), nonEmpty(it.Unit, "-"),
			Money(it.UnitPrice), Money(it.Subtotal),
		})
	}
	b.Section("Bienes y servicios recibidos").
		Table(itemColumns, rows).
		Total("TOTAL:", Money(a.Order.Total))

	if a.Observations != "" {
		b.Section("Observaciones").Paragraph(a.Observations)
	}
	b.Paragraph(fmt.Sprintf(
		"Se deja constancia de la recepción de los bienes y/o servicios del pedido %s en la fecha %s.",
		a.Order.Code, formatDate(a.IssuedAt)))

	b.Signatures("Entregado por: "+nonEmpty(a.IssuedBy, "-"), "Recibido por: "+nonEmpty(a.ReceivedBy, "-"))
	return b.Bytes()
}

// RenderEmergency PDF mínimo: título, código y total.
func (r *Renderer) RenderEmergency(e reporting.EmergencyDocument) ([]byte, error) {
	return NewBuilder(Header{
		Title:       e.Title,
		Reference:   e.Code,
		GeneratedAt: e.GeneratedAt,
	}).
		Paragraph("No fue posible generar el documento completo. Se entrega esta versión resumida.").
		Total("TOTAL:", Money(e.Total)).
		Bytes()
}

func itemLabel(it entity.OrderItem) string {
	if it.Supplier == "" {
		return it.Name
	}
	return it.Name + " (" + it.Supplier + ")"
}

func toKeyValues(fields []reporting.Field) []KeyValue {
	out := make([]KeyValue, len(fields))
	for i, f := range fields {
		out[i] = KeyValue{Label: f.Label, Value: f.Value}
	}
	return out
}

func statusSummary(counts map[string]int) []KeyValue {
	statuses := make([]string, 0, len(counts))
	for s := range counts {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	out := make([]KeyValue, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, KeyValue{Label: s, Value: fmt.Sprint(counts[s])})
	}
	return out
}

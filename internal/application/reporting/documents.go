package reporting

import (
	"time"

	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// EmptyReportMessage aviso que sustituye a la tabla cuando ningún pedido cumple los filtros.
const EmptyReportMessage = "No hay pedidos para los filtros seleccionados"

// Tipos de documento (etiqueta de métricas y logs).
const (
	KindOrdersReport  = "orders_report"
	KindOrdersSheet   = "orders_sheet"
	KindConformityAct = "conformity_act"
	KindMonthly       = "monthly_report"
	KindEmergency     = "emergency"
)

// Content types de las descargas.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Field par etiqueta/valor impreso en los documentos.
type Field struct {
	Label string
	Value string
}

// OrderRow fila de pedido ya resuelta (nombres de usuario y proyecto) para informes y hojas.
type OrderRow struct {
	Code        string
	CreatedAt   time.Time
	CompletedAt *time.Time
	UserName    string
	ProjectName string
	Type        string
	Status      string
	Priority    string
	Total       decimal.Decimal
}

// OrdersReport datos del informe de pedidos.
type OrdersReport struct {
	Title         string
	Institution   string
	Period        string
	Filters       []Field
	Rows          []OrderRow
	Total         decimal.Decimal
	CountByStatus map[string]int
	GeneratedAt   time.Time
}

// Empty informa si el informe no tiene pedidos; se imprime EmptyReportMessage.
func (r OrdersReport) Empty() bool {
	return len(r.Rows) == 0
}

// ActDocument datos del acta de conformidad.
type ActDocument struct {
	Institution  string
	Code         string
	IssuedAt     time.Time
	Order        OrderRow
	Items        []entity.OrderItem
	CostCenter   string
	IssuedBy     string
	ReceivedBy   string
	Observations string
	Satisfactory bool
}

// EmergencyDocument contenido del PDF de respaldo: solo título, código y total.
type EmergencyDocument struct {
	Title       string
	Code        string
	Total       decimal.Decimal
	GeneratedAt time.Time
}

// File documento listo para descargar.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
	Empty       bool // informe sin pedidos
	Fallback    bool // se entregó el PDF de emergencia
}

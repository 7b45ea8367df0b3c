package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	OrderStatusPending    = "Pendiente"
	OrderStatusInProgress = "En proceso"
	OrderStatusCompleted  = "Completado"
	OrderStatusDenied     = "Denegado"
)

// Tipos de pedido. Un pedido special ("extra") no necesita catálogo ni proyecto.
const (
	OrderTypePurchase = "purchase"
	OrderTypeService  = "service"
	OrderTypeSpecial  = "special"
)

// Prioridades.
const (
	PriorityLow    = "baja"
	PriorityMedium = "media"
	PriorityHigh   = "alta"
	PriorityUrgent = "urgente"
)

// orderTransitions estados destino permitidos desde cada estado.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusInProgress, OrderStatusCompleted, OrderStatusDenied},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusDenied},
	OrderStatusCompleted:  nil,
	OrderStatusDenied:     nil,
}

// Order es un pedido de compra, servicio o especial imputado (opcionalmente) a un proyecto.
type Order struct {
	ID          string
	Code        string // PED-YYYYMMDD-XXXXXX
	UserID      string
	ProjectID   string // vacío = pedido extra sin proyecto
	Type        string
	Items       []OrderItem
	Total       decimal.Decimal
	Status      string
	Priority    string
	Progress    int // 0..100
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// OrderItem línea de un pedido; guarda una copia de los datos del catálogo al momento de la compra.
type OrderItem struct {
	CatalogID   string          `json:"catalog_id,omitempty"`
	ItemID      string          `json:"item_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Supplier    string          `json:"supplier,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// ValidOrderStatus informa si s es un estado conocido.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// ValidOrderType informa si t es un tipo de pedido conocido.
func ValidOrderType(t string) bool {
	switch t {
	case OrderTypePurchase, OrderTypeService, OrderTypeSpecial:
		return true
	}
	return false
}

// ValidPriority informa si p es una prioridad conocida.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// CanTransition informa si el pedido puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsFinal informa si el pedido ya no admite cambios de estado.
func (o *Order) IsFinal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusDenied
}

// HasProject informa si el pedido se imputa a un proyecto.
func (o *Order) HasProject() bool {
	return o.ProjectID != ""
}

// Recalculate recalcula subtotales y total a partir de cantidad × precio unitario.
func (o *Order) Recalculate() {
	total := decimal.Zero
	for i := range o.Items {
		o.Items[i].Subtotal = o.Items[i].Quantity.Mul(o.Items[i].UnitPrice).Round(2)
		total = total.Add(o.Items[i].Subtotal)
	}
	o.Total = total
}

// ApplyStatus cambia el estado ajustando progreso y fecha de cierre. No valida la transición.
func (o *Order) ApplyStatus(status string, now time.Time) {
	o.Status = status
	o.UpdatedAt = now
	switch status {
	case OrderStatusCompleted:
		o.Progress = 100
		o.CompletedAt = &now
	case OrderStatusInProgress:
		if o.Progress == 0 {
			o.Progress = 10
		}
	}
}

// OrderTypeLabel nombre del tipo de pedido para documentos.
func OrderTypeLabel(t string) string {
	switch t {
	case OrderTypePurchase:
		return "Compra"
	case OrderTypeService:
		return "Servicio"
	case OrderTypeSpecial:
		return "Extra"
	}
	return t
}

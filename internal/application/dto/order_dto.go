package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de checkout. Con CatalogID+ItemID nombre y precio salen del catálogo;
// en pedidos special se usan Name y UnitPrice tal cual.
type OrderItemRequest struct {
	CatalogID   string          `json:"catalog_id"`
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name" validate:"omitempty,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"omitempty,max=100"`
	Supplier    string          `json:"supplier" validate:"omitempty,max=200"`
	Unit        string          `json:"unit" validate:"omitempty,max=30"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest checkout de un pedido.
type CreateOrderRequest struct {
	ProjectID string             `json:"project_id"`
	Type      string             `json:"type" validate:"required,oneof=purchase service special"`
	Priority  string             `json:"priority" validate:"omitempty,oneof=baja media alta urgente"`
	Notes     string             `json:"notes" validate:"omitempty,max=2000"`
	Items     []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest cambio de estado.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pendiente 'En proceso' Completado Denegado"`
}

// UpdateOrderProgressRequest avance de un pedido en proceso.
type UpdateOrderProgressRequest struct {
	Progress int `json:"progress" validate:"min=0,max=100"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
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

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID          string              `json:"id"`
	Code        string              `json:"code"`
	UserID      string              `json:"user_id"`
	ProjectID   string              `json:"project_id,omitempty"`
	Type        string              `json:"type"`
	Items       []OrderItemResponse `json:"items"`
	Total       decimal.Decimal     `json:"total"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
	Progress    int                 `json:"progress"`
	Notes       string              `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

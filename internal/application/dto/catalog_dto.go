package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItemDTO producto o servicio de un catálogo.
type CatalogItemDTO struct {
	ID          string          `json:"id" validate:"omitempty,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"omitempty,max=100"`
	Unit        string          `json:"unit" validate:"omitempty,max=30"`
	Price       decimal.Decimal `json:"price"`
}

// UpsertCatalogRequest crea o fusiona el catálogo Company+Supplier+DataType.
type UpsertCatalogRequest struct {
	Company  string           `json:"company" validate:"required,min=1,max=200"`
	Supplier string           `json:"supplier" validate:"required,min=1,max=200"`
	DataType string           `json:"data_type" validate:"required,oneof=products services"`
	Items    []CatalogItemDTO `json:"items" validate:"required,min=1,dive"`
}

// CatalogResponse salida de un catálogo.
type CatalogResponse struct {
	ID        string           `json:"id"`
	Company   string           `json:"company"`
	Supplier  string           `json:"supplier"`
	DataType  string           `json:"data_type"`
	Items     []CatalogItemDTO `json:"items"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// UpsertCatalogResponse resultado de la fusión.
type UpsertCatalogResponse struct {
	Catalog  CatalogResponse `json:"catalog"`
	Created  bool            `json:"created"`
	Added    int             `json:"added"`
	Replaced int             `json:"replaced"`
}

// CatalogSearchHit ítem encontrado con su catálogo de origen.
type CatalogSearchHit struct {
	CatalogID string         `json:"catalog_id"`
	Company   string         `json:"company"`
	Supplier  string         `json:"supplier"`
	DataType  string         `json:"data_type"`
	Item      CatalogItemDTO `json:"item"`
}

package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de catálogo.
const (
	CatalogProducts = "products"
	CatalogServices = "services"
)

// Catalog agrupa los productos o servicios de un proveedor para una empresa.
// La clave natural es Company + Supplier + DataType.
type Catalog struct {
	ID        string
	Company   string
	Supplier  string
	DataType  string // products | services
	Items     []CatalogItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CatalogItem es un producto o servicio comprable.
type CatalogItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
}

// ValidCatalogType informa si t es products o services.
func ValidCatalogType(t string) bool {
	return t == CatalogProducts || t == CatalogServices
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MergeItems fusiona incoming sobre los ítems actuales. Un ítem con ID reemplaza al de mismo ID;
// sin ID reemplaza al de mismo nombre normalizado y conserva el ID existente. Los demás se agregan
// al final. Devuelve cuántos ítems se agregaron y cuántos se reemplazaron.
func (c *Catalog) MergeItems(incoming []CatalogItem) (added, replaced int) {
	byID := make(map[string]int, len(c.Items))
	byName := make(map[string]int, len(c.Items))
	for i, it := range c.Items {
		if it.ID != "" {
			byID[it.ID] = i
		}
		byName[normalizeName(it.Name)] = i
	}
	for _, it := range incoming {
		pos, ok := -1, false
		if it.ID != "" {
			pos, ok = byID[it.ID]
		} else {
			pos, ok = byName[normalizeName(it.Name)]
			if ok {
				it.ID = c.Items[pos].ID
			}
		}
		if ok {
			delete(byName, normalizeName(c.Items[pos].Name))
			c.Items[pos] = it
			byName[normalizeName(it.Name)] = pos
			replaced++
			continue
		}
		pos = len(c.Items)
		c.Items = append(c.Items, it)
		if it.ID != "" {
			byID[it.ID] = pos
		}
		byName[normalizeName(it.Name)] = pos
		added++
	}
	return added, replaced
}

// FindItem busca un ítem por ID.
func (c *Catalog) FindItem(id string) (CatalogItem, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return CatalogItem{}, false
}

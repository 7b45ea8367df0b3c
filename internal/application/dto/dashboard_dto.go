package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Projects    int             `json:"projects"`
	TotalBudget decimal.Decimal `json:"total_budget"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	Available   decimal.Decimal `json:"available"`
	Percentage  int             `json:"percentage"`

	OrdersByStatus  map[string]int     `json:"orders_by_status"`
	SpendByCategory []CategorySpendDTO `json:"spend_by_category"`
	SpendByMonth    []MonthSpendDTO    `json:"spend_by_month"` // últimos 12 meses, del más antiguo al actual

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// CategorySpendDTO gasto por categoría de ítem (pedidos completados).
type CategorySpendDTO struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthSpendDTO gasto de un mes.
type MonthSpendDTO struct {
	Month  time.Time       `json:"month"`
	Label  string          `json:"label"` // "2026-09"
	Amount decimal.Decimal `json:"amount"`
	Orders int             `json:"orders"`
}

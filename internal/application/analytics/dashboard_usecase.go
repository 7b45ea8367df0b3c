// Package analytics contiene el caso de uso del dashboard de presupuesto y gasto.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/domain/budget"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

const dashboardMonths = 12 // meses del gráfico de gasto

// DashboardUseCase genera el resumen de presupuesto y pedidos.
//
// Un usuario ve sus proyectos y pedidos; el admin ve todo. Comercial ve sus proyectos
// (no es propietario de proyectos de terceros) y todos los pedidos.
type DashboardUseCase struct {
	projects repository.ProjectRepository
	orders   repository.OrderRepository
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(projects repository.ProjectRepository, orders repository.OrderRepository) *DashboardUseCase {
	return &DashboardUseCase{projects: projects, orders: orders, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO del actor.
//
// Dos lecturas en paralelo:
//  1. proyectos visibles → totales de presupuesto
//  2. pedidos visibles   → conteo por estado, gasto por categoría y por mes
func (uc *DashboardUseCase) GetSummary(ctx context.Context, actor dto.Actor) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	pf := repository.ProjectFilter{}
	if !actor.IsAdmin() {
		pf.OwnerID = actor.UserID
	}
	of := repository.OrderFilter{}
	if !actor.IsStaff() {
		of.UserID = actor.UserID
	}

	// ── Goroutines para paralelizar las 2 consultas ───────────────────────────
	type projectsResult struct {
		list []*entity.Project
		err  error
	}
	type ordersResult struct {
		list []*entity.Order
		err  error
	}
	projectsCh := make(chan projectsResult, 1)
	ordersCh := make(chan ordersResult, 1)

	go func() {
		list, err := uc.projects.List(ctx, pf)
		projectsCh <- projectsResult{list, err}
	}()
	go func() {
		list, err := uc.orders.List(ctx, of)
		ordersCh <- ordersResult{list, err}
	}()

	projects := <-projectsCh
	orders := <-ordersCh
	if projects.err != nil {
		return nil, fmt.Errorf("dashboard: proyectos: %w", projects.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos: %w", orders.err)
	}

	// ── Agregados ──────────────────────────────────────────────────────────────
	totals := budget.ProjectTotals(projects.list)

	categories := budget.SpendByCategory(orders.list)
	byCategory := make([]dto.CategorySpendDTO, 0, len(categories))
	for _, c := range categories {
		byCategory = append(byCategory, dto.CategorySpendDTO{Category: c.Category, Amount: c.Amount.Round(2)})
	}

	months := budget.SpendByMonth(orders.list, now, dashboardMonths)
	byMonth := make([]dto.MonthSpendDTO, 0, len(months))
	for _, m := range months {
		byMonth = append(byMonth, dto.MonthSpendDTO{
			Month:  m.Month,
			Label:  m.Month.Format("2006-01"),
			Amount: m.Amount.Round(2),
			Orders: m.Orders,
		})
	}

	return &dto.DashboardSummaryDTO{
		Projects:        totals.Projects,
		TotalBudget:     totals.Budget.Round(2),
		TotalSpent:      totals.Spent.Round(2),
		Available:       totals.Available.Round(2),
		Percentage:      totals.Percentage,
		OrdersByStatus:  budget.CountByStatus(orders.list),
		SpendByCategory: byCategory,
		SpendByMonth:    byMonth,
		DateLabel:       budget.MonthLabel(now),
	}, nil
}

// Package budget agrega proyectos y pedidos en los totales que muestran el dashboard
// y los informes. Funciones puras: no acceden a persistencia.
package budget

import (
	"sort"
	"time"

	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// UncategorizedLabel agrupa ítems sin categoría.
const UncategorizedLabel = "Sin categoría"

// Totals presupuesto agregado de un conjunto de proyectos.
type Totals struct {
	Projects   int
	Budget     decimal.Decimal
	Spent      decimal.Decimal
	Available  decimal.Decimal
	Percentage int
}

// CategoryAmount gasto acumulado de una categoría.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// MonthAmount gasto de un mes (Month es el día 1 a las 00:00 UTC).
type MonthAmount struct {
	Month  time.Time
	Amount decimal.Decimal
	Orders int
}

// ProjectTotals suma presupuesto y gasto de los proyectos.
func ProjectTotals(projects []*entity.Project) Totals {
	t := Totals{Budget: decimal.Zero, Spent: decimal.Zero}
	for _, p := range projects {
		t.Projects++
		t.Budget = t.Budget.Add(p.Budget)
		t.Spent = t.Spent.Add(p.BudgetSpent)
	}
	t.Available = t.Budget.Sub(t.Spent)
	t.Percentage = entity.Percentage(t.Spent, t.Budget)
	return t
}

// CountByStatus cuenta pedidos por estado; todos los estados conocidos aparecen aunque sea con 0.
func CountByStatus(orders []*entity.Order) map[string]int {
	out := map[string]int{
		entity.OrderStatusPending:    0,
		entity.OrderStatusInProgress: 0,
		entity.OrderStatusCompleted:  0,
		entity.OrderStatusDenied:     0,
	}
	for _, o := range orders {
		out[o.Status]++
	}
	return out
}

// SpendByCategory suma los subtotales de los pedidos completados por categoría de ítem,
// de mayor a menor importe (empates por nombre).
func SpendByCategory(orders []*entity.Order) []CategoryAmount {
	sums := map[string]decimal.Decimal{}
	for _, o := range orders {
		if o.Status != entity.OrderStatusCompleted {
			continue
		}
		for _, it := range o.Items {
			cat := it.Category
			if cat == "" {
				cat = UncategorizedLabel
			}
			sums[cat] = sums[cat].Add(it.Subtotal)
		}
	}
	out := make([]CategoryAmount, 0, len(sums))
	for cat, amount := range sums {
		out = append(out, CategoryAmount{Category: cat, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// SpendByMonth reparte el total de los pedidos completados en los últimos `months` meses
// (incluido el mes de now), del más antiguo al más reciente. Meses sin gasto aparecen con 0.
func SpendByMonth(orders []*entity.Order, now time.Time, months int) []MonthAmount {
	if months <= 0 {
		return nil
	}
	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	first := current.AddDate(0, -(months - 1), 0)

	out := make([]MonthAmount, months)
	for i := range out {
		out[i] = MonthAmount{Month: first.AddDate(0, i, 0), Amount: decimal.Zero}
	}
	for _, o := range orders {
		if o.Status != entity.OrderStatusCompleted {
			continue
		}
		at := o.CreatedAt
		if o.CompletedAt != nil {
			at = *o.CompletedAt
		}
		at = at.UTC()
		m := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
		idx := monthsBetween(first, m)
		if idx < 0 || idx >= months {
			continue
		}
		out[idx].Amount = out[idx].Amount.Add(o.Total)
		out[idx].Orders++
	}
	return out
}

// OrdersTotal suma el total de los pedidos.
func OrdersTotal(orders []*entity.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

var monthNames = [...]string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio",
	"Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

// MonthLabel devuelve el mes en español con el año, p. ej. "Septiembre 2026".
func MonthLabel(t time.Time) string {
	return monthNames[t.Month()-1] + " " + t.Format("2006")
}

// MonthStart devuelve el día 1 del mes de t a las 00:00 UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

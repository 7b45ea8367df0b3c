package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project es un proyecto con presupuesto contra el que se imputan pedidos.
type Project struct {
	ID            string
	OwnerID       string
	Name          string
	CostCenter    string
	ProjectNumber string // único por propietario
	Budget        decimal.Decimal
	BudgetSpent   decimal.Decimal // suma de pedidos completados
	StartDate     *time.Time
	EndDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Available devuelve el presupuesto que queda por gastar (puede ser negativo si se reajustó el presupuesto).
func (p *Project) Available() decimal.Decimal {
	return p.Budget.Sub(p.BudgetSpent)
}

// SpentPercentage devuelve round(spent/budget*100); 0 si el presupuesto es cero.
func (p *Project) SpentPercentage() int {
	return Percentage(p.BudgetSpent, p.Budget)
}

// Percentage calcula round(part/total*100) con redondeo half-up; 0 si total no es positivo.
func Percentage(part, total decimal.Decimal) int {
	if !total.IsPositive() {
		return 0
	}
	return int(part.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

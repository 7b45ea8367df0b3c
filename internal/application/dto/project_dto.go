package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest alta de proyecto. Fechas en formato YYYY-MM-DD.
type CreateProjectRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	CostCenter    string          `json:"cost_center" validate:"omitempty,max=50"`
	ProjectNumber string          `json:"project_number" validate:"required,max=50"`
	Budget        decimal.Decimal `json:"budget"`
	StartDate     string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string          `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateProjectRequest edición parcial de un proyecto.
type UpdateProjectRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	CostCenter    *string          `json:"cost_center" validate:"omitempty,max=50"`
	ProjectNumber *string          `json:"project_number" validate:"omitempty,min=1,max=50"`
	Budget        *decimal.Decimal `json:"budget"`
	StartDate     *string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string          `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"owner_id"`
	Name          string          `json:"name"`
	CostCenter    string          `json:"cost_center"`
	ProjectNumber string          `json:"project_number"`
	Budget        decimal.Decimal `json:"budget"`
	BudgetSpent   decimal.Decimal `json:"budget_spent"`
	StartDate     *time.Time      `json:"start_date,omitempty"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProjectListResponse lista paginada de proyectos.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProjectBudgetResponse estado del presupuesto de un proyecto.
type ProjectBudgetResponse struct {
	ProjectID  string          `json:"project_id"`
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Available  decimal.Decimal `json:"available"`
	Percentage int             `json:"percentage"` // round(spent/budget*100)
}

package dto

import "time"

// CreateConformityActRequest datos para emitir el acta de conformidad de un pedido.
type CreateConformityActRequest struct {
	ReceivedBy   string `json:"received_by" validate:"required,min=1,max=200"`
	Observations string `json:"observations" validate:"omitempty,max=2000"`
	Satisfactory *bool  `json:"satisfactory"` // por defecto true
}

// ReportResponse metadatos de un informe almacenado.
type ReportResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Filename    string    `json:"filename"`
	OrderCount  int       `json:"order_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReportListResponse lista paginada de informes.
type ReportListResponse struct {
	Items []ReportResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

package entity

import "time"

// Tipos de informe almacenado.
const (
	ReportKindMonthly = "monthly"
)

// Report informe PDF generado y guardado (p. ej. el informe mensual programado).
type Report struct {
	ID          string
	Kind        string
	PeriodStart time.Time
	PeriodEnd   time.Time // exclusivo
	Filename    string
	Content     []byte
	OrderCount  int
	CreatedAt   time.Time
}

package reporting

import "context"

// DocumentRenderer genera los PDF de SiPP. Las implementaciones comparten un mismo constructor
// de documentos (cabecera, pie, tablas, bloque de firmas).
type DocumentRenderer interface {
	RenderOrdersReport(ctx context.Context, r OrdersReport) ([]byte, error)
	RenderConformityAct(ctx context.Context, a ActDocument) ([]byte, error)
	// RenderEmergency produce un PDF mínimo cuando el documento completo no se pudo generar.
	RenderEmergency(e EmergencyDocument) ([]byte, error)
}

// SpreadsheetExporter exporta el listado de pedidos a hoja de cálculo.
type SpreadsheetExporter interface {
	ExportOrders(rows []OrderRow) ([]byte, error)
}

// EventRecorder recibe un evento por documento generado (métricas).
type EventRecorder interface {
	DocumentGenerated(kind string)
}

type noopRecorder struct{}

func (noopRecorder) DocumentGenerated(string) {}

package entity

import "time"

// ConformityAct certifica que un pedido completado se entregó satisfactoriamente.
// Se persiste solo la metadata; el PDF se regenera a partir del pedido.
type ConformityAct struct {
	ID           string
	Code         string // ACT-YYYYMMDD-XXXXXX
	OrderID      string
	IssuedBy     string // usuario que emite el acta
	ReceivedBy   string // nombre de quien recibe
	Observations string
	Satisfactory bool
	CreatedAt    time.Time
}

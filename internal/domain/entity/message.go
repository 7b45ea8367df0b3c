package entity

import "time"

// Message mensaje interno entre usuarios.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Subject     string
	Body        string
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// IsRead informa si el destinatario ya leyó el mensaje.
func (m *Message) IsRead() bool {
	return m.ReadAt != nil
}

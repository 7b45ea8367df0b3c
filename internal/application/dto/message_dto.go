package dto

import "time"

// SendMessageRequest envío de un mensaje interno.
type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Subject     string `json:"subject" validate:"required,min=1,max=200"`
	Body        string `json:"body" validate:"required,min=1,max=5000"`
}

// MessageResponse salida de un mensaje.
type MessageResponse struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	RecipientID string     `json:"recipient_id"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	Read        bool       `json:"read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MessageListResponse lista paginada de mensajes.
type MessageListResponse struct {
	Items []MessageResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// UnreadCountResponse mensajes sin leer.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

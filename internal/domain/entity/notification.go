package entity

import "time"

// Notification es un aviso durable para un usuario. Append-only desde el
// punto de vista del ciclo de vida; solo su destinatario la lee y la marca
// como leída.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

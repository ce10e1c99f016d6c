package domain

import "time"

// Session identifica a un remitente del chat.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation es el estado del formulario para un remitente.
type Conversation struct {
	SenderID      string    `json:"sender_id"`
	Profile       Profile   `json:"profile"`
	RequestedSlot string    `json:"requested_slot,omitempty"`
	LastReply     string    `json:"last_reply,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Reset limpia todos los slots y cierra el formulario.
func (c *Conversation) Reset() {
	c.Profile = Profile{}
	c.RequestedSlot = ""
}

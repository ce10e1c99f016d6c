package domain

import "time"

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

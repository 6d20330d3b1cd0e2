package student

import "time"

const (
	ConnectionPending   = "pending"
	ConnectionAccepted  = "accepted"
	ConnectionConnected = "connected"
)

// Connection links a student with a partner they chose from their matches.
type Connection struct {
	ID            string     `json:"id,omitempty"`
	StudentID     string     `json:"student_id" validate:"required"`
	PartnerID     string     `json:"partner_id" validate:"required,nefield=StudentID"`
	Status        string     `json:"status" validate:"omitempty,oneof=pending accepted connected"`
	Notes         string     `json:"notes,omitempty" validate:"max=1000"`
	ConnectedAt   time.Time  `json:"connected_at"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
}

// Normalize fills defaults applied when two students connect.
func (c *Connection) Normalize(now time.Time) {
	if c.Status == "" {
		c.Status = ConnectionConnected
	}
	if c.ConnectedAt.IsZero() {
		c.ConnectedAt = now.UTC()
	}
}

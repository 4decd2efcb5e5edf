package models

import (
	"time"

	"github.com/google/uuid"
)

// QueueDB represents a queue row in the database. Queues are immutable
// after creation; tokens reference them by queue_id.
type QueueDB struct {
	QueueID   uuid.UUID `json:"id" db:"queue_id"`           // Unique queue identifier
	Name      string    `json:"name" db:"name"`             // Display name, not unique
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Token lifecycle statuses. A token is created waiting and may move to
// exactly one of the two terminal statuses.
const (
	StatusWaiting   = "waiting"
	StatusAssigned  = "assigned"
	StatusCancelled = "cancelled"
)

// CanTransition reports whether a status change is allowed. Only
// waiting->assigned and waiting->cancelled exist; assigned and cancelled
// are terminal.
func CanTransition(from, to string) bool {
	if from != StatusWaiting {
		return false
	}
	return to == StatusAssigned || to == StatusCancelled
}

// TokenDB represents a token row in the database. Seq is the FIFO order
// key: a BIGSERIAL assigned by the store, strictly increasing and never
// reused, independent of the token id.
type TokenDB struct {
	TokenID   uuid.UUID `json:"id" db:"token_id"`           // Unique token identifier
	QueueID   uuid.UUID `json:"queue_id" db:"queue_id"`     // Owning queue
	Name      string    `json:"name" db:"name"`             // Participant name
	Status    string    `json:"status" db:"status"`         // waiting, assigned or cancelled
	Seq       int64     `json:"seq" db:"seq"`               // FIFO order key
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"-" db:"updated_at"`          // Last status change
}

package models

// Token lifecycle event types published to Kafka.
const (
	EventEnqueued  = "enqueued"
	EventAssigned  = "assigned"
	EventCancelled = "cancelled"
)

// TokenEvent is the audit record published to Kafka on every token
// mutation.
type TokenEvent struct {
	EventID   string `json:"event_id"`  // Unique event identifier
	Type      string `json:"type"`      // enqueued, assigned or cancelled
	TokenID   string `json:"token_id"`  // Affected token
	QueueID   string `json:"queue_id"`  // Owning queue
	Seq       int64  `json:"seq"`       // Token order key
	Timestamp int64  `json:"timestamp"` // Unix time of the mutation
}

package models

// QueueStats holds per-status token counts for one queue.
type QueueStats struct {
	Waiting   int64 `json:"waiting"`   // Tokens still in line
	Assigned  int64 `json:"assigned"`  // Tokens promoted for service
	Cancelled int64 `json:"cancelled"` // Tokens removed before service
}

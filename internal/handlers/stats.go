package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-queue/internal/logger"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
)

// StatsProvider defines the interface that the analytics service must implement.
type StatsProvider interface {
	CountsByQueue(ctx context.Context) (map[uuid.UUID]models.QueueStats, error)
}

// NewStatsHandler returns an HTTP handler for the analytics aggregate.
// @Summary Token counts per queue
// @Description Returns waiting/assigned/cancelled token counts for every queue.
// @Tags analytics
// @Produce json
// @Success 200 {object} map[string]models.QueueStats "Counts keyed by queue id"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /analytics [get]
func NewStatsHandler(svc StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := svc.CountsByQueue(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		out := make(map[string]models.QueueStats, len(counts))
		for queueID, stats := range counts {
			out[queueID.String()] = stats
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(out)
	}
}

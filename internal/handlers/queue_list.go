package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-token-queue/internal/logger"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
)

// QueueLister defines the interface that the queue service must implement.
type QueueLister interface {
	List(ctx context.Context) ([]models.QueueDB, error)
}

// NewListQueuesHandler returns an HTTP handler that lists all queues.
// @Summary List queues
// @Description Returns every registered queue in creation order.
// @Tags queues
// @Produce json
// @Success 200 {array} models.QueueDB "All queues"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /queues [get]
func NewListQueuesHandler(svc QueueLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queues, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(queues)
	}
}

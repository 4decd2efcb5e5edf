package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-queue/internal/logger"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
	"github.com/sbilibin2017/gw-token-queue/internal/services"
)

// WaitingLister defines the interface that the token service must implement.
type WaitingLister interface {
	ListWaiting(ctx context.Context, queueID uuid.UUID) ([]models.TokenDB, error)
}

// NewListWaitingHandler returns an HTTP handler that lists a queue's waiting tokens.
// @Summary List waiting tokens
// @Description Returns the queue's waiting tokens in FIFO order, oldest first.
// @Tags tokens
// @Produce json
// @Param id path string true "Queue ID"
// @Success 200 {array} models.TokenDB "Waiting tokens, oldest first"
// @Failure 400 {object} handlers.ErrorResponse "Invalid queue id"
// @Failure 404 {object} handlers.ErrorResponse "Queue not found"
// @Security BearerAuth
// @Router /queues/{id}/tokens [get]
func NewListWaitingHandler(svc WaitingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queueID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid queue id"})
			return
		}

		tokens, err := svc.ListWaiting(r.Context(), queueID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrQueueNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Queue not found"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(tokens)
	}
}

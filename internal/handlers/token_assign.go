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

// Assigner defines the interface that the token service must implement.
type Assigner interface {
	AssignNext(ctx context.Context, queueID uuid.UUID) (*models.TokenDB, error)
}

// NewAssignNextHandler returns an HTTP handler that assigns the oldest
// waiting token of a queue. An empty queue answers 204: nothing to
// assign is an expected outcome, not a failure.
// @Summary Assign next token
// @Description Atomically promotes the oldest waiting token to assigned and returns it.
// @Tags tokens
// @Produce json
// @Param id path string true "Queue ID"
// @Success 200 {object} handlers.TokenResponse "Assigned token"
// @Success 204 "No waiting tokens"
// @Failure 400 {object} handlers.ErrorResponse "Invalid queue id"
// @Failure 404 {object} handlers.ErrorResponse "Queue not found"
// @Security BearerAuth
// @Router /queues/{id}/assign [put]
func NewAssignNextHandler(svc Assigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queueID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid queue id"})
			return
		}

		token, err := svc.AssignNext(r.Context(), queueID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrQueueEmpty):
				w.WriteHeader(http.StatusNoContent)
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
		json.NewEncoder(w).Encode(TokenResponse{Success: true, Token: token})
	}
}

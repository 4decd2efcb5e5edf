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

// Enqueuer defines the interface that the token service must implement.
type Enqueuer interface {
	Enqueue(ctx context.Context, queueID uuid.UUID, name string) (*models.TokenDB, error)
}

// EnqueueRequest represents the JSON body for adding a token to a queue
// swagger:model EnqueueRequest
type EnqueueRequest struct {
	// Participant name
	// required: true
	// default: Alice
	Name string `json:"name"`
}

// TokenResponse wraps a single token in the response envelope
// swagger:model TokenResponse
type TokenResponse struct {
	Success bool            `json:"success"`
	Token   *models.TokenDB `json:"token"`
}

// NewEnqueueHandler returns an HTTP handler that appends a token to a queue.
// @Summary Enqueue a token
// @Description Creates a waiting token at the back of the queue.
// @Tags tokens
// @Accept json
// @Produce json
// @Param id path string true "Queue ID"
// @Param enqueueRequest body handlers.EnqueueRequest true "Token enqueue request"
// @Success 201 {object} handlers.TokenResponse "Token enqueued"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 404 {object} handlers.ErrorResponse "Queue not found"
// @Security BearerAuth
// @Router /queues/{id}/tokens [post]
func NewEnqueueHandler(svc Enqueuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queueID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid queue id"})
			return
		}

		var req EnqueueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid request body"})
			return
		}

		token, err := svc.Enqueue(r.Context(), queueID, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyTokenName):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Token name must not be empty"})
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

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(TokenResponse{Success: true, Token: token})
	}
}

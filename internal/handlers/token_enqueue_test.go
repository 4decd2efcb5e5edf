package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-queue/internal/handlers"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
	"github.com/sbilibin2017/gw-token-queue/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestEnqueueHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := handlers.NewMockEnqueuer(ctrl)

	router := chi.NewRouter()
	router.Post("/queues/{id}/tokens", handlers.NewEnqueueHandler(mockSvc))

	queueID := uuid.New()

	tests := []struct {
		name       string
		url        string
		body       string
		token      *models.TokenDB
		svcErr     error
		wantStatus int
		skipCall   bool
	}{
		{
			name:       "token enqueued",
			url:        "/queues/" + queueID.String() + "/tokens",
			body:       `{"name":"Alice"}`,
			token:      &models.TokenDB{TokenID: uuid.New(), QueueID: queueID, Name: "Alice", Status: models.StatusWaiting, Seq: 1},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid queue id",
			url:        "/queues/not-a-uuid/tokens",
			body:       `{"name":"Alice"}`,
			wantStatus: http.StatusBadRequest,
			skipCall:   true,
		},
		{
			name:       "invalid json",
			url:        "/queues/" + queueID.String() + "/tokens",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
			skipCall:   true,
		},
		{
			name:       "empty token name",
			url:        "/queues/" + queueID.String() + "/tokens",
			body:       `{"name":""}`,
			svcErr:     services.ErrEmptyTokenName,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "queue not found",
			url:        "/queues/" + queueID.String() + "/tokens",
			body:       `{"name":"Alice"}`,
			svcErr:     services.ErrQueueNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "internal error",
			url:        "/queues/" + queueID.String() + "/tokens",
			body:       `{"name":"Alice"}`,
			svcErr:     errors.New("db error"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.skipCall {
				mockSvc.EXPECT().
					Enqueue(gomock.Any(), queueID, gomock.Any()).
					Return(tt.token, tt.svcErr)
			}

			req := httptest.NewRequest(http.MethodPost, tt.url, bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				var resp handlers.TokenResponse
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.True(t, resp.Success)
				assert.Equal(t, "Alice", resp.Token.Name)
				assert.Equal(t, models.StatusWaiting, resp.Token.Status)
			}
		})
	}
}

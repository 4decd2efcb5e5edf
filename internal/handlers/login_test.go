package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-queue/internal/handlers"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
	"github.com/sbilibin2017/gw-token-queue/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := handlers.NewMockLoginer(ctrl)
	handler := handlers.NewLoginHandler(mockSvc)

	user := &models.UserDB{UserID: uuid.New(), Username: "alice"}

	tests := []struct {
		name       string
		body       string
		token      string
		user       *models.UserDB
		svcErr     error
		wantStatus int
		skipCall   bool
	}{
		{
			name:       "successful login",
			body:       `{"username":"alice","password":"secret"}`,
			token:      "token123",
			user:       user,
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid json",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
			skipCall:   true,
		},
		{
			name:       "unknown user",
			body:       `{"username":"ghost","password":"secret"}`,
			svcErr:     services.ErrUserDoesNotExist,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong password",
			body:       `{"username":"alice","password":"wrong"}`,
			svcErr:     services.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "internal error",
			body:       `{"username":"alice","password":"secret"}`,
			svcErr:     errors.New("db error"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.skipCall {
				mockSvc.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(tt.token, tt.user, tt.svcErr)
			}

			req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var resp handlers.LoginResponse
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.True(t, resp.Success)
				assert.Equal(t, "token123", resp.Token)
				assert.Equal(t, "alice", resp.User.Username)
			}
		})
	}
}

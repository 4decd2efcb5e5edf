package services_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
	"github.com/sbilibin2017/gw-token-queue/internal/services"
	"github.com/stretchr/testify/assert"
)

func newTokenService(t *testing.T) (*services.TokenService, *services.MockTokenWriter, *services.MockTokenReader, *services.MockQueueReader, *services.MockKafkaWriter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockWriter := services.NewMockTokenWriter(ctrl)
	mockReader := services.NewMockTokenReader(ctrl)
	mockQueues := services.NewMockQueueReader(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewTokenService(mockWriter, mockReader, mockQueues, mockKafka)
	return svc, mockWriter, mockReader, mockQueues, mockKafka
}

func TestTokenService_Enqueue(t *testing.T) {
	queueID := uuid.New()

	t.Run("empty name rejected", func(t *testing.T) {
		svc, _, _, _, _ := newTokenService(t)
		token, err := svc.Enqueue(context.Background(), queueID, "")
		assert.ErrorIs(t, err, services.ErrEmptyTokenName)
		assert.Nil(t, token)
	})

	t.Run("unknown queue rejected", func(t *testing.T) {
		svc, _, _, mockQueues, _ := newTokenService(t)
		mockQueues.EXPECT().Exists(gomock.Any(), queueID).Return(false, nil)

		token, err := svc.Enqueue(context.Background(), queueID, "Alice")
		assert.ErrorIs(t, err, services.ErrQueueNotFound)
		assert.Nil(t, token)
	})

	t.Run("queue check error propagated", func(t *testing.T) {
		svc, _, _, mockQueues, _ := newTokenService(t)
		mockQueues.EXPECT().Exists(gomock.Any(), queueID).Return(false, errors.New("db error"))

		token, err := svc.Enqueue(context.Background(), queueID, "Alice")
		assert.EqualError(t, err, "db error")
		assert.Nil(t, token)
	})

	t.Run("success publishes event", func(t *testing.T) {
		svc, mockWriter, _, mockQueues, mockKafka := newTokenService(t)
		saved := &models.TokenDB{TokenID: uuid.New(), QueueID: queueID, Name: "Alice", Status: models.StatusWaiting, Seq: 1}

		mockQueues.EXPECT().Exists(gomock.Any(), queueID).Return(true, nil)
		mockWriter.EXPECT().Save(gomock.Any(), queueID, "Alice").Return(saved, nil)
		mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		token, err := svc.Enqueue(context.Background(), queueID, "Alice")
		assert.NoError(t, err)
		assert.Equal(t, saved, token)
	})

	t.Run("kafka failure does not fail the enqueue", func(t *testing.T) {
		svc, mockWriter, _, mockQueues, mockKafka := newTokenService(t)
		saved := &models.TokenDB{TokenID: uuid.New(), QueueID: queueID, Name: "Alice", Status: models.StatusWaiting, Seq: 1}

		mockQueues.EXPECT().Exists(gomock.Any(), queueID).Return(true, nil)
		mockWriter.EXPECT().Save(gomock.Any(), queueID, "Alice").Return(saved, nil)
		mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		token, err := svc.Enqueue(context.Background(), queueID, "Alice")
		assert.NoError(t, err)
		assert.Equal(t, saved, token)
	})
}

func TestTokenService_EnqueueWithoutKafkaWriter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockTokenWriter(ctrl)
	mockReader := services.NewMockTokenReader(ctrl)
	mockQueues := services.NewMockQueueReader(ctrl)

	svc := services.NewTokenService(mockWriter, mockReader, mockQueues, nil)

	queueID := uuid.New()
	saved := &models.TokenDB{TokenID: uuid.New(), QueueID: queueID, Name: "Alice", Status: models.StatusWaiting, Seq: 1}

	mockQueues.EXPECT().Exists(gomock.Any(), queueID).Return(true, nil)
	mockWriter.EXPECT().Save(gomock.Any(), queueID, "Alice").Return(saved, nil)

	token, err := svc.Enqueue(context.Background(), queueID, "Alice")
	assert.NoError(t, err)
	assert.Equal(t, saved, token)
}

func TestTokenService_ListWaiting(t *testing.T) {
	queueID := uuid.New()

	t.Run("unknown queue rejected", func(t *testing.T) {
		svc, _, _, mockQueues, _ := newTokenService(t)
		mockQueues.EXPECT().Exists(gomock.Any(), queueID).Return(false, nil)

		tokens, err := svc.ListWaiting(context.Background(), queueID)
		assert.ErrorIs(t, err, services.ErrQueueNotFound)
		assert.Nil(t, tokens)
	})

	t.Run("returns tokens in order", func(t *testing.T) {
		svc, _, mockReader, mockQueues, _ := newTokenService(t)
		waiting := []models.TokenDB{
			{TokenID: uuid.New(), QueueID: queueID, Name: "Alice", Status: models.StatusWaiting, Seq: 1},
			{TokenID: uuid.New(), QueueID: queueID, Name: "Bob", Status: models.StatusWaiting, Seq: 2},
		}
		mockQueues.EXPECT().Exists(gomock.Any(), queueID).Return(true, nil)
		mockReader.EXPECT().ListWaiting(gomock.Any(), queueID).Return(waiting, nil)

		tokens, err := svc.ListWaiting(context.Background(), queueID)
		assert.NoError(t, err)
		assert.Equal(t, waiting, tokens)
	})
}

func TestTokenService_AssignNext(t *testing.T) {
	queueID := uuid.New()

	t.Run("unknown queue rejected", func(t *testing.T) {
		svc, _, _, mockQueues, _ := newTokenService(t)
		mockQueues.EXPECT().Exists(gomock.Any(), queueID).Return(false, nil)

		token, err := svc.AssignNext(context.Background(), queueID)
		assert.ErrorIs(t, err, services.ErrQueueNotFound)
		assert.Nil(t, token)
	})

	t.Run("empty queue maps to ErrQueueEmpty", func(t *testing.T) {
		svc, mockWriter, _, mockQueues, _ := newTokenService(t)
		mockQueues.EXPECT().Exists(gomock.Any(), queueID).Return(true, nil)
		mockWriter.EXPECT().AssignNext(gomock.Any(), queueID).Return(nil, sql.ErrNoRows)

		token, err := svc.AssignNext(context.Background(), queueID)
		assert.ErrorIs(t, err, services.ErrQueueEmpty)
		assert.Nil(t, token)
	})

	t.Run("store error propagated untouched", func(t *testing.T) {
		svc, mockWriter, _, mockQueues, _ := newTokenService(t)
		mockQueues.EXPECT().Exists(gomock.Any(), queueID).Return(true, nil)
		mockWriter.EXPECT().AssignNext(gomock.Any(), queueID).Return(nil, errors.New("deadlock"))

		token, err := svc.AssignNext(context.Background(), queueID)
		assert.EqualError(t, err, "deadlock")
		assert.NotErrorIs(t, err, services.ErrQueueEmpty)
		assert.Nil(t, token)
	})

	t.Run("success publishes event", func(t *testing.T) {
		svc, mockWriter, _, mockQueues, mockKafka := newTokenService(t)
		assigned := &models.TokenDB{TokenID: uuid.New(), QueueID: queueID, Name: "Alice", Status: models.StatusAssigned, Seq: 1}

		mockQueues.EXPECT().Exists(gomock.Any(), queueID).Return(true, nil)
		mockWriter.EXPECT().AssignNext(gomock.Any(), queueID).Return(assigned, nil)
		mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		token, err := svc.AssignNext(context.Background(), queueID)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusAssigned, token.Status)
	})
}

func TestTokenService_Cancel(t *testing.T) {
	tokenID := uuid.New()

	t.Run("missing token", func(t *testing.T) {
		svc, mockWriter, mockReader, _, _ := newTokenService(t)
		mockWriter.EXPECT().Cancel(gomock.Any(), tokenID).Return(nil, sql.ErrNoRows)
		mockReader.EXPECT().GetByID(gomock.Any(), tokenID).Return(nil, nil)

		token, err := svc.Cancel(context.Background(), tokenID)
		assert.ErrorIs(t, err, services.ErrTokenNotFound)
		assert.Nil(t, token)
	})

	t.Run("token already assigned", func(t *testing.T) {
		svc, mockWriter, mockReader, _, _ := newTokenService(t)
		existing := &models.TokenDB{TokenID: tokenID, Status: models.StatusAssigned}
		mockWriter.EXPECT().Cancel(gomock.Any(), tokenID).Return(nil, sql.ErrNoRows)
		mockReader.EXPECT().GetByID(gomock.Any(), tokenID).Return(existing, nil)

		token, err := svc.Cancel(context.Background(), tokenID)
		assert.ErrorIs(t, err, services.ErrTokenNotWaiting)
		assert.Nil(t, token)
	})

	t.Run("token already cancelled", func(t *testing.T) {
		svc, mockWriter, mockReader, _, _ := newTokenService(t)
		existing := &models.TokenDB{TokenID: tokenID, Status: models.StatusCancelled}
		mockWriter.EXPECT().Cancel(gomock.Any(), tokenID).Return(nil, sql.ErrNoRows)
		mockReader.EXPECT().GetByID(gomock.Any(), tokenID).Return(existing, nil)

		token, err := svc.Cancel(context.Background(), tokenID)
		assert.ErrorIs(t, err, services.ErrTokenNotWaiting)
		assert.Nil(t, token)
	})

	t.Run("success publishes event", func(t *testing.T) {
		svc, mockWriter, _, _, mockKafka := newTokenService(t)
		cancelled := &models.TokenDB{TokenID: tokenID, Status: models.StatusCancelled, Seq: 1}
		mockWriter.EXPECT().Cancel(gomock.Any(), tokenID).Return(cancelled, nil)
		mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		token, err := svc.Cancel(context.Background(), tokenID)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, token.Status)
	})
}

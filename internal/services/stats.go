package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-queue/internal/logger"
	"github.com/sbilibin2017/gw-token-queue/internal/models"
)

// StatsReader aggregates token counts per queue.
type StatsReader interface {
	CountsByQueue(ctx context.Context) (map[uuid.UUID]models.QueueStats, error)
}

// StatsService exposes the analytics aggregate.
type StatsService struct {
	readRepo StatsReader
}

// NewStatsService creates a new StatsService.
func NewStatsService(readRepo StatsReader) *StatsService {
	return &StatsService{readRepo: readRepo}
}

// CountsByQueue returns waiting/assigned/cancelled counts for every queue.
func (s *StatsService) CountsByQueue(ctx context.Context) (map[uuid.UUID]models.QueueStats, error) {
	counts, err := s.readRepo.CountsByQueue(ctx)
	if err != nil {
		logger.Log.Errorw("failed to aggregate token counts", "error", err)
		return nil, err
	}
	return counts, nil
}

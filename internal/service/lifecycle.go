package service

import (
	"context"
	"time"

	"toolrent-core/internal/logger"
	"toolrent-core/internal/repository"
)

type lifecycleService struct {
	store repository.Store
}

func NewLifecycleService(store repository.Store) LifecycleService {
	return &lifecycleService{store: store}
}

// SweepOverdue flips ACTIVE contracts whose estimated end date has passed to
// OVERDUE. One bulk update, idempotent, touches nothing but the status:
// returns and payments keep flowing on an overdue contract.
func (s *lifecycleService) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.store.Contracts().MarkOverdue(ctx, now)
	if err != nil {
		logger.Error("Failed to mark overdue contracts", "error", err)
		return 0, err
	}
	logger.Info("Marked contracts as overdue", "count", count)
	return count, nil
}

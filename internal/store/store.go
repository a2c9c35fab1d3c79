package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"schedule-console/internal/model"
)

// Store persists the workflow run history.
type Store interface {
	RecordRun(ctx context.Context, run *model.WorkflowRun) error
	RecentRuns(ctx context.Context, limit int) ([]model.WorkflowRun, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// RecordRun inserts a finished run.
func (s *gormStore) RecordRun(ctx context.Context, run *model.WorkflowRun) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record %s run %s: %w", run.Kind, run.ID, err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *gormStore) RecentRuns(ctx context.Context, limit int) ([]model.WorkflowRun, error) {
	if limit <= 0 {
		limit = DefaultRecentRuns
	}
	runs := []model.WorkflowRun{}
	if err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent runs: %w", err)
	}
	return runs, nil
}

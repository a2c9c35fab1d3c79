package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"schedule-console/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func newSQLiteDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.WorkflowRun{}))

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return gormDB
}

func TestGormStore_RecentRuns_SQLMock(t *testing.T) {
	now := time.Now().UTC()

	testCases := []struct {
		name             string
		limit            int
		mockExpectations func(mock sqlmock.Sqlmock)
		expectedIDs      []string
		expectedErr      bool
	}{
		{
			name:  "returns rows in query order",
			limit: 2,
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "workflow_runs" ORDER BY started_at DESC LIMIT`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "outcome", "started_at", "finished_at"}).
						AddRow("run-2", "generate", "failed", now, now).
						AddRow("run-1", "seed", "succeeded", now.Add(-time.Minute), now.Add(-time.Minute)))
			},
			expectedIDs: []string{"run-2", "run-1"},
		},
		{
			name:  "empty history",
			limit: 0,
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "workflow_runs"`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "outcome", "started_at", "finished_at"}))
			},
			expectedIDs: []string{},
		},
		{
			name:  "database error",
			limit: 5,
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "workflow_runs"`).
					WillReturnError(errors.New("connection reset"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			store := NewGormStore(gormDB)

			tc.mockExpectations(mock)

			runs, err := store.RecentRuns(context.Background(), tc.limit)

			if tc.expectedErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				ids := make([]string, 0, len(runs))
				for _, r := range runs {
					ids = append(ids, r.ID)
				}
				assert.Equal(t, tc.expectedIDs, ids)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_RecordRun_BeginFails(t *testing.T) {
	gormDB, mock := newTestDB(t)
	store := NewGormStore(gormDB)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	err := store.RecordRun(context.Background(), &model.WorkflowRun{ID: "run-1", Kind: model.WorkflowSeed, Outcome: model.OutcomeFailed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record seed run run-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_RecordAndList_SQLite(t *testing.T) {
	store := NewGormStore(newSQLiteDB(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for i, kind := range []model.WorkflowKind{model.WorkflowSeed, model.WorkflowGenerate, model.WorkflowRefresh} {
		run := &model.WorkflowRun{
			ID:         fmt.Sprintf("run-%d", i),
			Kind:       kind,
			Outcome:    model.OutcomeSucceeded,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
		}
		if kind == model.WorkflowGenerate {
			run.StartDate, run.EndDate = "2025-01-01", "2025-01-07"
			run.Conflicts = 2
		}
		require.NoError(t, store.RecordRun(ctx, run))
	}

	runs, err := store.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, model.WorkflowRefresh, runs[0].Kind)
	assert.Equal(t, "run-1", runs[1].ID)
	assert.Equal(t, "2025-01-07", runs[1].EndDate)
	assert.Equal(t, 2, runs[1].Conflicts)
	assert.Equal(t, time.Second, runs[1].Duration())

	err = store.RecordRun(ctx, &model.WorkflowRun{ID: "run-0", Kind: model.WorkflowSeed, Outcome: model.OutcomeFailed, StartedAt: base, FinishedAt: base})
	assert.Error(t, err, "duplicate ids are rejected")
}

package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// MockMissionStore implements store.MissionStore for testing
type MockMissionStore struct {
	ListMissionsFn        func(ctx context.Context) ([]*domain.Mission, error)
	GetMissionFn          func(ctx context.Context, missionID string) (*domain.Mission, error)
	EnsureProgressFn      func(ctx context.Context, progress *domain.MissionProgress) error
	ListOpenProgressFn    func(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.MissionProgress, error)
	ListCurrentProgressFn func(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.MissionProgress, error)
	UpdateProgressFn      func(ctx context.Context, progress *domain.MissionProgress) error
}

var _ store.MissionStore = (*MockMissionStore)(nil)

func (m *MockMissionStore) ListMissions(ctx context.Context) ([]*domain.Mission, error) {
	if m.ListMissionsFn != nil {
		return m.ListMissionsFn(ctx)
	}
	return nil, nil
}

func (m *MockMissionStore) GetMission(ctx context.Context, missionID string) (*domain.Mission, error) {
	if m.GetMissionFn != nil {
		return m.GetMissionFn(ctx, missionID)
	}
	return nil, store.ErrMissionNotFound
}

func (m *MockMissionStore) EnsureProgress(ctx context.Context, progress *domain.MissionProgress) error {
	if m.EnsureProgressFn != nil {
		return m.EnsureProgressFn(ctx, progress)
	}
	return nil
}

func (m *MockMissionStore) ListOpenProgress(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.MissionProgress, error) {
	if m.ListOpenProgressFn != nil {
		return m.ListOpenProgressFn(ctx, userID, now)
	}
	return nil, nil
}

func (m *MockMissionStore) ListCurrentProgress(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.MissionProgress, error) {
	if m.ListCurrentProgressFn != nil {
		return m.ListCurrentProgressFn(ctx, userID, now)
	}
	return nil, nil
}

func (m *MockMissionStore) UpdateProgress(ctx context.Context, progress *domain.MissionProgress) error {
	if m.UpdateProgressFn != nil {
		return m.UpdateProgressFn(ctx, progress)
	}
	return nil
}

func (m *MockMissionStore) WithTx(tx *sql.Tx) store.MissionStore {
	return m
}

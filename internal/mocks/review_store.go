package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// MockReviewStateStore implements store.ReviewStateStore for testing
type MockReviewStateStore struct {
	CreateFn       func(ctx context.Context, state *domain.ReviewState) error
	GetFn          func(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error)
	GetForUpdateFn func(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error)
	UpdateFn       func(ctx context.Context, state *domain.ReviewState) error
	CountDueFn     func(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
}

var _ store.ReviewStateStore = (*MockReviewStateStore)(nil)

func (m *MockReviewStateStore) Create(ctx context.Context, state *domain.ReviewState) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, state)
	}
	return nil
}

func (m *MockReviewStateStore) Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, cardID)
	}
	return nil, store.ErrReviewStateNotFound
}

func (m *MockReviewStateStore) GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.ReviewState, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, userID, cardID)
	}
	return nil, store.ErrReviewStateNotFound
}

func (m *MockReviewStateStore) Update(ctx context.Context, state *domain.ReviewState) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, state)
	}
	return nil
}

func (m *MockReviewStateStore) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	if m.CountDueFn != nil {
		return m.CountDueFn(ctx, userID, now)
	}
	return 0, nil
}

func (m *MockReviewStateStore) WithTx(tx *sql.Tx) store.ReviewStateStore {
	return m
}

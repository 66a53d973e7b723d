package mocks

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// MockPetStore implements store.PetStore for testing
type MockPetStore struct {
	CreateInstanceFn     func(ctx context.Context, instance *domain.PetInstance) error
	GetActiveFn          func(ctx context.Context, userID uuid.UUID) (*domain.PetInstance, error)
	GetActiveForUpdateFn func(ctx context.Context, userID uuid.UUID) (*domain.PetInstance, error)
	GetByPetIDFn         func(ctx context.Context, userID uuid.UUID, petID string) (*domain.PetInstance, error)
	ListByUserFn         func(ctx context.Context, userID uuid.UUID) ([]*domain.PetInstance, error)
	UpdateInstanceFn     func(ctx context.Context, instance *domain.PetInstance) error
	ActivateFn           func(ctx context.Context, userID, instanceID uuid.UUID) error
	SetActiveOutfitFn    func(ctx context.Context, userID uuid.UUID, metadata json.RawMessage) error
	GetPetFn             func(ctx context.Context, petID string) (*domain.Pet, error)
}

var _ store.PetStore = (*MockPetStore)(nil)

func (m *MockPetStore) CreateInstance(ctx context.Context, instance *domain.PetInstance) error {
	if m.CreateInstanceFn != nil {
		return m.CreateInstanceFn(ctx, instance)
	}
	return nil
}

func (m *MockPetStore) GetActive(ctx context.Context, userID uuid.UUID) (*domain.PetInstance, error) {
	if m.GetActiveFn != nil {
		return m.GetActiveFn(ctx, userID)
	}
	return nil, store.ErrPetNotFound
}

func (m *MockPetStore) GetActiveForUpdate(ctx context.Context, userID uuid.UUID) (*domain.PetInstance, error) {
	if m.GetActiveForUpdateFn != nil {
		return m.GetActiveForUpdateFn(ctx, userID)
	}
	return nil, store.ErrPetNotFound
}

func (m *MockPetStore) GetByPetID(ctx context.Context, userID uuid.UUID, petID string) (*domain.PetInstance, error) {
	if m.GetByPetIDFn != nil {
		return m.GetByPetIDFn(ctx, userID, petID)
	}
	return nil, store.ErrPetNotFound
}

func (m *MockPetStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PetInstance, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *MockPetStore) UpdateInstance(ctx context.Context, instance *domain.PetInstance) error {
	if m.UpdateInstanceFn != nil {
		return m.UpdateInstanceFn(ctx, instance)
	}
	return nil
}

func (m *MockPetStore) Activate(ctx context.Context, userID, instanceID uuid.UUID) error {
	if m.ActivateFn != nil {
		return m.ActivateFn(ctx, userID, instanceID)
	}
	return nil
}

func (m *MockPetStore) SetActiveOutfit(ctx context.Context, userID uuid.UUID, metadata json.RawMessage) error {
	if m.SetActiveOutfitFn != nil {
		return m.SetActiveOutfitFn(ctx, userID, metadata)
	}
	return nil
}

func (m *MockPetStore) GetPet(ctx context.Context, petID string) (*domain.Pet, error) {
	if m.GetPetFn != nil {
		return m.GetPetFn(ctx, petID)
	}
	return &domain.Pet{ID: petID, Name: "Cyber Cat", Archetype: "MOTIVATOR"}, nil
}

func (m *MockPetStore) WithTx(tx *sql.Tx) store.PetStore {
	return m
}

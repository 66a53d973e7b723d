package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
)

// PetStore defines the interface for pet instance persistence.
type PetStore interface {
	// CreateInstance saves a new pet instance.
	// It handles domain validation internally.
	// Returns ErrPetAlreadyOwned if the user already owns this pet.
	CreateInstance(ctx context.Context, instance *domain.PetInstance) error

	// GetActive retrieves the user's single active pet instance.
	// Returns ErrPetNotFound if the user has no active pet.
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.PetInstance, error)

	// GetActiveForUpdate retrieves the active pet with a row-level lock
	// using SELECT FOR UPDATE, for read-modify-write inside a transaction.
	// Returns ErrPetNotFound if the user has no active pet.
	GetActiveForUpdate(ctx context.Context, userID uuid.UUID) (*domain.PetInstance, error)

	// GetByPetID retrieves the user's instance of a specific pet definition.
	// Returns ErrPetNotFound if the user does not own this pet.
	GetByPetID(ctx context.Context, userID uuid.UUID, petID string) (*domain.PetInstance, error)

	// ListByUser returns all pet instances the user owns.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PetInstance, error)

	// UpdateInstance modifies an existing pet instance (level, experience,
	// stats, outfit). The ID field identifies the record.
	// Returns ErrPetNotFound if the instance does not exist.
	UpdateInstance(ctx context.Context, instance *domain.PetInstance) error

	// Activate makes the given instance the user's only active pet:
	// deactivate-all plus activate-one, which must run inside a transaction
	// keyed by the user so two concurrent activations cannot leave two pets
	// active. A partial unique index backs this up in the schema.
	// Returns ErrPetNotFound if the instance does not exist or is not the user's.
	Activate(ctx context.Context, userID, instanceID uuid.UUID) error

	// SetActiveOutfit applies cosmetic metadata to the user's active pet.
	// A nil metadata reverts the pet to its default look.
	// Returns ErrPetNotFound if the user has no active pet.
	SetActiveOutfit(ctx context.Context, userID uuid.UUID, metadata json.RawMessage) error

	// GetPet retrieves pet reference data by ID.
	// Returns ErrPetNotFound if no such pet definition exists.
	GetPet(ctx context.Context, petID string) (*domain.Pet, error)

	// WithTx returns a new PetStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) PetStore
}

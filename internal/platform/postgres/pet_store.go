package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/logger"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// PostgresPetStore implements the store.PetStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPetStore creates a new PostgreSQL implementation of the PetStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPetStore(db store.DBTX, logger *slog.Logger) *PostgresPetStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPetStore{
		db:     db,
		logger: logger.With(slog.String("component", "pet_store")),
	}
}

// Ensure PostgresPetStore implements store.PetStore interface
var _ store.PetStore = (*PostgresPetStore)(nil)

// WithTx implements store.PetStore.WithTx
func (s *PostgresPetStore) WithTx(tx *sql.Tx) store.PetStore {
	return &PostgresPetStore{
		db:     tx,
		logger: s.logger,
	}
}

const petInstanceColumns = `
	id, user_id, pet_id, level, experience, is_active,
	mood, hunger, affection, active_outfit, created_at, updated_at
`

// CreateInstance implements store.PetStore.CreateInstance
// Returns store.ErrPetAlreadyOwned if the user already owns this pet.
func (s *PostgresPetStore) CreateInstance(ctx context.Context, instance *domain.PetInstance) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := instance.Validate(); err != nil {
		log.Warn("pet instance validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", instance.UserID.String()),
			slog.String("pet_id", instance.PetID))
		return err
	}

	query := `
		INSERT INTO pet_instances (
			id, user_id, pet_id, level, experience, is_active,
			mood, hunger, affection, active_outfit, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		instance.ID,
		instance.UserID,
		instance.PetID,
		instance.Level,
		instance.Experience,
		instance.IsActive,
		instance.Mood,
		instance.Hunger,
		instance.Affection,
		nullableJSON(instance.ActiveOutfit),
		instance.CreatedAt,
		instance.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrPetAlreadyOwned
		}
		log.Error("failed to create pet instance",
			slog.String("error", err.Error()),
			slog.String("user_id", instance.UserID.String()),
			slog.String("pet_id", instance.PetID))
		return MapError(err)
	}

	log.Info("pet instance created",
		slog.String("user_id", instance.UserID.String()),
		slog.String("pet_id", instance.PetID))
	return nil
}

// GetActive implements store.PetStore.GetActive
func (s *PostgresPetStore) GetActive(ctx context.Context, userID uuid.UUID) (*domain.PetInstance, error) {
	return s.getActive(ctx, userID, false)
}

// GetActiveForUpdate implements store.PetStore.GetActiveForUpdate
func (s *PostgresPetStore) GetActiveForUpdate(ctx context.Context, userID uuid.UUID) (*domain.PetInstance, error) {
	return s.getActive(ctx, userID, true)
}

func (s *PostgresPetStore) getActive(ctx context.Context, userID uuid.UUID, forUpdate bool) (*domain.PetInstance, error) {
	query := `
		SELECT ` + petInstanceColumns + `
		FROM pet_instances
		WHERE user_id = $1 AND is_active
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	return s.scanOne(ctx, query, userID)
}

// GetByPetID implements store.PetStore.GetByPetID
func (s *PostgresPetStore) GetByPetID(ctx context.Context, userID uuid.UUID, petID string) (*domain.PetInstance, error) {
	query := `
		SELECT ` + petInstanceColumns + `
		FROM pet_instances
		WHERE user_id = $1 AND pet_id = $2
	`
	return s.scanOne(ctx, query, userID, petID)
}

func (s *PostgresPetStore) scanOne(ctx context.Context, query string, args ...any) (*domain.PetInstance, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var instance domain.PetInstance
	var outfit []byte
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&instance.ID,
		&instance.UserID,
		&instance.PetID,
		&instance.Level,
		&instance.Experience,
		&instance.IsActive,
		&instance.Mood,
		&instance.Hunger,
		&instance.Affection,
		&outfit,
		&instance.CreatedAt,
		&instance.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrPetNotFound
		}
		log.Error("failed to get pet instance", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	instance.ActiveOutfit = outfit
	return &instance, nil
}

// ListByUser implements store.PetStore.ListByUser
func (s *PostgresPetStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PetInstance, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + petInstanceColumns + `
		FROM pet_instances
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list pet instances",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var instances []*domain.PetInstance
	for rows.Next() {
		var instance domain.PetInstance
		var outfit []byte
		err := rows.Scan(
			&instance.ID,
			&instance.UserID,
			&instance.PetID,
			&instance.Level,
			&instance.Experience,
			&instance.IsActive,
			&instance.Mood,
			&instance.Hunger,
			&instance.Affection,
			&outfit,
			&instance.CreatedAt,
			&instance.UpdatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		instance.ActiveOutfit = outfit
		instances = append(instances, &instance)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return instances, nil
}

// UpdateInstance implements store.PetStore.UpdateInstance
// Returns store.ErrPetNotFound if the instance does not exist.
func (s *PostgresPetStore) UpdateInstance(ctx context.Context, instance *domain.PetInstance) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := instance.Validate(); err != nil {
		log.Warn("pet instance validation failed during update",
			slog.String("error", err.Error()),
			slog.String("pet_instance_id", instance.ID.String()))
		return err
	}

	query := `
		UPDATE pet_instances
		SET level = $1, experience = $2, is_active = $3, mood = $4,
		    hunger = $5, affection = $6, active_outfit = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		instance.Level,
		instance.Experience,
		instance.IsActive,
		instance.Mood,
		instance.Hunger,
		instance.Affection,
		nullableJSON(instance.ActiveOutfit),
		time.Now().UTC(),
		instance.ID,
	)
	if err != nil {
		log.Error("failed to update pet instance",
			slog.String("error", err.Error()),
			slog.String("pet_instance_id", instance.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, "pet")
}

// Activate implements store.PetStore.Activate
// Deactivate-all then activate-one, in that order, so the partial unique
// index on (user_id) WHERE is_active never trips mid-operation. Both
// statements must run inside the caller's transaction.
func (s *PostgresPetStore) Activate(ctx context.Context, userID, instanceID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	deactivate := `
		UPDATE pet_instances
		SET is_active = FALSE, updated_at = $1
		WHERE user_id = $2 AND is_active
	`
	if _, err := s.db.ExecContext(ctx, deactivate, now, userID); err != nil {
		log.Error("failed to deactivate pets",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	activate := `
		UPDATE pet_instances
		SET is_active = TRUE, updated_at = $1
		WHERE id = $2 AND user_id = $3
	`
	result, err := s.db.ExecContext(ctx, activate, now, instanceID, userID)
	if err != nil {
		log.Error("failed to activate pet",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("pet_instance_id", instanceID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, "pet")
}

// SetActiveOutfit implements store.PetStore.SetActiveOutfit
// Returns store.ErrPetNotFound if the user has no active pet.
func (s *PostgresPetStore) SetActiveOutfit(ctx context.Context, userID uuid.UUID, metadata json.RawMessage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE pet_instances
		SET active_outfit = $1, updated_at = $2
		WHERE user_id = $3 AND is_active
	`
	result, err := s.db.ExecContext(ctx, query, nullableJSON(metadata), time.Now().UTC(), userID)
	if err != nil {
		log.Error("failed to set active outfit",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, "pet")
}

// GetPet implements store.PetStore.GetPet
func (s *PostgresPetStore) GetPet(ctx context.Context, petID string) (*domain.Pet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, archetype, image
		FROM pets
		WHERE id = $1
	`

	var pet domain.Pet
	err := s.db.QueryRowContext(ctx, query, petID).Scan(
		&pet.ID,
		&pet.Name,
		&pet.Archetype,
		&pet.Image,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrPetNotFound
		}
		log.Error("failed to get pet",
			slog.String("error", err.Error()),
			slog.String("pet_id", petID))
		return nil, MapError(err)
	}

	return &pet, nil
}

// nullableJSON converts empty metadata to a NULL column value.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

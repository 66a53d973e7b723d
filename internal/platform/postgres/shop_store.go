package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/truongtuankiet1/AIFlashCard/internal/domain"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/logger"
	"github.com/truongtuankiet1/AIFlashCard/internal/store"
)

// PostgresShopStore implements the store.ShopStore interface
// using a PostgreSQL database as the storage backend.
type PostgresShopStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresShopStore creates a new PostgreSQL implementation of the ShopStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresShopStore(db store.DBTX, logger *slog.Logger) *PostgresShopStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresShopStore{
		db:     db,
		logger: logger.With(slog.String("component", "shop_store")),
	}
}

// Ensure PostgresShopStore implements store.ShopStore interface
var _ store.ShopStore = (*PostgresShopStore)(nil)

// WithTx implements store.ShopStore.WithTx
func (s *PostgresShopStore) WithTx(tx *sql.Tx) store.ShopStore {
	return &PostgresShopStore{
		db:     tx,
		logger: s.logger,
	}
}

// ListItems implements store.ShopStore.ListItems
func (s *PostgresShopStore) ListItems(ctx context.Context) ([]*domain.ShopItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, type, rarity, price, pet_id, metadata
		FROM shop_items
		ORDER BY price
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list shop items", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var items []*domain.ShopItem
	for rows.Next() {
		item, err := scanShopItem(rows)
		if err != nil {
			return nil, MapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return items, nil
}

// GetItem implements store.ShopStore.GetItem
func (s *PostgresShopStore) GetItem(ctx context.Context, itemID string) (*domain.ShopItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, type, rarity, price, pet_id, metadata
		FROM shop_items
		WHERE id = $1
	`

	item, err := scanShopItem(s.db.QueryRowContext(ctx, query, itemID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrItemNotFound
		}
		log.Error("failed to get shop item",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID))
		return nil, MapError(err)
	}

	return item, nil
}

// scanTarget matches both *sql.Row and *sql.Rows.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanShopItem(row scanTarget) (*domain.ShopItem, error) {
	var item domain.ShopItem
	var petID sql.NullString
	var metadata []byte

	err := row.Scan(&item.ID, &item.Name, &item.Type, &item.Rarity, &item.Price, &petID, &metadata)
	if err != nil {
		return nil, err
	}

	if petID.Valid {
		item.PetID = petID.String
	}
	item.Metadata = metadata
	return &item, nil
}

// AppendLedger implements store.ShopStore.AppendLedger
// Returns store.ErrPromoAlreadyRedeemed when the partial unique index on
// (user_id, code) for PROMO entries rejects a repeat redemption.
func (s *PostgresShopStore) AppendLedger(ctx context.Context, entry *domain.LedgerEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("ledger entry validation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", entry.UserID.String()))
		return err
	}

	query := `
		INSERT INTO ledger_entries (id, user_id, item_id, code, amount, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		nullableString(entry.ItemID),
		nullableString(entry.Code),
		entry.Amount,
		entry.Type,
		entry.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) && entry.Type == domain.LedgerEntryPromo {
			return store.ErrPromoAlreadyRedeemed
		}
		log.Error("failed to append ledger entry",
			slog.String("error", err.Error()),
			slog.String("user_id", entry.UserID.String()),
			slog.String("type", string(entry.Type)))
		return MapError(err)
	}

	log.Info("ledger entry appended",
		slog.String("user_id", entry.UserID.String()),
		slog.String("type", string(entry.Type)),
		slog.Int64("amount", entry.Amount))
	return nil
}

// HasPurchased implements store.ShopStore.HasPurchased
// Ownership of non-stacking cosmetics is derived from the ledger, not from
// a separate owned-items table.
func (s *PostgresShopStore) HasPurchased(ctx context.Context, userID uuid.UUID, itemID string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM ledger_entries
			WHERE user_id = $1 AND item_id = $2 AND type = 'PURCHASE'
		)
	`

	var owned bool
	if err := s.db.QueryRowContext(ctx, query, userID, itemID).Scan(&owned); err != nil {
		log.Error("failed to check purchase history",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("item_id", itemID))
		return false, MapError(err)
	}

	return owned, nil
}

// ListPurchasedSkins implements store.ShopStore.ListPurchasedSkins
// Skin ownership lives in the ledger; the join recovers the catalog rows so
// clients see full items, not bare IDs.
func (s *PostgresShopStore) ListPurchasedSkins(ctx context.Context, userID uuid.UUID) ([]*domain.ShopItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT DISTINCT i.id, i.name, i.type, i.rarity, i.price, i.pet_id, i.metadata
		FROM ledger_entries l
		JOIN shop_items i ON i.id = l.item_id
		WHERE l.user_id = $1 AND l.type = 'PURCHASE' AND i.type = 'SKIN'
		ORDER BY i.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list purchased skins",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var skins []*domain.ShopItem
	for rows.Next() {
		item, err := scanShopItem(rows)
		if err != nil {
			return nil, MapError(err)
		}
		skins = append(skins, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return skins, nil
}

// nullableString converts an empty string to a NULL column value.
func nullableString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

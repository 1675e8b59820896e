package store

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/feature/catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 200

var (
	// ErrCursorConflict is returned when a set's cursor moved since it was read.
	ErrCursorConflict = errors.New("sync cursor changed concurrently")
	// ErrNoSets is returned when the sets table is empty.
	ErrNoSets = errors.New("no sets stored")
)

// Columns overwritten when a set is upserted. Cursor columns are left alone.
var setColumns = []string{
	"name", "series", "release_date", "total_cards", "printed_total",
	"symbol_url", "logo_url", "catalog_order", "updated_at",
}

var cardColumns = []string{
	"base_card_id", "set_id", "name", "number", "rarity", "types",
	"supertype", "image_small", "image_large", "edition", "updated_at",
}

var priceColumns = []string{"market", "low", "high", "last_updated"}

// Store wraps the catalog tables.
type Store struct {
	db *gorm.DB
}

// New creates a store on db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn with a store bound to one database transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// UpsertSets inserts or refreshes set rows.
func (s *Store) UpsertSets(ctx context.Context, sets []models.Set) error {
	return s.upsert(ctx, &sets, len(sets), "id", setColumns)
}

// UpsertCards inserts or overwrites edition card rows.
func (s *Store) UpsertCards(ctx context.Context, cards []models.Card) error {
	return s.upsert(ctx, &cards, len(cards), "id", cardColumns)
}

// UpsertPrices inserts or overwrites price rows.
func (s *Store) UpsertPrices(ctx context.Context, prices []models.Price) error {
	return s.upsert(ctx, &prices, len(prices), "card_id", priceColumns)
}

func (s *Store) upsert(ctx context.Context, rows any, n int, key string, columns []string) error {
	if n == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: key}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		CreateInBatches(rows, batchSize).Error
	if err != nil {
		return fmt.Errorf("upsert %d rows: %w", n, err)
	}
	return nil
}

// Sets returns every stored set in catalog order.
func (s *Store) Sets(ctx context.Context) ([]models.Set, error) {
	var sets []models.Set
	if err := s.db.WithContext(ctx).Order("catalog_order, id").Find(&sets).Error; err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	if len(sets) == 0 {
		return nil, ErrNoSets
	}
	return sets, nil
}

// Set loads one set by id.
func (s *Store) Set(ctx context.Context, id string) (*models.Set, error) {
	var set models.Set
	if err := s.db.WithContext(ctx).First(&set, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("load set %s: %w", id, err)
	}
	return &set, nil
}

// BaseCardIDs returns up to limit distinct base card ids of a set, starting at offset.
func (s *Store) BaseCardIDs(ctx context.Context, setID string, offset, limit int) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("set_id = ?", setID).
		Distinct("base_card_id").
		Order("base_card_id").
		Offset(offset).
		Limit(limit).
		Pluck("base_card_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("base card ids of %s: %w", setID, err)
	}
	return ids, nil
}

// CardsByBaseID returns every edition row of the given base cards.
func (s *Store) CardsByBaseID(ctx context.Context, baseIDs []string) ([]models.Card, error) {
	if len(baseIDs) == 0 {
		return nil, nil
	}
	var cards []models.Card
	err := s.db.WithContext(ctx).
		Where("base_card_id IN ?", baseIDs).
		Order("id").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("cards by base id: %w", err)
	}
	return cards, nil
}

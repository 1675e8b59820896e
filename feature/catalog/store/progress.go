package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-sync/feature/catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Cursor selects one of the two resumable cursors a set carries.
type Cursor int

const (
	PriceCursor Cursor = iota
	MetadataCursor
)

func (c Cursor) String() string {
	if c == MetadataCursor {
		return "metadata"
	}
	return "price"
}

func (c Cursor) progressColumn() string {
	if c == MetadataCursor {
		return "metadata_sync_progress"
	}
	return "price_sync_progress"
}

func (c Cursor) lastColumn() string {
	if c == MetadataCursor {
		return "last_metadata_sync"
	}
	return "last_price_sync"
}

// Position returns the cursor value and last completion time stored on set.
func (c Cursor) Position(set *models.Set) (int, *time.Time) {
	if c == MetadataCursor {
		return set.MetadataSyncProgress, set.LastMetadataSync
	}
	return set.PriceSyncProgress, set.LastPriceSync
}

// Step describes the outcome of one processed chunk.
type Step struct {
	SetID string
	// From is the cursor the chunk started at.
	From int
	// Processed is the number of base cards the chunk consumed.
	Processed int
	// Total is the declared card count of the set.
	Total int
	// Exhausted is set when the catalog returned no cards at From.
	Exhausted bool
}

// Completes reports whether the step finishes a pass over the set.
func (st Step) Completes() bool {
	return st.Exhausted || st.Processed == 0 || st.From+st.Processed >= st.Total
}

// Advance records a step. A completing step resets the cursor to 0 and stamps
// the matching last-sync column with now; otherwise only the cursor moves.
// The write only applies if the stored cursor still equals st.From.
func (s *Store) Advance(ctx context.Context, c Cursor, st Step, now time.Time) (bool, error) {
	updates := map[string]any{}
	completed := st.Completes()
	if completed {
		updates[c.progressColumn()] = 0
		updates[c.lastColumn()] = now
	} else {
		next := st.From + st.Processed
		if next > st.Total {
			next = st.Total
		}
		updates[c.progressColumn()] = next
	}

	res := s.db.WithContext(ctx).
		Model(&models.Set{}).
		Where("id = ? AND "+c.progressColumn()+" = ?", st.SetID, st.From).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("advance %s cursor of %s: %w", c, st.SetID, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, fmt.Errorf("%s cursor of %s at %d: %w", c, st.SetID, st.From, ErrCursorConflict)
	}
	return completed, nil
}

// CountUnsynced counts sets whose cursor has never completed a pass.
func (s *Store) CountUnsynced(ctx context.Context, c Cursor) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Set{}).
		Where(c.lastColumn() + " IS NULL").
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count unsynced sets: %w", err)
	}
	return n, nil
}

// SaveStatus writes the sync_metadata row of a mode.
func (s *Store) SaveStatus(ctx context.Context, mode string, status models.SyncStatus, message string, lastSync *time.Time) error {
	row := models.SyncMetadata{
		ID:       mode,
		Status:   status,
		Message:  message,
		LastSync: lastSync,
	}

	columns := []string{"status", "message", "updated_at"}
	if lastSync != nil {
		columns = append(columns, "last_sync")
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save %s status: %w", mode, err)
	}
	return nil
}

// Statuses returns every sync_metadata row.
func (s *Store) Statuses(ctx context.Context) ([]models.SyncMetadata, error) {
	var rows []models.SyncMetadata
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list sync status: %w", err)
	}
	return rows, nil
}

// IsNotFound reports whether err is a missing-row error.
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, gorm.ErrRecordNotFound)
}

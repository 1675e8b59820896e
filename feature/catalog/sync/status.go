package sync

import (
	"context"
	"errors"
	"time"

	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"
)

// SetProgress is the cursor state of one set.
type SetProgress struct {
	SetID                string     `json:"setId"`
	Name                 string     `json:"name"`
	TotalCards           int        `json:"totalCards"`
	PriceSyncProgress    int        `json:"priceSyncProgress"`
	LastPriceSync        *time.Time `json:"lastPriceSync"`
	MetadataSyncProgress int        `json:"metadataSyncProgress"`
	LastMetadataSync     *time.Time `json:"lastMetadataSync"`
}

// Status is the operator view of sync state.
type Status struct {
	Runs            []models.SyncMetadata `json:"runs"`
	Sets            []SetProgress         `json:"sets"`
	PendingPrices   int64                 `json:"pendingPrices"`
	PendingMetadata int64                 `json:"pendingMetadata"`
}

// Status reports the last run of every mode and the cursor of every set.
func (o *Orchestrator) Status(ctx context.Context) (*Status, error) {
	runs, err := o.store.Statuses(ctx)
	if err != nil {
		return nil, err
	}

	sets, err := o.store.Sets(ctx)
	if err != nil && !errors.Is(err, store.ErrNoSets) {
		return nil, err
	}

	st := &Status{Runs: runs, Sets: make([]SetProgress, 0, len(sets))}
	for _, s := range sets {
		st.Sets = append(st.Sets, SetProgress{
			SetID:                s.ID,
			Name:                 s.Name,
			TotalCards:           s.TotalCards,
			PriceSyncProgress:    s.PriceSyncProgress,
			LastPriceSync:        s.LastPriceSync,
			MetadataSyncProgress: s.MetadataSyncProgress,
			LastMetadataSync:     s.LastMetadataSync,
		})
	}

	if st.PendingPrices, err = o.store.CountUnsynced(ctx, store.PriceCursor); err != nil {
		return nil, err
	}
	if st.PendingMetadata, err = o.store.CountUnsynced(ctx, store.MetadataCursor); err != nil {
		return nil, err
	}
	return st, nil
}

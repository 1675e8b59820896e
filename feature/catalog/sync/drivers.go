package sync

import (
	"context"
	"fmt"
	"sync/atomic"

	"catalog-sync/feature/catalog/client"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (o *Orchestrator) syncSets(ctx context.Context) (*Result, error) {
	sets, err := o.refreshSets(ctx)
	if err != nil {
		return &Result{}, err
	}
	return &Result{
		Count:         len(sets),
		SetsProcessed: len(sets),
		Message:       fmt.Sprintf("synced %d sets", len(sets)),
	}, nil
}

// refreshSets fetches the set list and upserts it in catalog order.
func (o *Orchestrator) refreshSets(ctx context.Context) ([]client.Set, error) {
	sets, err := o.catalog.ListSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch sets: %w", err)
	}

	rows := make([]models.Set, len(sets))
	for i, s := range sets {
		rows[i] = setRow(s, i)
	}
	if err := o.store.UpsertSets(ctx, rows); err != nil {
		return nil, err
	}

	o.archiveSets(ctx, sets)
	return sets, nil
}

func (o *Orchestrator) syncSingleSet(ctx context.Context, setID string) (*Result, error) {
	n, err := o.syncSet(ctx, setID)
	if err != nil {
		return &Result{SetID: setID}, err
	}
	return &Result{
		SetID:         setID,
		CardsUpdated:  n,
		SetsProcessed: 1,
		Message:       fmt.Sprintf("synced %d cards of set %s", n, setID),
	}, nil
}

// syncSet writes every card of a set in one pass. Cursors are not involved.
func (o *Orchestrator) syncSet(ctx context.Context, setID string) (int, error) {
	raw, err := o.catalog.SetCards(ctx, setID)
	if err != nil {
		return 0, fmt.Errorf("fetch cards of %s: %w", setID, err)
	}
	o.archiveCards(ctx, setID, raw)

	now := o.clock.Now()
	var cards []models.Card
	var prices []models.Price
	for _, c := range raw {
		cr, pr := expand(c, setID, now)
		cards = append(cards, cr...)
		prices = append(prices, pr...)
	}

	err = o.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.UpsertCards(ctx, cards); err != nil {
			return err
		}
		return tx.UpsertPrices(ctx, prices)
	})
	if err != nil {
		return 0, fmt.Errorf("store cards of %s: %w", setID, err)
	}

	o.cntCards.Add(ctx, int64(len(cards)))
	return len(cards), nil
}

// syncFull refreshes the set list and then every set's cards, a batch of
// sets at a time. A failing set is counted and skipped.
func (o *Orchestrator) syncFull(ctx context.Context, limit int) (*Result, error) {
	sets, err := o.refreshSets(ctx)
	if err != nil {
		return &Result{}, err
	}
	if limit > 0 && limit < len(sets) {
		sets = sets[:limit]
	}

	var cards, done, failed atomic.Int64
	size := o.cfg.setBatchSize()

	result := func() *Result {
		return &Result{
			CardsUpdated:  int(cards.Load()),
			Count:         len(sets),
			SetsProcessed: int(done.Load()),
			SetsFailed:    int(failed.Load()),
			Message:       fmt.Sprintf("synced %d of %d sets, %d failed", done.Load(), len(sets), failed.Load()),
		}
	}

	for start := 0; start < len(sets); start += size {
		if start > 0 {
			if err := o.sleep(ctx, o.cfg.BatchDelay); err != nil {
				return result(), err
			}
		}

		var g errgroup.Group
		for _, s := range sets[start:min(start+size, len(sets))] {
			s := s
			g.Go(func() error {
				n, err := o.syncSet(ctx, s.ID)
				if err != nil {
					failed.Add(1)
					o.logger.Warn("Set sync failed", zap.String("set_id", s.ID), zap.Error(err))
					return nil
				}
				cards.Add(int64(n))
				done.Add(1)
				return nil
			})
		}
		_ = g.Wait()
	}

	return result(), nil
}

// syncMetadataAll repeats metadata chunks until every set has completed at
// least one metadata pass. Sets that fail are skipped for the rest of the run.
func (o *Orchestrator) syncMetadataAll(ctx context.Context) (*Result, error) {
	res := &Result{}
	failed := make(map[string]bool)
	touched := make(map[string]bool)

	stopped := false
	for chunks := 0; ; chunks++ {
		if o.cfg.MaxChunks > 0 && chunks >= o.cfg.MaxChunks {
			stopped = true
			break
		}

		set, err := o.pick(ctx, store.MetadataCursor, failed)
		if err != nil {
			return res, err
		}
		if set == nil || set.LastMetadataSync != nil {
			break
		}

		if chunks > 0 {
			if err := o.sleep(ctx, o.cfg.ChunkDelay); err != nil {
				return res, err
			}
		}

		touched[set.ID] = true
		out, err := o.chunk(ctx, store.MetadataCursor, ModeCardMetadata, set.ID)
		res.Count++
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			failed[set.ID] = true
			continue
		}

		res.CardsUpdated += out.CardsUpdated
		if out.Completed {
			res.SetsCompleted++
		}
	}

	res.SetsProcessed = len(touched)
	res.SetsFailed = len(failed)

	pending, err := o.store.CountUnsynced(ctx, store.MetadataCursor)
	if err != nil {
		return res, err
	}

	res.Message = fmt.Sprintf("%d chunks, %d sets completed, %d failed, %d pending", res.Count, res.SetsCompleted, res.SetsFailed, pending)
	if stopped {
		res.Message = "chunk limit reached: " + res.Message
	}
	return res, nil
}

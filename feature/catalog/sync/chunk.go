package sync

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/core/keylock"
	"catalog-sync/feature/catalog/client"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/queue"
	"catalog-sync/feature/catalog/store"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type chunkOutcome struct {
	SetID        string
	From         int
	Processed    int
	CardsUpdated int
	Completed    bool
}

func (o *Orchestrator) runChunk(ctx context.Context, cur store.Cursor, mode Mode) (*Result, error) {
	set, err := o.pick(ctx, cur, nil)
	if err != nil {
		return &Result{}, err
	}
	if set == nil {
		return &Result{Message: "no sets to sync"}, nil
	}

	out, err := o.chunk(ctx, cur, mode, set.ID)
	res := &Result{SetID: set.ID}
	if err != nil {
		return res, err
	}

	res.CardsUpdated = out.CardsUpdated
	res.Count = out.Processed
	res.SetsProcessed = 1
	if out.Completed {
		res.SetsCompleted = 1
		res.Message = fmt.Sprintf("set %s completed: %d cards updated", set.ID, out.CardsUpdated)
	} else {
		res.Message = fmt.Sprintf("set %s at %d of %d: %d cards updated", set.ID, out.From+out.Processed, set.TotalCards, out.CardsUpdated)
	}
	return res, nil
}

// pick returns the set the cursor should serve next, or nil when none is left.
func (o *Orchestrator) pick(ctx context.Context, cur store.Cursor, skip map[string]bool) (*models.Set, error) {
	sets, err := o.store.Sets(ctx)
	if errors.Is(err, store.ErrNoSets) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Set, len(sets))
	q := queue.New()
	for i := range sets {
		s := &sets[i]
		if skip[s.ID] {
			continue
		}
		_, last := cur.Position(s)
		q.Push(queue.Item{SetID: s.ID, LastSync: last, Order: s.CatalogOrder})
		byID[s.ID] = s
	}

	item, ok := q.Pop()
	if !ok {
		return nil, nil
	}
	return byID[item.SetID], nil
}

// chunk processes one chunk of a set. Calls for the same mode and set that
// overlap share one execution.
func (o *Orchestrator) chunk(ctx context.Context, cur store.Cursor, mode Mode, setID string) (chunkOutcome, error) {
	out, shared, err := keylock.Do(&o.locks, keylock.Key(string(mode), setID), func() (chunkOutcome, error) {
		return o.processChunk(ctx, cur, setID)
	})
	if shared {
		o.logger.Debug("Joined in-flight chunk", zap.String("mode", string(mode)), zap.String("set_id", setID))
	}
	return out, err
}

func (o *Orchestrator) processChunk(ctx context.Context, cur store.Cursor, setID string) (chunkOutcome, error) {
	ctx, span := o.tracer.Start(ctx, "sync.chunk", trace.WithAttributes(
		attribute.String("sync.set_id", setID),
		attribute.String("sync.cursor", cur.String()),
	))
	defer span.End()

	// Reload inside the lock so the cursor is the committed one.
	set, err := o.store.Set(ctx, setID)
	if err != nil {
		return chunkOutcome{SetID: setID}, err
	}

	var out chunkOutcome
	if cur == store.MetadataCursor {
		out, err = o.metadataChunk(ctx, set)
	} else {
		out, err = o.priceChunk(ctx, set)
	}

	attrs := metric.WithAttributes(attribute.String("cursor", cur.String()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.cntFailures.Add(ctx, 1, attrs)
		o.logger.Warn("Chunk abandoned",
			zap.String("set_id", setID),
			zap.String("cursor", cur.String()),
			zap.Int("from", out.From),
			zap.Error(err),
		)
		return out, err
	}

	span.SetAttributes(
		attribute.Int("sync.from", out.From),
		attribute.Int("sync.processed", out.Processed),
		attribute.Bool("sync.completed", out.Completed),
	)
	o.cntChunks.Add(ctx, 1, attrs)
	o.cntCards.Add(ctx, int64(out.CardsUpdated), attrs)
	o.logger.Info("Chunk committed",
		zap.String("set_id", setID),
		zap.String("cursor", cur.String()),
		zap.Int("from", out.From),
		zap.Int("processed", out.Processed),
		zap.Int("cards_updated", out.CardsUpdated),
		zap.Bool("completed", out.Completed),
	)
	return out, nil
}

// priceChunk fetches the page holding the cursor and expands at most one
// chunk of it. A chunk never crosses a page boundary.
func (o *Orchestrator) priceChunk(ctx context.Context, set *models.Set) (chunkOutcome, error) {
	from := set.PriceSyncProgress
	out := chunkOutcome{SetID: set.ID, From: from}

	pageSize := o.catalog.PageSize()
	page := from/pageSize + 1
	offset := from % pageSize

	res, err := o.catalog.CardsPage(ctx, set.ID, page)
	if err != nil {
		return out, fmt.Errorf("fetch prices of %s at %d: %w", set.ID, from, err)
	}

	total := set.TotalCards
	if total <= 0 {
		total = res.TotalCount
	}

	var batch []client.Card
	if offset < len(res.Cards) {
		end := min(offset+o.cfg.chunkSize(), len(res.Cards))
		end = min(end, offset+max(total-from, 0))
		batch = res.Cards[offset:end]
	}

	now := o.clock.Now()
	var cards []models.Card
	var prices []models.Price
	for _, c := range batch {
		cr, pr := expand(c, set.ID, now)
		cards = append(cards, cr...)
		prices = append(prices, pr...)
	}

	step := store.Step{
		SetID:     set.ID,
		From:      from,
		Processed: len(batch),
		Total:     total,
		Exhausted: len(batch) == 0,
	}

	var completed bool
	err = o.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.UpsertCards(ctx, cards); err != nil {
			return err
		}
		if err := tx.UpsertPrices(ctx, prices); err != nil {
			return err
		}
		done, err := tx.Advance(ctx, store.PriceCursor, step, now)
		completed = done
		return err
	})
	if err != nil {
		return out, fmt.Errorf("commit prices of %s at %d: %w", set.ID, from, err)
	}

	out.Processed = len(batch)
	out.CardsUpdated = len(cards)
	out.Completed = completed
	return out, nil
}

// metadataChunk refreshes descriptive fields of cards already stored for the
// set, looking them up by id in one batched request.
func (o *Orchestrator) metadataChunk(ctx context.Context, set *models.Set) (chunkOutcome, error) {
	from := set.MetadataSyncProgress
	out := chunkOutcome{SetID: set.ID, From: from}

	ids, err := o.store.BaseCardIDs(ctx, set.ID, from, o.cfg.chunkSize())
	if err != nil {
		return out, err
	}

	now := o.clock.Now()
	var rows []models.Card
	if len(ids) > 0 {
		fetched, err := o.catalog.CardsByID(ctx, ids)
		if err != nil {
			return out, fmt.Errorf("fetch metadata of %s at %d: %w", set.ID, from, err)
		}

		existing, err := o.store.CardsByBaseID(ctx, ids)
		if err != nil {
			return out, err
		}

		byID := make(map[string]client.Card, len(fetched))
		for _, c := range fetched {
			byID[c.ID] = c
		}
		for _, row := range existing {
			c, ok := byID[row.BaseCardID]
			if !ok {
				continue
			}
			applyMetadata(&row, c, now)
			rows = append(rows, row)
		}
	}

	step := store.Step{
		SetID:     set.ID,
		From:      from,
		Processed: len(ids),
		Total:     set.TotalCards,
		Exhausted: len(ids) == 0,
	}

	var completed bool
	err = o.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.UpsertCards(ctx, rows); err != nil {
			return err
		}
		done, err := tx.Advance(ctx, store.MetadataCursor, step, now)
		completed = done
		return err
	})
	if err != nil {
		return out, fmt.Errorf("commit metadata of %s at %d: %w", set.ID, from, err)
	}

	out.Processed = len(ids)
	out.CardsUpdated = len(rows)
	out.Completed = completed
	return out, nil
}

package sync

import (
	"context"
	"fmt"
	"time"

	"catalog-sync/core/keylock"
	"catalog-sync/core/scheduler"
	"catalog-sync/feature/catalog/client"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const otelScope = "catalog-sync/sync"

// Catalog is the read side of the external catalog API.
type Catalog interface {
	ListSets(ctx context.Context) ([]client.Set, error)
	CardsPage(ctx context.Context, setID string, page int) (*client.CardPage, error)
	SetCards(ctx context.Context, setID string) ([]client.Card, error)
	CardsByID(ctx context.Context, ids []string) ([]client.Card, error)
	PageSize() int
}

// Archiver keeps raw snapshots of fetched catalog data.
type Archiver interface {
	Sets(ctx context.Context, sets []client.Set) error
	Cards(ctx context.Context, setID string, cards []client.Card) error
}

// Orchestrator runs sync modes against the catalog and the store.
type Orchestrator struct {
	catalog Catalog
	store   *store.Store
	archive Archiver
	cfg     Config
	logger  *zap.Logger
	clock   scheduler.Clock
	locks   keylock.Group

	tracer      trace.Tracer
	cntChunks   metric.Int64Counter
	cntCards    metric.Int64Counter
	cntFailures metric.Int64Counter
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithArchive stores raw snapshots of every fetched set list and card list.
func WithArchive(a Archiver) Option {
	return func(o *Orchestrator) { o.archive = a }
}

// WithClock replaces the wall clock used for timestamps and delays.
func WithClock(c scheduler.Clock) Option {
	return func(o *Orchestrator) { o.clock = c }
}

// New creates an orchestrator.
func New(catalog Catalog, st *store.Store, cfg Config, logger *zap.Logger, opts ...Option) *Orchestrator {
	meter := otel.Meter(otelScope)
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			logger.Warn("Failed to create counter", zap.String("counter", name), zap.Error(err))
			return noop.Int64Counter{}
		}
		return c
	}

	o := &Orchestrator{
		catalog:     catalog,
		store:       st,
		cfg:         cfg,
		logger:      logger,
		clock:       scheduler.SystemClock{},
		tracer:      otel.Tracer(otelScope),
		cntChunks:   counter("catalog_sync.chunks", "Number of committed sync chunks"),
		cntCards:    counter("catalog_sync.cards_updated", "Number of edition cards written"),
		cntFailures: counter("catalog_sync.failures", "Number of failed sync runs and chunks"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes one sync request. The returned Result is never nil; on failure
// it carries Success false and the error message.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return &Result{Mode: req.Mode, SetID: req.SetID, Message: err.Error()}, &requestError{err: err}
	}

	ctx, span := o.tracer.Start(ctx, "sync."+string(req.Mode), trace.WithAttributes(
		attribute.String("sync.mode", string(req.Mode)),
		attribute.String("sync.set_id", req.SetID),
		attribute.Int("sync.limit", req.Limit),
	))
	defer span.End()

	started := o.clock.Now()
	o.saveStatus(ctx, req.Mode, models.StatusInProgress, "sync started", nil)

	res, err := o.dispatch(ctx, req)
	res.Mode = req.Mode

	span.SetAttributes(
		attribute.Int("sync.cards_updated", res.CardsUpdated),
		attribute.Int("sync.sets_processed", res.SetsProcessed),
		attribute.Int("sync.sets_completed", res.SetsCompleted),
		attribute.Int("sync.sets_failed", res.SetsFailed),
	)

	if err != nil {
		res.Success = false
		res.CardsUpdated = 0
		res.Message = err.Error()

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.cntFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", string(req.Mode))))
		o.logger.Error("Sync failed", zap.String("mode", string(req.Mode)), zap.String("set_id", req.SetID), zap.Error(err))
		o.saveStatus(ctx, req.Mode, models.StatusFailed, res.Message, nil)
		return res, err
	}

	res.Success = true
	finished := o.clock.Now()
	o.saveStatus(ctx, req.Mode, models.StatusSuccess, res.Message, &finished)
	o.logger.Info("Sync finished",
		zap.String("mode", string(req.Mode)),
		zap.Int("cards_updated", res.CardsUpdated),
		zap.Int("sets_processed", res.SetsProcessed),
		zap.Int("sets_completed", res.SetsCompleted),
		zap.Int("sets_failed", res.SetsFailed),
		zap.Duration("duration", finished.Sub(started)),
	)
	return res, nil
}

func (o *Orchestrator) dispatch(ctx context.Context, req Request) (*Result, error) {
	switch req.Mode {
	case ModeSets:
		return o.syncSets(ctx)
	case ModeSingleSet:
		return o.syncSingleSet(ctx, req.SetID)
	case ModePrices:
		return o.runChunk(ctx, store.PriceCursor, ModePrices)
	case ModeCardMetadata:
		return o.runChunk(ctx, store.MetadataCursor, ModeCardMetadata)
	case ModeCardMetadataAll:
		return o.syncMetadataAll(ctx)
	case ModeFull:
		return o.syncFull(ctx, req.Limit)
	default:
		return &Result{}, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
}

func (o *Orchestrator) saveStatus(ctx context.Context, mode Mode, status models.SyncStatus, message string, lastSync *time.Time) {
	if err := o.store.SaveStatus(ctx, string(mode), status, message, lastSync); err != nil {
		o.logger.Warn("Failed to record sync status", zap.String("mode", string(mode)), zap.Error(err))
	}
}

func (o *Orchestrator) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-o.clock.After(d):
		return nil
	}
}

func (o *Orchestrator) archiveSets(ctx context.Context, sets []client.Set) {
	if o.archive == nil {
		return
	}
	if err := o.archive.Sets(ctx, sets); err != nil {
		o.logger.Warn("Failed to archive set list", zap.Error(err))
	}
}

func (o *Orchestrator) archiveCards(ctx context.Context, setID string, cards []client.Card) {
	if o.archive == nil {
		return
	}
	if err := o.archive.Cards(ctx, setID, cards); err != nil {
		o.logger.Warn("Failed to archive cards", zap.String("set_id", setID), zap.Error(err))
	}
}

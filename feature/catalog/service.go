package catalog

import (
	"context"
	"fmt"

	"catalog-sync/core/scheduler"
	catalogsync "catalog-sync/feature/catalog/sync"

	"go.uber.org/zap"
)

// DefaultMode is used when a request names no mode.
const DefaultMode = catalogsync.ModeFull

// Service exposes sync runs to the HTTP handler, the CLI and the scheduler.
type Service struct {
	orchestrator *catalogsync.Orchestrator
	logger       *zap.Logger
}

// NewService creates a new catalog service.
func NewService(orchestrator *catalogsync.Orchestrator, logger *zap.Logger) *Service {
	return &Service{orchestrator: orchestrator, logger: logger}
}

// Run executes one sync mode.
func (s *Service) Run(ctx context.Context, mode, setID string, limit int) (*catalogsync.Result, error) {
	if mode == "" {
		mode = string(DefaultMode)
	}
	return s.orchestrator.Run(ctx, catalogsync.Request{
		Mode:  catalogsync.Mode(mode),
		SetID: setID,
		Limit: limit,
	})
}

// Status returns the sync status overview.
func (s *Service) Status(ctx context.Context) (*catalogsync.Status, error) {
	return s.orchestrator.Status(ctx)
}

// Jobs builds one scheduler job per mode. single-set cannot be scheduled.
func (s *Service) Jobs(modes []string) ([]scheduler.Job, error) {
	jobs := make([]scheduler.Job, 0, len(modes))
	for _, name := range modes {
		mode, err := catalogsync.ParseMode(name)
		if err != nil {
			return nil, err
		}
		if mode == catalogsync.ModeSingleSet {
			return nil, fmt.Errorf("mode %s needs a set and cannot be scheduled", mode)
		}

		jobs = append(jobs, scheduler.Job{
			Name: string(mode),
			Run: func(ctx context.Context) error {
				_, err := s.Run(ctx, string(mode), "", 0)
				return err
			},
		})
	}
	return jobs, nil
}

package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/repositories"
)

// Finished import jobs are kept this long for auditing
const importJobRetention = 30 * 24 * time.Hour

// Scheduler runs the recurring maintenance tasks. The domain-heavy
// tasks are injected as closures so the scheduler stays a thin shell
// around cron.
type Scheduler struct {
	cron          *cron.Cron
	tokenRepo     *repositories.TokenRepository
	importJobRepo *repositories.ImportJobRepository
	remindOverdue func(ctx context.Context) error
	warmupStats   func(ctx context.Context) error
	logger        zerolog.Logger
}

// NewScheduler creates a Scheduler with its task wiring
func NewScheduler(
	tokenRepo *repositories.TokenRepository,
	importJobRepo *repositories.ImportJobRepository,
	remindOverdue func(ctx context.Context) error,
	warmupStats func(ctx context.Context) error,
	logger zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		tokenRepo:     tokenRepo,
		importJobRepo: importJobRepo,
		remindOverdue: remindOverdue,
		warmupStats:   warmupStats,
		logger:        logger,
	}
}

// Start registers the cron entries and launches the scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@daily", s.runOverdueReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@daily", s.runCleanup); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@hourly", s.runStatsWarmup); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().Msg("Scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running tasks to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) runOverdueReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.remindOverdue(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Overdue report reminder task failed")
	}
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.tokenRepo.CleanupExpiredTokens(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Token cleanup task failed")
	} else if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("Expired refresh tokens removed")
	}

	purged, err := s.importJobRepo.PurgeFinishedBefore(ctx, time.Now().Add(-importJobRetention))
	if err != nil {
		s.logger.Error().Err(err).Msg("Import job purge task failed")
	} else if purged > 0 {
		s.logger.Info().Int64("purged", purged).Msg("Stale import jobs removed")
	}
}

func (s *Scheduler) runStatsWarmup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.warmupStats(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Stats warmup task failed")
	}
}

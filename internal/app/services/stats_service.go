package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/auth"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
	"github.com/tejasnv/internhub/internal/pkg/cache"
)

const (
	overviewStatsKey    = "stats:overview"
	institutionStatsKey = "stats:institution:%d"
)

// StatsService computes the dashboard aggregates. Results are cached
// because the underlying queries scan whole tables.
type StatsService struct {
	statsRepo       *repositories.StatsRepository
	institutionRepo *repositories.InstitutionRepository
	cache           cache.Cache
	ttl             time.Duration
	logger          zerolog.Logger
}

// NewStatsService creates a new StatsService
func NewStatsService(
	statsRepo *repositories.StatsRepository,
	institutionRepo *repositories.InstitutionRepository,
	statsCache cache.Cache,
	ttl time.Duration,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{
		statsRepo:       statsRepo,
		institutionRepo: institutionRepo,
		cache:           statsCache,
		ttl:             ttl,
		logger:          logger,
	}
}

// Overview returns the state-wide dashboard summary. Directorate only.
func (s *StatsService) Overview(ctx context.Context, actor auth.Actor) (*dto.OverviewStatsResponse, error) {
	if err := actor.RequireRole(models.RoleDirectorate); err != nil {
		return nil, err
	}

	var cached dto.OverviewStatsResponse
	if err := s.cache.Get(ctx, overviewStatsKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn().Err(err).Msg("Stats cache read failed")
	}

	resp, err := s.buildOverview(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, overviewStatsKey, resp, s.ttl); err != nil {
		s.logger.Warn().Err(err).Msg("Stats cache write failed")
	}

	return resp, nil
}

// Institution returns the per-institution dashboard summary. Principals
// and faculty see their own institution, the directorate sees any.
func (s *StatsService) Institution(ctx context.Context, actor auth.Actor, institutionID int64) (*dto.InstitutionStatsResponse, error) {
	if err := actor.RequireRole(models.RoleFaculty, models.RolePrincipal, models.RoleDirectorate); err != nil {
		return nil, err
	}
	if err := actor.CanAccessInstitution(institutionID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf(institutionStatsKey, institutionID)
	var cached dto.InstitutionStatsResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn().Err(err).Msg("Stats cache read failed")
	}

	resp, err := s.buildInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, resp, s.ttl); err != nil {
		s.logger.Warn().Err(err).Msg("Stats cache write failed")
	}

	return resp, nil
}

// Warmup precomputes the overview and every institution's summary. Run
// from the scheduler so dashboards rarely hit cold queries.
func (s *StatsService) Warmup(ctx context.Context) error {
	overview, err := s.buildOverview(ctx)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, overviewStatsKey, overview, s.ttl); err != nil {
		return err
	}

	institutions, err := s.institutionRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, institution := range institutions {
		resp, err := s.buildInstitution(ctx, institution.ID)
		if err != nil {
			return err
		}
		if err := s.cache.Set(ctx, fmt.Sprintf(institutionStatsKey, institution.ID), resp, s.ttl); err != nil {
			return err
		}
	}

	s.logger.Debug().Int("institutions", len(institutions)).Msg("Stats cache warmed")
	return nil
}

func (s *StatsService) buildOverview(ctx context.Context) (*dto.OverviewStatsResponse, error) {
	institutions, err := s.statsRepo.CountInstitutions(ctx)
	if err != nil {
		return nil, err
	}

	students, err := s.statsRepo.CountStudents(ctx, nil)
	if err != nil {
		return nil, err
	}

	counts, err := s.statsRepo.ApplicationCounts(ctx, nil)
	if err != nil {
		return nil, err
	}

	openTickets, err := s.statsRepo.CountOpenTickets(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &dto.OverviewStatsResponse{
		Institutions: institutions,
		Students:     students,
		Applications: statusCountsDTO(counts),
		Phases:       phaseCountsDTO(counts),
		OpenTickets:  openTickets,
	}, nil
}

func (s *StatsService) buildInstitution(ctx context.Context, institutionID int64) (*dto.InstitutionStatsResponse, error) {
	institution, err := s.institutionRepo.GetByID(ctx, institutionID)
	if err != nil {
		return nil, apperrors.ErrInstitutionNotFound
	}

	students, err := s.statsRepo.CountStudents(ctx, &institutionID)
	if err != nil {
		return nil, err
	}

	counts, err := s.statsRepo.ApplicationCounts(ctx, &institutionID)
	if err != nil {
		return nil, err
	}

	reportsPending, err := s.statsRepo.CountReportsPendingReview(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	openTickets, err := s.statsRepo.CountOpenTickets(ctx, &institutionID)
	if err != nil {
		return nil, err
	}

	return &dto.InstitutionStatsResponse{
		InstitutionID:   institution.ID,
		InstitutionName: institution.Name,
		Students:        students,
		Applications:    statusCountsDTO(counts),
		Phases:          phaseCountsDTO(counts),
		ReportsPending:  reportsPending,
		OpenTickets:     openTickets,
	}, nil
}

func statusCountsDTO(counts *repositories.StatusCounts) dto.ApplicationStatusCounts {
	return dto.ApplicationStatusCounts{
		Pending:  counts.Pending,
		Approved: counts.Approved,
		Rejected: counts.Rejected,
	}
}

func phaseCountsDTO(counts *repositories.StatusCounts) dto.ApplicationPhaseCounts {
	return dto.ApplicationPhaseCounts{
		NotStarted: counts.NotStarted,
		Active:     counts.Active,
		Completed:  counts.Completed,
		Terminated: counts.Terminated,
	}
}

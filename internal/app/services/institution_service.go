package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

// InstitutionService handles college registry operations. The registry
// is maintained by the state directorate.
type InstitutionService struct {
	institutionRepo *repositories.InstitutionRepository
	logger          zerolog.Logger
}

// NewInstitutionService creates a new InstitutionService
func NewInstitutionService(institutionRepo *repositories.InstitutionRepository, logger zerolog.Logger) *InstitutionService {
	return &InstitutionService{
		institutionRepo: institutionRepo,
		logger:          logger,
	}
}

// Create registers a new institution
func (s *InstitutionService) Create(ctx context.Context, req *dto.CreateInstitutionRequest) (*models.Institution, error) {
	exists, err := s.institutionRepo.ExistsByNameOrCode(ctx, req.Name, req.Code, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrInstitutionAlreadyExists
	}

	institution := &models.Institution{
		Name:     req.Name,
		Code:     req.Code,
		District: req.District,
		Address:  req.Address,
	}

	if err := s.institutionRepo.Create(ctx, institution); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("institutionID", institution.ID).Str("code", institution.Code).Msg("Institution created")
	return institution, nil
}

// GetByID retrieves an institution
func (s *InstitutionService) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	return s.institutionRepo.GetByID(ctx, id)
}

// GetAll retrieves all institutions
func (s *InstitutionService) GetAll(ctx context.Context) ([]*models.Institution, error) {
	return s.institutionRepo.GetAll(ctx)
}

// Update updates an institution's registry entry
func (s *InstitutionService) Update(ctx context.Context, id int64, req *dto.UpdateInstitutionRequest) (*models.Institution, error) {
	institution, err := s.institutionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.institutionRepo.ExistsByNameOrCode(ctx, req.Name, req.Code, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrInstitutionAlreadyExists
	}

	institution.Name = req.Name
	institution.Code = req.Code
	institution.District = req.District
	institution.Address = req.Address

	if err := s.institutionRepo.Update(ctx, institution); err != nil {
		return nil, err
	}

	return institution, nil
}

// Delete removes an institution. Fails when students are still enrolled.
func (s *InstitutionService) Delete(ctx context.Context, id int64) error {
	if err := s.institutionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("institutionID", id).Msg("Institution deleted")
	return nil
}

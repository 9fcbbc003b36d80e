package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
	"github.com/tejasnv/internhub/internal/pkg/auth"
)

const (
	directorateEmail = "directorate@internhub.gov.in"
	// Changed on first login; deployments override via the admin account.
	directorateDefaultPassword = "ChangeMe!2026"
)

// CreateDefaultData makes sure a directorate admin account and a sample
// institution exist so a fresh deployment is usable immediately.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	institutionRepo := repositories.NewInstitutionRepository(dbPool)

	var finalErr error

	exists, err := userRepo.EmailExists(ctx, directorateEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for directorate account")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		hashed, err := auth.HashPassword(directorateDefaultPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing directorate password")
			return errors.Join(finalErr, err)
		}
		admin := &models.User{
			Email:     directorateEmail,
			Password:  hashed,
			FirstName: "State",
			LastName:  "Directorate",
			RoleType:  models.RoleDirectorate,
			IsActive:  true,
		}
		if _, err := userRepo.CreateUser(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating directorate account")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Str("email", directorateEmail).Msg("Directorate account created")
		}
	}

	sample := &models.Institution{
		Name:     "Government Polytechnic College, Thiruvananthapuram",
		Code:     "GPTC-TVM",
		District: "Thiruvananthapuram",
		Address:  "Kaimanam, Thiruvananthapuram, Kerala 695040",
	}
	if err := institutionRepo.Create(ctx, sample); err != nil && !errors.Is(err, apperrors.ErrInstitutionAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating sample institution")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

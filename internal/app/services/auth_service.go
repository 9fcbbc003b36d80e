package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
	"github.com/tejasnv/internhub/internal/pkg/auth"
	"github.com/tejasnv/internhub/internal/pkg/validation"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo        *repositories.UserRepository
	studentRepo     *repositories.StudentRepository
	tokenRepo       *repositories.TokenRepository
	institutionRepo *repositories.InstitutionRepository
	jwtService      *auth.JWTService
	logger          zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	tokenRepo *repositories.TokenRepository,
	institutionRepo *repositories.InstitutionRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		studentRepo:     studentRepo,
		tokenRepo:       tokenRepo,
		institutionRepo: institutionRepo,
		jwtService:      jwtService,
		logger:          logger,
	}
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < validation.PasswordMinLength {
		return apperrors.NewBadRequestError(
			fmt.Sprintf("password must be at least %d characters long", validation.PasswordMinLength))
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.NewBadRequestError("password must contain at least one letter and one digit")
	}

	return nil
}

// Register creates a new user account. Students additionally get a
// student profile and must supply a valid enrollment number. Accounts in
// institution-scoped roles must name an existing institution.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewBadRequestError("invalid email format")
	}

	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	if !models.ValidRole(req.RoleType) {
		return nil, apperrors.NewBadRequestError("unknown role type")
	}

	if req.RoleType.InstitutionScoped() {
		if req.InstitutionID == nil {
			return nil, apperrors.NewBadRequestError("institutionId is required for this role")
		}
		if _, err := s.institutionRepo.GetByID(ctx, *req.InstitutionID); err != nil {
			return nil, err
		}
	} else {
		req.InstitutionID = nil
	}

	if req.RoleType == models.RoleStudent {
		if !validation.IsValidEnrollmentNo(req.EnrollmentNo) {
			return nil, apperrors.ErrInvalidEnrollmentNumber
		}
		exists, err := s.studentRepo.EnrollmentNoExists(ctx, req.EnrollmentNo)
		if err != nil {
			return nil, fmt.Errorf("error checking enrollment number: %w", err)
		}
		if exists {
			return nil, apperrors.ErrEnrollmentNoExists
		}
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:         email,
		Password:      hashedPassword,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		RoleType:      req.RoleType,
		InstitutionID: req.InstitutionID,
		IsActive:      true,
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	if req.RoleType == models.RoleStudent {
		student := &models.Student{
			UserID:        userID,
			InstitutionID: *req.InstitutionID,
			EnrollmentNo:  req.EnrollmentNo,
			Program:       req.Program,
			Semester:      req.Semester,
		}
		if err := s.studentRepo.Create(ctx, student); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Int64("userID", userID).
		Str("role", string(req.RoleType)).
		Msg("User registered")

	return s.buildAuthResponse(ctx, user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Could not update last login")
	}

	return s.buildAuthResponse(ctx, user)
}

// RefreshToken rotates a refresh token: the presented token is revoked
// and a fresh pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, err := s.tokenRepo.GetTokenUserID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Revoke the presented token so it cannot be replayed
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.buildAuthResponse(ctx, user)
}

// Logout revokes all refresh tokens of a user
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

// GetProfile retrieves a user's profile, with the student profile
// attached when applicable.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, *dto.StudentResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	userResp := dto.FromUser(user)

	if user.RoleType != models.RoleStudent {
		return &userResp, nil, nil
	}

	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return &userResp, nil, nil
		}
		return nil, nil, err
	}

	if institution, err := s.institutionRepo.GetByID(ctx, student.InstitutionID); err == nil {
		student.Institution = institution
	}

	studentResp := dto.FromStudent(student)
	return &userResp, &studentResp, nil
}

// UpdateProfile updates a user's name
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) error {
	return s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName)
}

// buildAuthResponse creates the token pair and persists the refresh
// token.
func (s *AuthService) buildAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(expiresIn),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: int64(refreshExpiresIn),
		},
		User: dto.FromUser(user),
	}, nil
}

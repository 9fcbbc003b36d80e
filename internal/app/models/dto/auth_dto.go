package dto

import "github.com/tejasnv/internhub/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents a user registration request. Students also
// supply the student profile fields.
type RegisterRequest struct {
	Email         string          `json:"email" binding:"required,email"`
	Password      string          `json:"password" binding:"required,min=8"`
	FirstName     string          `json:"firstName" binding:"required"`
	LastName      string          `json:"lastName" binding:"required"`
	RoleType      models.RoleType `json:"roleType" binding:"required"`
	InstitutionID *int64          `json:"institutionId,omitempty"`

	// Student profile fields, required when roleType is STUDENT
	EnrollmentNo string `json:"enrollmentNo,omitempty" example:"23GPTC0042"`
	Program      string `json:"program,omitempty"`
	Semester     int    `json:"semester,omitempty"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID              int64   `json:"id"`
	Email           string  `json:"email"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Role            string  `json:"role"`
	InstitutionID   *int64  `json:"institutionId,omitempty"`
	ProfilePhotoURL *string `json:"profilePhotoUrl,omitempty"`
}

// ProfileResponse bundles the account with its student profile when the
// caller is a student.
type ProfileResponse struct {
	User    UserResponse     `json:"user"`
	Student *StudentResponse `json:"student,omitempty"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// FromUser converts a user model into a UserResponse.
func FromUser(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Role:            string(user.RoleType),
		InstitutionID:   user.InstitutionID,
		ProfilePhotoURL: user.ProfilePhotoURL,
	}
}

package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID              int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email           string     `json:"email" db:"email" example:"user@gptc.edu.in"`                             // User's email address
	Password        string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FirstName       string     `json:"firstName" db:"first_name" example:"Asha"`                                // User's first name
	LastName        string     `json:"lastName" db:"last_name" example:"Menon"`                                 // User's last name
	RoleType        RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`                               // User's role
	InstitutionID   *int64     `json:"institutionId,omitempty" db:"institution_id" example:"3"`                 // Institution the user belongs to (NULL for directorate staff)
	IsActive        bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the user account is active
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2026-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
	ProfilePhotoURL *string    `json:"profilePhotoUrl,omitempty" db:"profile_photo_url"`                        // URL of the user's profile photo (nullable)
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`                                               // Timestamp when the user was created
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`                                               // Timestamp when the user was last updated

	Institution *Institution `json:"institution,omitempty"` // Relation, no db tag
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Student defines the student profile based on the 'students' table
type Student struct {
	ID            int64  `json:"id" db:"id"`
	UserID        int64  `json:"userId" db:"user_id"`
	InstitutionID int64  `json:"institutionId" db:"institution_id"`
	EnrollmentNo  string `json:"enrollmentNo" db:"enrollment_no" example:"23GPTC0042"`
	Program       string `json:"program" db:"program" example:"Diploma in Computer Engineering"`
	Semester      int    `json:"semester" db:"semester" example:"5"`

	// Relations (populated when needed)
	User        *User        `json:"user,omitempty"`
	Institution *Institution `json:"institution,omitempty"`
}

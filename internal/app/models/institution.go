package models

import "time"

// Institution defines a college managed by the state directorate,
// based on the 'institutions' table. Institutions are the tenant
// boundary: principals, faculty and students are scoped to one.
type Institution struct {
	ID        int64     `json:"id" db:"id" example:"3"`
	Name      string    `json:"name" db:"name" example:"Government Polytechnic College, Kozhikode"`
	Code      string    `json:"code" db:"code" example:"GPTC"`
	District  string    `json:"district" db:"district" example:"Kozhikode"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

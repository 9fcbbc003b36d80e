package dto

// CreateInstitutionRequest represents the request to register a college
type CreateInstitutionRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=200"`
	Code     string `json:"code" binding:"required,min=2,max=10"`
	District string `json:"district" binding:"required"`
	Address  string `json:"address"`
}

// UpdateInstitutionRequest represents the request to update a college
type UpdateInstitutionRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=200"`
	Code     string `json:"code" binding:"required,min=2,max=10"`
	District string `json:"district" binding:"required"`
	Address  string `json:"address"`
}

// InstitutionResponse represents institution information
type InstitutionResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	District string `json:"district"`
	Address  string `json:"address,omitempty"`
}

package auth

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username          string `json:"username" binding:"required,min=3,max=64"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=8,max=128"`
	PersonaPreference string `json:"persona_preference" binding:"omitempty,oneof=male female neutral"`
}

// LoginRequest is the payload for credential exchange.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries optional profile mutations. Absent fields
// are left untouched.
type UpdateProfileRequest struct {
	Username          *string `json:"username" binding:"omitempty,min=3,max=64"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Password          *string `json:"password" binding:"omitempty,min=8,max=128"`
	PersonaPreference *string `json:"persona_preference" binding:"omitempty,oneof=male female neutral"`
}

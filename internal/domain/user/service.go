package user

import (
	"context"
	"time"

	"friendbot/companion-api/internal/utils/crypto"
	"friendbot/companion-api/internal/utils/platformerrors"
)

// RegisterInput contains the fields required to create an account.
type RegisterInput struct {
	Username          string
	Email             string
	Password          string
	PersonaPreference PersonaPreference
}

// UpdateProfileInput contains optional profile mutations.
type UpdateProfileInput struct {
	Username          *string
	Email             *string
	Password          *string
	PersonaPreference *PersonaPreference
}

// Service persists and resolves user accounts.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new account after enforcing username and email uniqueness.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"username, email and password are required", nil, "7d2e49c1-8a35-4f1e-b7d2-09a6e3c5f8b1")
	}

	preference := input.PersonaPreference
	if preference == "" {
		preference = PersonaNeutral
	}
	if !preference.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"persona preference must be one of: male, female, neutral", nil, "3f8b1a62-5c47-4d9e-8e21-b04d7f6a2c93")
	}

	if existing, err := s.repo.FindByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"username already exists", nil, "b91c2e04-6d83-47af-95e0-1c2f8d4a7b36")
	}

	if existing, err := s.repo.FindByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"email already exists", nil, "e65a9f17-3b2d-4c08-a47e-8d90b1c5f24a")
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to hash password", err, "0c47d8a2-91be-4f53-b6a8-e27f31d09c65")
	}

	usr := &User{
		Username:          input.Username,
		Email:             input.Email,
		PasswordHash:      hash,
		PersonaPreference: preference,
	}
	if err := s.repo.Create(ctx, usr); err != nil {
		return nil, err
	}

	return usr, nil
}

// Authenticate verifies credentials and stamps the last login time.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	usr, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	// Unknown username and wrong password are indistinguishable to callers.
	if usr == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"invalid credentials", nil, "a8f31d72-4e95-4b06-9c28-d57e0b1f6a43")
	}

	if !crypto.VerifyPassword(usr.PasswordHash, password) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"invalid credentials", nil, "5d90c2b8-7f14-4e36-a05d-83b1e9f47c20")
	}

	now := time.Now().UTC()
	usr.LastLoginAt = &now
	if err := s.repo.Update(ctx, usr); err != nil {
		return nil, err
	}

	return usr, nil
}

// GetByID resolves a user by internal id.
func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	usr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"user not found", nil, "f2c85a19-0d64-4b7e-93a1-6e48d2b0c75f")
	}
	return usr, nil
}

// UpdateProfile applies the provided mutations, re-checking uniqueness where needed.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*User, error) {
	usr, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != usr.Username {
		if existing, err := s.repo.FindByUsername(ctx, *input.Username); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
				"username already exists", nil, "c04b7e92-5a38-4d16-8f0c-29e6d1a8b573")
		}
		usr.Username = *input.Username
	}

	if input.Email != nil && *input.Email != usr.Email {
		if existing, err := s.repo.FindByEmail(ctx, *input.Email); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
				"email already exists", nil, "9e17f5d0-2b84-4a6c-b3e9-70c4d8f1a265")
		}
		usr.Email = *input.Email
	}

	if input.Password != nil {
		hash, err := crypto.HashPassword(*input.Password)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
				"failed to hash password", err, "1b6d3f84-e029-47c5-a81d-f5e2c7b09a46")
		}
		usr.PasswordHash = hash
	}

	if input.PersonaPreference != nil {
		if !input.PersonaPreference.Valid() {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"persona preference must be one of: male, female, neutral", nil, "6a2f0c91-8d57-4b3e-92a6-c41e8b5d7f30")
		}
		usr.PersonaPreference = *input.PersonaPreference
	}

	if err := s.repo.Update(ctx, usr); err != nil {
		return nil, err
	}

	return usr, nil
}

// UpdatePersonaPreference switches the active persona for a user.
func (s *Service) UpdatePersonaPreference(ctx context.Context, userID uint, preference PersonaPreference) (*User, error) {
	if !preference.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"persona preference must be one of: male, female, neutral", nil, "d5e08a37-42cf-4916-b8a0-3c7f29d6e1b4")
	}

	usr, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	usr.PersonaPreference = preference
	if err := s.repo.Update(ctx, usr); err != nil {
		return nil, err
	}

	return usr, nil
}

package user_test

import (
	"context"
	"testing"

	"friendbot/companion-api/internal/domain/user"
	"friendbot/companion-api/internal/utils/platformerrors"
)

// mockUserRepository is an in-memory implementation of user.Repository for testing
type mockUserRepository struct {
	users  map[uint]*user.User
	nextID uint
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[uint]*user.User), nextID: 1}
}

func (m *mockUserRepository) Create(ctx context.Context, usr *user.User) error {
	usr.ID = m.nextID
	m.nextID++
	clone := *usr
	m.users[usr.ID] = &clone
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	if usr, ok := m.users[id]; ok {
		clone := *usr
		return &clone, nil
	}
	return nil, nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	for _, usr := range m.users {
		if usr.Username == username {
			clone := *usr
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, usr := range m.users {
		if usr.Email == email {
			clone := *usr
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, usr *user.User) error {
	clone := *usr
	m.users[usr.ID] = &clone
	return nil
}

func TestRegisterDefaultsToNeutralPersona(t *testing.T) {
	svc := user.NewService(newMockUserRepository())

	usr, err := svc.Register(context.Background(), user.RegisterInput{
		Username: "sam",
		Email:    "sam@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if usr.PersonaPreference != user.PersonaNeutral {
		t.Errorf("persona preference = %q, want neutral", usr.PersonaPreference)
	}
	if usr.PasswordHash == "hunter22" {
		t.Error("password stored in plaintext")
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc := user.NewService(newMockUserRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, user.RegisterInput{Username: "sam", Email: "sam@example.com", Password: "pw123456"}); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(ctx, user.RegisterInput{Username: "sam", Email: "other@example.com", Password: "pw123456"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestRegisterRejectsUnknownPersona(t *testing.T) {
	svc := user.NewService(newMockUserRepository())

	_, err := svc.Register(context.Background(), user.RegisterInput{
		Username:          "sam",
		Email:             "sam@example.com",
		Password:          "pw123456",
		PersonaPreference: "robot",
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := user.NewService(newMockUserRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, user.RegisterInput{Username: "sam", Email: "sam@example.com", Password: "pw123456"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	usr, err := svc.Authenticate(ctx, "sam", "pw123456")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if usr.LastLoginAt == nil {
		t.Error("last login not stamped")
	}

	if _, err := svc.Authenticate(ctx, "sam", "wrong"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
		t.Errorf("expected unauthorized error, got %v", err)
	}

	if _, err := svc.Authenticate(ctx, "nobody", "pw123456"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
		t.Errorf("expected unauthorized error for unknown user, got %v", err)
	}
}

func TestUpdatePersonaPreference(t *testing.T) {
	svc := user.NewService(newMockUserRepository())
	ctx := context.Background()

	usr, err := svc.Register(ctx, user.RegisterInput{Username: "sam", Email: "sam@example.com", Password: "pw123456"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	updated, err := svc.UpdatePersonaPreference(ctx, usr.ID, user.PersonaFemale)
	if err != nil {
		t.Fatalf("UpdatePersonaPreference() error = %v", err)
	}
	if updated.PersonaPreference != user.PersonaFemale {
		t.Errorf("persona preference = %q, want female", updated.PersonaPreference)
	}

	if _, err := svc.UpdatePersonaPreference(ctx, usr.ID, "invalid"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

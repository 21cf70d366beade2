package service

import (
	"context"
	"strings"
	"testing"

	"stitchfront/internal/domain"
	"stitchfront/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Mock repository for testing
type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	if _, exists := m.users[email]; exists {
		return repository.ErrUserAlreadyExists
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = email
	m.users[email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[strings.ToLower(strings.TrimSpace(email))]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	for _, user := range m.users {
		if user.ID == id {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, update repository.ProfileUpdate) error {
	for _, user := range m.users {
		if user.ID == id {
			user.Name = update.Name
			user.Phone = update.Phone
			user.Address = update.Address
			if update.Avatar != "" {
				user.Avatar = update.Avatar
			}
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func newTestUserService(repo repository.UserRepository) UserService {
	return NewUserService(repo, "test-secret", 15, 7)
}

func TestProperty_RegistrationCreatesHashedPasswords(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("passwords are hashed with bcrypt and not stored as plaintext", prop.ForAll(
		func(email string, password string, name string) bool {
			userRepo := newMockUserRepository()
			service := newTestUserService(userRepo)
			ctx := context.Background()

			user, err := service.Register(ctx, name, email, "", "", password)
			if err != nil {
				// If registration fails, skip this test case
				return true
			}

			if user.PasswordHash == password {
				t.Logf("FAIL: Password stored as plaintext for email %s", email)
				return false
			}

			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
				t.Logf("FAIL: Password hash is not a valid bcrypt hash or doesn't match: %v", err)
				return false
			}

			return true
		},
		gen.RegexMatch(`[a-z0-9]{3,12}@[a-z]{3,8}\.com`),
		gen.RegexMatch(`[a-zA-Z0-9]{8,24}`),
		gen.RegexMatch(`[a-zA-Z ]{2,20}`),
	))

	properties.TestingRun(t)
}

func TestProperty_RegisteredUsersCanLogin(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("login succeeds with the registered password and fails otherwise", prop.ForAll(
		func(email string, password string) bool {
			userRepo := newMockUserRepository()
			service := newTestUserService(userRepo)
			ctx := context.Background()

			if _, err := service.Register(ctx, "Test User", email, "", "", password); err != nil {
				return true
			}

			access, refresh, user, err := service.Login(ctx, email, password)
			if err != nil || access == "" || refresh == "" || user == nil {
				t.Logf("FAIL: Login with correct password failed: %v", err)
				return false
			}

			if _, _, _, err := service.Login(ctx, email, password+"x"); err != ErrInvalidCredentials {
				t.Logf("FAIL: Login with wrong password did not fail: %v", err)
				return false
			}

			return true
		},
		gen.RegexMatch(`[a-z0-9]{3,12}@[a-z]{3,8}\.com`),
		gen.RegexMatch(`[a-zA-Z0-9]{8,24}`),
	))

	properties.TestingRun(t)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestUserService(userRepo)
	ctx := context.Background()

	_, err := service.Register(ctx, "First", "dup@example.com", "", "", "password123")
	require.NoError(t, err)

	_, err = service.Register(ctx, "Second", "DUP@example.com", "", "", "password456")
	assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)
}

func TestRegister_AssignsCustomerRole(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestUserService(userRepo)

	user, err := service.Register(context.Background(), "Jo", "jo@example.com", "", "", "password123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestUserService(userRepo)

	_, _, _, err := service.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestUserService(userRepo)
	ctx := context.Background()

	user, err := service.Register(ctx, "Jo", "jo@example.com", "", "", "password123")
	require.NoError(t, err)

	_, refreshToken, _, err := service.Login(ctx, "jo@example.com", "password123")
	require.NoError(t, err)

	accessToken, err := service.Refresh(refreshToken)
	require.NoError(t, err)

	claims, err := service.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestUserService(userRepo)
	ctx := context.Background()

	_, err := service.Register(ctx, "Jo", "jo@example.com", "", "", "password123")
	require.NoError(t, err)

	accessToken, _, _, err := service.Login(ctx, "jo@example.com", "password123")
	require.NoError(t, err)

	_, err = service.Refresh(accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	service := newTestUserService(newMockUserRepository())

	_, err := service.Refresh("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestUserService(userRepo)
	ctx := context.Background()

	_, err := service.Register(ctx, "Jo", "jo@example.com", "", "", "password123")
	require.NoError(t, err)

	accessToken, _, _, err := service.Login(ctx, "jo@example.com", "password123")
	require.NoError(t, err)

	other := NewUserService(userRepo, "different-secret", 15, 7)
	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestUserService(userRepo)
	ctx := context.Background()

	user, err := service.Register(ctx, "Jo", "jo@example.com", "", "", "oldpassword")
	require.NoError(t, err)

	err = service.ChangePassword(ctx, user.ID, "wrongpassword", "newpassword")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	err = service.ChangePassword(ctx, user.ID, "oldpassword", "newpassword")
	require.NoError(t, err)

	_, _, _, err = service.Login(ctx, "jo@example.com", "newpassword")
	assert.NoError(t, err)

	_, _, _, err = service.Login(ctx, "jo@example.com", "oldpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newTestUserService(userRepo)
	ctx := context.Background()

	user, err := service.Register(ctx, "Jo", "jo@example.com", "", "", "password123")
	require.NoError(t, err)

	updated, err := service.UpdateProfile(ctx, user.ID, repository.ProfileUpdate{
		Name:    "Jo Renamed",
		Phone:   "555-0100",
		Address: "12 Harbor Way",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jo Renamed", updated.Name)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "12 Harbor Way", updated.Address)
	assert.Equal(t, "jo@example.com", updated.Email)

	_, err = service.UpdateProfile(ctx, primitive.NewObjectID(), repository.ProfileUpdate{Name: "Nobody"})
	assert.Error(t, err)
}

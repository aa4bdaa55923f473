package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"loandocs/internal/config"
	"loandocs/internal/domain"
	"loandocs/internal/service"
	"loandocs/mocks"
)

func setupAuthService(t *testing.T) (service.AuthService, *mocks.MockUserRepo, *domain.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "rajesh@example.com",
		Username:     "rajeshk",
		FullName:     "Rajesh Kumar",
		PasswordHash: string(hash),
		Role:         domain.RoleApplicant,
		IsActive:     true,
	}

	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, config.JWTConfig{
		Secret:            "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "loandocs",
	})
	return svc, userRepo, user
}

func TestLogin_Success(t *testing.T) {
	svc, userRepo, user := setupAuthService(t)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	out, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), out.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RoleApplicant, claims.Role)
	assert.Equal(t, "loandocs", claims.Issuer)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, userRepo, user := setupAuthService(t)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, userRepo, _ := setupAuthService(t)
	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, userRepo, user := setupAuthService(t)
	user.IsActive = false
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc, userRepo, user := setupAuthService(t)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	out, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	other := service.NewAuthService(userRepo, config.JWTConfig{
		Secret:            "different-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "loandocs",
	})
	_, err = other.ValidateToken(out.AccessToken)
	assert.Error(t, err)
}

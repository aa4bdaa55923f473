package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"loandocs/internal/config"
	"loandocs/internal/domain"
	"loandocs/internal/middleware"
	"loandocs/internal/service"
	"loandocs/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func issueToken(t *testing.T, authSvc service.AuthService, user *domain.User, userRepo *mocks.MockUserRepo) string {
	t.Helper()
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	out, err := authSvc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	return out.AccessToken
}

func setupAuthRouter(t *testing.T) (*gin.Engine, service.AuthService, *mocks.MockUserRepo, *domain.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "officer@example.com",
		Username:     "officer1",
		FullName:     "Meena Iyer",
		PasswordHash: string(hash),
		Role:         domain.RoleOfficer,
		IsActive:     true,
	}

	userRepo := new(mocks.MockUserRepo)
	authSvc := service.NewAuthService(userRepo, config.JWTConfig{
		Secret:            "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "loandocs",
	})

	r := gin.New()
	protected := r.Group("/", middleware.AuthMiddleware(authSvc))
	protected.GET("/whoami", func(c *gin.Context) {
		userID, err := middleware.GetUserID(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": middleware.GetRole(c)})
	})
	protected.GET("/admin-only", middleware.RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	protected.GET("/back-office", middleware.RequireRole(domain.RoleOfficer, domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, authSvc, userRepo, user
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r, authSvc, userRepo, user := setupAuthRouter(t)
	token := issueToken(t, authSvc, user, userRepo)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.String())
	assert.Contains(t, w.Body.String(), string(domain.RoleOfficer))
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r, _, _, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	r, _, _, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r, _, _, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.valid.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r, authSvc, userRepo, user := setupAuthRouter(t)
	token := issueToken(t, authSvc, user, userRepo)

	// Officer passes the back-office gate.
	req := httptest.NewRequest(http.MethodGet, "/back-office", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Officer is rejected by the admin-only gate.
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

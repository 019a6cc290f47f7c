package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "github.com/mediawatch/labeling-api/pkg/errors"

	"github.com/mediawatch/labeling-api/internal/models"
)

func setupService(t *testing.T, ttl time.Duration) Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewService(NewRepository(db), "test-secret", ttl, bcrypt.MinCost)
}

func TestCreateUserAndLogin(t *testing.T) {
	service := setupService(t, time.Hour)
	ctx := context.Background()

	user, err := service.CreateUser(ctx, CreateUserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAnnotator, user.Role)
	assert.NotEqual(t, "correct horse", user.Password)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := service.Login(ctx, LoginInput{Email: "alice@example.com", Password: "correct horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "alice@example.com", result.User.Email)

		claims, err := service.VerifyToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, models.RoleAnnotator, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, LoginInput{Email: "alice@example.com", Password: "wrong"})
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	})

	t.Run("unknown email gives the same error", func(t *testing.T) {
		_, err := service.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever"})
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := service.CreateUser(ctx, CreateUserInput{
			Name:     "Alice Again",
			Email:    "alice@example.com",
			Password: "another pass",
		})
		assert.Equal(t, apperrors.ErrCodeConflict, apperrors.GetCode(err))
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := service.CreateUser(ctx, CreateUserInput{
			Name:     "Eve",
			Email:    "eve@example.com",
			Password: "some pass",
			Role:     "SUPERUSER",
		})
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
	})
}

func TestVerifyToken(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		service := setupService(t, time.Hour)
		_, err := service.VerifyToken("not-a-token")
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	})

	t.Run("expired token", func(t *testing.T) {
		service := setupService(t, -time.Minute)
		ctx := context.Background()

		_, err := service.CreateUser(ctx, CreateUserInput{
			Name:     "Bob",
			Email:    "bob@example.com",
			Password: "bob password",
		})
		require.NoError(t, err)

		result, err := service.Login(ctx, LoginInput{Email: "bob@example.com", Password: "bob password"})
		require.NoError(t, err)

		_, err = service.VerifyToken(result.Token)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		issuer := setupService(t, time.Hour)
		verifier := NewService(&RepositoryImpl{}, "other-secret", time.Hour, bcrypt.MinCost)

		ctx := context.Background()
		_, err := issuer.CreateUser(ctx, CreateUserInput{
			Name:     "Carol",
			Email:    "carol@example.com",
			Password: "carol password",
		})
		require.NoError(t, err)

		result, err := issuer.Login(ctx, LoginInput{Email: "carol@example.com", Password: "carol password"})
		require.NoError(t, err)

		_, err = verifier.VerifyToken(result.Token)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	})
}

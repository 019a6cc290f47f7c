package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/mediawatch/labeling-api/pkg/errors"

	"github.com/mediawatch/labeling-api/internal/models"
)

// ServiceImpl implements the Service interface. Tokens are HMAC-signed; the
// secret and lifetime come from configuration.
type ServiceImpl struct {
	repository Repository
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewService creates a new auth service
func NewService(repository Repository, secret string, tokenTTL time.Duration, bcryptCost int) Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &ServiceImpl{
		repository: repository,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Login verifies the credential pair and issues a signed token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *ServiceImpl) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.repository.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "invalid email or password")
		}
		return nil, apperrors.FromDatabase("get", "user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: *user}, nil
}

// CreateUser creates a user account with a bcrypt-hashed password
func (s *ServiceImpl) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleAnnotator
	}
	if role != models.RoleAdmin && role != models.RoleAnnotator {
		return nil, apperrors.ValidationError("role", "must be ADMIN or ANNOTATOR")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hashing password")
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.repository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("user", "email already registered")
		}
		return nil, apperrors.FromDatabase("create", "user", err)
	}
	return user, nil
}

// ListUsers returns every user account
func (s *ServiceImpl) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repository.ListUsers(ctx)
	if err != nil {
		return nil, apperrors.FromDatabase("list", "users", err)
	}
	return users, nil
}

// GetUser retrieves one user account
func (s *ServiceImpl) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, apperrors.FromDatabase("get", "user", err)
	}
	return user, nil
}

// VerifyToken parses and validates a token string and returns its claims
func (s *ServiceImpl) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

func (s *ServiceImpl) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "signing token")
	}
	return signed, nil
}

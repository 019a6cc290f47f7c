package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mediawatch/labeling-api/internal/models"
)

// Repository defines the interface for user data access
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Service defines the interface for authentication and user management
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	VerifyToken(tokenString string) (*Claims, error)
}

// Claims is the JWT payload issued at login
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// LoginInput is an email/password credential pair
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult carries the signed token and the authenticated user
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// CreateUserInput is the admin request to create a user account
type CreateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

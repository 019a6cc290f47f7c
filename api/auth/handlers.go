package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mediawatch/labeling-api/api/middleware"
	"github.com/mediawatch/labeling-api/api/types"
	authService "github.com/mediawatch/labeling-api/internal/services/auth"
)

// Login authenticates a user and issues a token
// @Summary      Log in
// @Description  Verify email/password credentials and issue a signed bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body auth.LoginInput true "Email and password"
// @Success      200 {object} auth.LoginResult "Token and user"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      401 {object} types.ErrorResponse "Invalid credentials"
// @Router       /api/v1/auth/login [post]
func Login(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input authService.LoginInput
		if !types.BindJSONOrError(c, &input) {
			return
		}

		result, err := deps.AuthService.Login(c.Request.Context(), input)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, result)
	}
}

// Register creates a new user account
// @Summary      Register user
// @Description  Create a new user account (admin only)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user body auth.CreateUserInput true "User data"
// @Success      201 {object} models.User "Created user"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      409 {object} types.ErrorResponse "Email already registered"
// @Router       /api/v1/auth/register [post]
func Register(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input authService.CreateUserInput
		if !types.BindJSONOrError(c, &input) {
			return
		}

		user, err := deps.AuthService.CreateUser(c.Request.Context(), input)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, user)
	}
}

// ListUsers returns all user accounts
// @Summary      List users
// @Description  Retrieve all user accounts (admin only)
// @Tags         auth
// @Produce      json
// @Success      200 {object} object{users=[]models.User} "List of users"
// @Router       /api/v1/auth/users [get]
func ListUsers(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := deps.AuthService.ListUsers(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// Me returns the authenticated user's account
// @Summary      Current user
// @Description  Retrieve the account of the authenticated principal
// @Tags         auth
// @Produce      json
// @Success      200 {object} models.User "Authenticated user"
// @Failure      401 {object} types.ErrorResponse "Not authenticated"
// @Router       /api/v1/auth/me [get]
func Me(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Not authenticated",
			})
			return
		}

		user, err := deps.AuthService.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, user)
	}
}

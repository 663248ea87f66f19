package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/subfolio-dev/subfolio/db"
	"github.com/subfolio-dev/subfolio/internal/auth"
	"github.com/subfolio-dev/subfolio/internal/models"
	"github.com/subfolio-dev/subfolio/internal/types"
)

var (
	errMissingToken = errors.New("Authorization token is required")
	errBadHeader    = errors.New("Authorization header format must be Bearer {token}")
	errBadToken     = errors.New("Invalid or expired token")
	errUnknownUser  = errors.New("User not found")
)

// AuthMiddleware rejects requests without a valid session.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := resolveUser(ctx)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

// SessionMiddleware attaches the user when a valid session is present and
// lets anonymous requests through; dashboard pages decide how to redirect.
func SessionMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if user, err := resolveUser(ctx); err == nil {
			ctx.Set(types.ContextUserKey, user)
		}
		ctx.Next()
	}
}

func resolveUser(ctx *gin.Context) (types.AuthenticatedUser, error) {
	tokenString, err := tokenFromRequest(ctx)

	if err != nil {
		return types.AuthenticatedUser{}, err
	}

	token, err := auth.VerifyJWT(tokenString)

	if err != nil {
		return types.AuthenticatedUser{}, errBadToken
	}

	userID, err := auth.UserIDFromToken(token)

	if err != nil {
		return types.AuthenticatedUser{}, err
	}

	var user models.User

	if err := db.DB.WithContext(ctx.Request.Context()).Where("id = ?", userID).First(&user).Error; err != nil {
		return types.AuthenticatedUser{}, errUnknownUser
	}

	return types.AuthenticatedUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

// tokenFromRequest prefers the Authorization header and falls back to the
// session cookie set at login.
func tokenFromRequest(ctx *gin.Context) (string, error) {
	if authHeader := ctx.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", errBadHeader
		}

		return parts[1], nil
	}

	if cookie, err := ctx.Cookie(types.TokenCookie); err == nil && cookie != "" {
		return cookie, nil
	}

	return "", errMissingToken
}

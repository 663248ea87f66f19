package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/subfolio-dev/subfolio/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (types.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return types.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(types.AuthenticatedUser)

	if !ok {
		return types.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (string, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return "", err
	}

	return user.ID, nil
}

// CurrentActor is GetCurrentUser for callers that treat a missing session as
// data rather than an error.
func CurrentActor(ctx *gin.Context) *types.AuthenticatedUser {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return nil
	}

	return &user
}

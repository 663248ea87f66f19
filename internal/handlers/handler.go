package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subfolio-dev/subfolio/internal/actions"
	"github.com/subfolio-dev/subfolio/internal/cache"
	"github.com/subfolio-dev/subfolio/internal/config"
	"github.com/subfolio-dev/subfolio/internal/render"
	"github.com/subfolio-dev/subfolio/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler carries the collaborators shared by the API, dashboard and public
// site routes.
type Handler struct {
	DB       *gorm.DB
	Actions  *actions.Actions
	Renderer *render.Renderer
	Cache    *cache.RenderCache
	Hub      *services.RefreshHub
	Config   config.Config
	Logger   *zap.Logger
}

func statusFor(kind actions.Kind) int {
	switch kind {
	case actions.KindUnauthorized:
		return http.StatusUnauthorized
	case actions.KindNotFound:
		return http.StatusNotFound
	case actions.KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respond writes a mutator Result as JSON. created selects 201 for
// successful inserts.
func respond(ctx *gin.Context, res actions.Result, created bool) {
	if !res.OK() {
		ctx.JSON(statusFor(res.Kind), res)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, res)
}

func badRequest(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}

func internalError(ctx *gin.Context) {
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

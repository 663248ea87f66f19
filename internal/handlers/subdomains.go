package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/subfolio-dev/subfolio/internal/data"
	"github.com/subfolio-dev/subfolio/internal/types"
	"github.com/subfolio-dev/subfolio/internal/utils"
	"go.uber.org/zap"
)

func (h *Handler) ListSubdomains(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	subdomains, err := data.ListSubdomains(ctx.Request.Context(), h.DB, userID)

	if err != nil {
		h.Logger.Error("list subdomains", zap.String("user_id", userID), zap.Error(err))
		internalError(ctx)
		return
	}

	response := make([]types.SubdomainResponse, 0, len(subdomains))
	for _, s := range subdomains {
		response = append(response, types.SubdomainResponse{
			ID:        s.ID,
			Name:      s.Name,
			URL:       h.Config.SiteURL(s.Name),
			CreatedAt: s.CreatedAt.Format(time.RFC3339),
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) CreateSubdomain(ctx *gin.Context) {
	var req types.SubdomainForm

	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx)
		return
	}

	res := h.Actions.CreateSubdomain(ctx.Request.Context(), utils.CurrentActor(ctx), req)
	respond(ctx, res, true)
}

func (h *Handler) DeleteSubdomain(ctx *gin.Context) {
	name, err := utils.GetParam(ctx, "name")

	if err != nil {
		badRequest(ctx)
		return
	}

	res := h.Actions.DeleteSubdomain(ctx.Request.Context(), utils.CurrentActor(ctx), name)
	respond(ctx, res, false)
}

// GetSite is the public JSON form of a published portfolio.
func (h *Handler) GetSite(ctx *gin.Context) {
	subdomain, err := data.GetSubdomainData(ctx.Request.Context(), h.DB, ctx.Param("name"))

	if errors.Is(err, data.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Subdomain not found"})
		return
	}

	if err != nil {
		h.Logger.Error("load site", zap.String("name", ctx.Param("name")), zap.Error(err))
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, subdomain)
}

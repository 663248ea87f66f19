package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subfolio-dev/subfolio/internal/cache"
	"github.com/subfolio-dev/subfolio/internal/data"
	"github.com/subfolio-dev/subfolio/internal/render"
	"github.com/subfolio-dev/subfolio/internal/utils"
	"go.uber.org/zap"
)

const htmlContentType = "text/html; charset=utf-8"

// SubdomainHost serves the portfolio for requests addressed to
// <label>.<root domain>. Other hosts fall through to the regular routes.
func (h *Handler) SubdomainHost() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		label, err := utils.ExtractSubdomain(ctx.Request.Host, h.Config.RootDomain)
		if err != nil {
			ctx.Next()
			return
		}

		if ctx.Request.URL.Path != "/" {
			h.notFound(ctx)
			ctx.Abort()
			return
		}

		h.serveSite(ctx, label)
		ctx.Abort()
	}
}

func (h *Handler) PublicSite(ctx *gin.Context) {
	h.serveSite(ctx, ctx.Param("subdomain"))
}

func (h *Handler) serveSite(ctx *gin.Context, name string) {
	name = utils.SanitizeSubdomain(name)

	page, err := h.Cache.GetOrRender(cache.SitePath(name), func() ([]byte, error) {
		subdomain, err := data.GetSubdomainData(ctx.Request.Context(), h.DB, name)
		if err != nil {
			return nil, err
		}

		view, err := render.BuildPortfolio(subdomain)
		if err != nil {
			return nil, err
		}

		return h.Renderer.PortfolioBytes(view)
	})

	if errors.Is(err, data.ErrNotFound) || errors.Is(err, render.ErrNoProfile) {
		h.notFound(ctx)
		return
	}

	if err != nil {
		h.Logger.Error("render portfolio", zap.String("subdomain", name), zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}

	ctx.Data(http.StatusOK, htmlContentType, page)
}

func (h *Handler) notFound(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := h.Renderer.NotFound(&buf); err != nil {
		h.Logger.Error("render not found page", zap.Error(err))
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.Data(http.StatusNotFound, htmlContentType, buf.Bytes())
}

// NotFound is the fallback for unmatched routes.
func (h *Handler) NotFound(ctx *gin.Context) {
	h.notFound(ctx)
}

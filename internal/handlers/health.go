package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheck(ctx *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":    "ok",
		"message":   "Subfolio is running",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if sqlDB, err := h.DB.DB(); err != nil || sqlDB.PingContext(ctx.Request.Context()) != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["message"] = "Database unreachable"
	}

	if h.Cache != nil {
		body["cached_pages"] = h.Cache.ItemCount()
	}

	ctx.JSON(status, body)
}

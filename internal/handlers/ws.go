package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/subfolio-dev/subfolio/internal/data"
	"github.com/subfolio-dev/subfolio/internal/services"
	"github.com/subfolio-dev/subfolio/internal/types"
	"github.com/subfolio-dev/subfolio/internal/utils"
	"go.uber.org/zap"
)

const (
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	// Dashboard pages are served from this host.
	if origin == h.Config.Protocol+"://"+r.Host {
		return true
	}

	for _, allowed := range types.AllowedOrigins(h.Config.ClientURL, h.Config.AllowedOrigins) {
		if origin == allowed {
			return true
		}
	}
	return false
}

// RefreshSocket subscribes an owner's dashboard to refresh notices for one
// subdomain.
func (h *Handler) RefreshSocket(ctx *gin.Context) {
	subdomainID, err := utils.GetSubdomainID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Subdomain ID is required"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if _, err := data.FindOwnedSubdomain(ctx.Request.Context(), h.DB, subdomainID, userID); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Subdomain not found"})
		return
	}

	upgrader := websocket.Upgrader{CheckOrigin: h.checkOrigin}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	client := h.Hub.Register(subdomainID, conn)
	defer func() {
		h.Hub.Unregister(subdomainID, client)
		h.Logger.Debug("websocket closed", zap.String("subdomain_id", subdomainID))
	}()

	err = client.WriteJSON(services.RefreshMessage{
		Type:        "connected",
		Message:     "WebSocket connection established",
		SubdomainID: subdomainID,
	})

	if err != nil {
		return
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := client.Ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Logger.Debug("websocket read error", zap.String("subdomain_id", subdomainID), zap.Error(err))
			}
			return
		}
	}
}

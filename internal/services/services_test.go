package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRevalidationWebhookSend(t *testing.T) {
	var got RevalidationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hook := NewRevalidationWebhook(srv.URL, "shh", zap.NewNop())
	require.NoError(t, hook.Send(context.Background(), "sub-1", []string{"/s/acme"}))

	assert.Equal(t, "shh", got.Secret)
	assert.Equal(t, "sub-1", got.SubdomainID)
	assert.Equal(t, []string{"/s/acme"}, got.Paths)
}

func TestRevalidationWebhookStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hook := NewRevalidationWebhook(srv.URL, "wrong", zap.NewNop())
	err := hook.Send(context.Background(), "sub-1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestRevalidationWebhookDisabled(t *testing.T) {
	hook := NewRevalidationWebhook("", "", zap.NewNop())
	hook.Notify("sub-1", []string{"/s/acme"})
}

func TestRefreshHubBroadcast(t *testing.T) {
	hub := NewRefreshHub(zap.NewNop())
	upgrader := websocket.Upgrader{}
	registered := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := hub.Register("sub-1", conn)
		close(registered)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Unregister("sub-1", client)
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("client was never registered")
	}
	assert.Equal(t, 1, hub.ClientCount("sub-1"))

	hub.Broadcast("other", nil)
	hub.Broadcast("sub-1", []string{"/dashboard/sub-1/work"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg RefreshMessage
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "refresh", msg.Type)
	assert.Equal(t, "sub-1", msg.SubdomainID)
	assert.Equal(t, []string{"/dashboard/sub-1/work"}, msg.Paths)
}

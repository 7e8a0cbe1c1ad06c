package gateway

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/connect-api/internal/auth"
	"github.com/devconnect/connect-api/internal/models"
)

func dialNotificationStream(t *testing.T, notifier *Notifier, user *models.User) *websocket.Conn {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		c.Set(auth.UserKey, user)
		c.Set(auth.UserIDKey, user.ID)
	}, notifier.Stream)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })

	// The server registers the socket after the upgrade; wait for it so
	// notifications sent right away are not dropped.
	require.Eventually(t, func() bool {
		notifier.mu.RLock()
		defer notifier.mu.RUnlock()
		return len(notifier.conns[user.ID]) == 1
	}, time.Second, 10*time.Millisecond)

	return conn
}

func TestNotifyConnectionRequest(t *testing.T) {
	notifier := NewNotifier()
	receiver := &models.User{ID: "user-2", FirstName: "Bob", LastName: "Ray", Email: "bob@example.com"}
	conn := dialNotificationStream(t, notifier, receiver)

	request := &models.ConnectionRequest{
		ID:         "req-1",
		FromUserID: "user-1",
		ToUserID:   receiver.ID,
		Status:     models.ConnectionStatusInterested,
	}
	notifier.NotifyConnectionRequest(context.Background(), "Ann has expressed interest in connecting with Bob!", request)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var event ConnectionRequestEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "connection_request", event.Type)
	assert.Equal(t, "Ann has expressed interest in connecting with Bob!", event.Message)
	assert.Equal(t, "req-1", event.Request.ID)
}

func TestNotifyConnectionRequestConcurrent(t *testing.T) {
	notifier := NewNotifier()
	receiver := &models.User{ID: "user-2", FirstName: "Bob", LastName: "Ray", Email: "bob@example.com"}
	conn := dialNotificationStream(t, notifier, receiver)

	request := &models.ConnectionRequest{
		ID:         "req-1",
		FromUserID: "user-1",
		ToUserID:   receiver.ID,
		Status:     models.ConnectionStatusInterested,
	}

	// Handlers notify from separate request goroutines, so pushes to the
	// same socket must not interleave on the wire.
	const senders = 32
	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			notifier.NotifyConnectionRequest(context.Background(), "Ann has expressed interest in connecting with Bob!", request)
		}()
	}
	wg.Wait()

	for i := 0; i < senders; i++ {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		var event ConnectionRequestEvent
		require.NoError(t, conn.ReadJSON(&event))
		assert.Equal(t, "connection_request", event.Type)
		assert.Equal(t, receiver.ID, event.Request.ToUserID)
	}
}

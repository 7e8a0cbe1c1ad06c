package gateway

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/devconnect/connect-api/internal/auth"
	"github.com/devconnect/connect-api/internal/models"
)

var wsTracer = otel.Tracer("notification-stream")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict origins once the frontend host is fixed
		return true
	},
}

const notificationWriteTimeout = 10 * time.Second

// ConnectionRequestEvent is pushed to the receiver of a new connection request
type ConnectionRequestEvent struct {
	Type    string                   `json:"type"`
	Message string                   `json:"message"`
	Request models.ConnectionRequest `json:"request"`
}

// Notifier fans connection-request events out to connected receivers.
// Delivery is best-effort: a user with no open socket simply misses the
// event, the request itself is already persisted.
type Notifier struct {
	mu sync.RWMutex
	// The websocket package permits only one concurrent writer per
	// connection, so every socket carries its own write lock.
	conns  map[string]map[*websocket.Conn]*sync.Mutex
	tracer trace.Tracer
}

// NewNotifier creates a new notification hub
func NewNotifier() *Notifier {
	return &Notifier{
		conns:  make(map[string]map[*websocket.Conn]*sync.Mutex),
		tracer: wsTracer,
	}
}

// Stream handles GET /api/ws/notifications. The route sits behind
// RequireAuth, so the user is already resolved; the socket is registered
// under their ID and held open until the client disconnects.
// @Summary Stream connection-request notifications
// @Description WebSocket endpoint pushing events for incoming connection requests
// @Tags requests
// @Success 101 "Switching Protocols"
// @Failure 401 {object} models.ErrorResponse
// @Security CookieAuth
// @Router /ws/notifications [get]
func (n *Notifier) Stream(c *gin.Context) {
	_, span := n.tracer.Start(c.Request.Context(), "notifications.stream")
	defer span.End()

	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized: please login first",
			Code:    models.ErrCodeUnauthorized,
		})
		return
	}

	span.SetAttributes(attribute.String("user.id", user.ID))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		span.RecordError(err)
		log.Printf(`{"level":"warn","message":"WebSocket upgrade failed","user_id":"%s","error":"%v"}`, user.ID, err)
		return
	}

	n.register(user.ID, conn)
	log.Printf(`{"level":"info","message":"Notification stream opened","user_id":"%s"}`, user.ID)

	// Block reading until the client goes away; inbound frames are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	n.unregister(user.ID, conn)
	conn.Close()
	log.Printf(`{"level":"info","message":"Notification stream closed","user_id":"%s"}`, user.ID)
}

// NotifyConnectionRequest pushes the event to every open socket of the
// request's receiver
func (n *Notifier) NotifyConnectionRequest(ctx context.Context, message string, request *models.ConnectionRequest) {
	_, span := n.tracer.Start(ctx, "notifications.notify_connection_request")
	defer span.End()

	span.SetAttributes(
		attribute.String("user.id", request.ToUserID),
		attribute.String("request.status", string(request.Status)),
	)

	event := ConnectionRequestEvent{
		Type:    "connection_request",
		Message: message,
		Request: *request,
	}

	n.mu.RLock()
	sockets := make(map[*websocket.Conn]*sync.Mutex, len(n.conns[request.ToUserID]))
	for conn, writeMu := range n.conns[request.ToUserID] {
		sockets[conn] = writeMu
	}
	n.mu.RUnlock()

	for conn, writeMu := range sockets {
		writeMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(notificationWriteTimeout))
		err := conn.WriteJSON(event)
		writeMu.Unlock()
		if err != nil {
			span.RecordError(err)
			log.Printf(`{"level":"warn","message":"Failed to push notification","user_id":"%s","error":"%v"}`, request.ToUserID, err)
			n.unregister(request.ToUserID, conn)
			conn.Close()
		}
	}
}

func (n *Notifier) register(userID string, conn *websocket.Conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conns[userID] == nil {
		n.conns[userID] = make(map[*websocket.Conn]*sync.Mutex)
	}
	n.conns[userID][conn] = &sync.Mutex{}
}

func (n *Notifier) unregister(userID string, conn *websocket.Conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.conns[userID], conn)
	if len(n.conns[userID]) == 0 {
		delete(n.conns, userID)
	}
}

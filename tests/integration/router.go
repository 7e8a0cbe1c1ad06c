package integration

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/connect-api/internal/auth"
	"github.com/devconnect/connect-api/internal/gateway"
	"github.com/devconnect/connect-api/internal/metrics"
	"github.com/devconnect/connect-api/tests/helpers"
)

const testJWTSecret = "integration-test-signing-key"

// newAPIRouter wires the full HTTP surface against a real database, the same
// way main does minus the server plumbing.
func newAPIRouter(t *testing.T, testDB *helpers.TestDatabase) (*gin.Engine, *auth.JWTManager) {
	t.Helper()

	jwtManager, err := auth.NewJWTManager(testJWTSecret)
	require.NoError(t, err)

	authMetrics, err := metrics.NewAuthMetrics()
	require.NoError(t, err)

	notifier := gateway.NewNotifier()
	handler := gateway.NewHandler(testDB.Users, testDB.Connections, testDB.Todos, jwtManager, authMetrics, notifier)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api")
	api.POST("/auth/signup", handler.Signup)
	api.POST("/auth/login", handler.Login)
	api.POST("/auth/logout", handler.Logout)

	protected := api.Group("")
	protected.Use(auth.RequireAuth(jwtManager, testDB.Users, authMetrics))
	protected.GET("/profile/view", handler.ViewProfile)
	protected.PATCH("/profile/edit", handler.EditProfile)
	protected.PATCH("/profile/password", handler.ChangePassword)
	protected.GET("/users", handler.ListUsers)
	protected.GET("/users/:id", handler.GetUser)
	protected.DELETE("/users/:id", handler.DeleteUser)
	protected.POST("/requests/send/:status/:toUserId", handler.SendConnectionRequest)
	protected.POST("/todos", handler.CreateTodo)
	protected.GET("/todos", handler.ListTodos)
	protected.GET("/todos/:id", handler.GetTodo)
	protected.PATCH("/todos/:id", handler.UpdateTodo)
	protected.DELETE("/todos/:id", handler.DeleteTodo)

	return router, jwtManager
}

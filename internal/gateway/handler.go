package gateway

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/connect-api/internal/auth"
	"github.com/devconnect/connect-api/internal/config"
	"github.com/devconnect/connect-api/internal/metrics"
	"github.com/devconnect/connect-api/internal/models"
	"github.com/devconnect/connect-api/internal/store"
	"github.com/devconnect/connect-api/internal/validation"
)

// Handler handles HTTP requests for the gateway layer
type Handler struct {
	users       store.UserStore
	connections store.ConnectionStore
	todos       store.TodoStore
	jwtManager  *auth.JWTManager
	metrics     *metrics.AuthMetrics
	notifier    *Notifier
}

// NewHandler creates a new gateway handler
func NewHandler(users store.UserStore, connections store.ConnectionStore, todos store.TodoStore, jwtManager *auth.JWTManager, authMetrics *metrics.AuthMetrics, notifier *Notifier) *Handler {
	return &Handler{
		users:       users,
		connections: connections,
		todos:       todos,
		jwtManager:  jwtManager,
		metrics:     authMetrics,
		notifier:    notifier,
	}
}

// respondError maps a typed error to its status code and response body.
// Internal errors are logged server-side and never echoed to the client.
func respondError(c *gin.Context, err error) {
	var validationErr *validation.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: validationErr.Message,
			Code:    models.ErrCodeValidationFailed,
		})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Already exists",
			Code:    models.ErrCodeAlreadyExists,
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: "Not found",
			Code:    models.ErrCodeNotFound,
		})
	default:
		log.Printf(`{"level":"error","message":"Request failed","path":"%s","error":"%v"}`, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Internal server error",
			Code:    models.ErrCodeInternalError,
		})
	}
}

// SignupResponse represents a successful account creation
type SignupResponse struct {
	Message string         `json:"message"`
	User    models.Profile `json:"user"`
}

// Signup godoc
// @Summary Create account
// @Description Register a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup payload"
// @Success 201 {object} SignupResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request",
			Code:    models.ErrCodeInvalidRequest,
		})
		return
	}

	if err := validation.ValidateSignup(req); err != nil {
		respondError(c, err)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Skills:         []string{},
	}

	if err := h.users.Insert(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "Email already registered",
				Code:    models.ErrCodeAlreadyExists,
			})
			return
		}
		respondError(c, err)
		return
	}

	h.metrics.RecordSignup(c.Request.Context())
	log.Printf(`{"level":"info","message":"User created","user_id":"%s"}`, user.ID)

	c.JSON(http.StatusCreated, SignupResponse{
		Message: "User created successfully",
		User:    user.ToProfile(),
	})
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Message string         `json:"message"`
	User    models.Profile `json:"user"`
}

// Login godoc
// @Summary User login
// @Description Authenticate and set the session token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Email and password are required",
			Code:    models.ErrCodeInvalidRequest,
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same message as a wrong password: the response must not
			// reveal which of the two was wrong.
			h.metrics.RecordLoginFailure(c.Request.Context(), "unknown_email")
			log.Printf(`{"level":"warn","message":"Login for unknown email"}`)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Invalid email or password",
				Code:    models.ErrCodeUnauthorized,
			})
			return
		}
		respondError(c, err)
		return
	}

	if !auth.VerifyPassword(req.Password, user.HashedPassword) {
		h.metrics.RecordLoginFailure(c.Request.Context(), "wrong_password")
		log.Printf(`{"level":"warn","message":"Login with wrong password","user_id":"%s"}`, user.ID)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Invalid email or password",
			Code:    models.ErrCodeUnauthorized,
		})
		return
	}

	token, err := h.jwtManager.GenerateToken(c.Request.Context(), user.ID, config.TokenLifetime)
	if err != nil {
		respondError(c, err)
		return
	}

	// The cookie caps the browser session at 8 hours; the signed token
	// itself stays valid for its full 10-day window.
	c.SetCookie(auth.TokenCookieName, token, int(config.CookieLifetime.Seconds()), "/", "", false, true)

	h.metrics.RecordLogin(c.Request.Context())
	log.Printf(`{"level":"info","message":"User logged in","user_id":"%s"}`, user.ID)

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    user.ToProfile(),
	})
}

// Logout godoc
// @Summary User logout
// @Description Clear the session token cookie. The issued token itself is
// @Description stateless and remains valid until its natural expiry.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(auth.TokenCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

package gateway

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/connect-api/internal/models"
	"github.com/devconnect/connect-api/internal/store"
)

// GetUser godoc
// @Summary Get user by ID
// @Description Return a single user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} models.ErrorResponse
// @Security CookieAuth
// @Router /users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "User not found",
				Code:    models.ErrCodeNotFound,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Message: "Successfully get user data",
		Data:    user.ToProfile(),
	})
}

// UserListResponse wraps a list of user profiles
type UserListResponse struct {
	Message string           `json:"message"`
	Data    []models.Profile `json:"data"`
}

// ListUsers godoc
// @Summary List users
// @Description Return all user profiles
// @Tags users
// @Produce json
// @Success 200 {object} UserListResponse
// @Security CookieAuth
// @Router /users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	profiles := make([]models.Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.ToProfile())
	}

	c.JSON(http.StatusOK, UserListResponse{
		Message: "Successfully get users",
		Data:    profiles,
	})
}

// DeleteUser godoc
// @Summary Delete user by ID
// @Description Remove a user account. Deleting the same ID twice returns 404 on the second call.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Security CookieAuth
// @Router /users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "User not found",
				Code:    models.ErrCodeNotFound,
			})
			return
		}
		respondError(c, err)
		return
	}

	log.Printf(`{"level":"info","message":"User deleted","user_id":"%s"}`, id)

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

package gateway

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/connect-api/internal/auth"
	"github.com/devconnect/connect-api/internal/models"
	"github.com/devconnect/connect-api/internal/store"
	"github.com/devconnect/connect-api/internal/validation"
)

// ProfileResponse wraps a user profile payload
type ProfileResponse struct {
	Message string         `json:"message"`
	Data    models.Profile `json:"data"`
}

// ViewProfile godoc
// @Summary View own profile
// @Description Return the authenticated user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} models.ErrorResponse
// @Security CookieAuth
// @Router /profile/view [get]
func (h *Handler) ViewProfile(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized: please login first",
			Code:    models.ErrCodeUnauthorized,
		})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Message: "Successfully get profile data",
		Data:    user.ToProfile(),
	})
}

// EditProfile godoc
// @Summary Edit own profile
// @Description Apply an allow-listed partial update to the authenticated user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Fields to update"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security CookieAuth
// @Router /profile/edit [patch]
func (h *Handler) EditProfile(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized: please login first",
			Code:    models.ErrCodeUnauthorized,
		})
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request",
			Code:    models.ErrCodeInvalidRequest,
		})
		return
	}

	// Both checks run before any persistence call: the allow-list guard
	// first, then the typed field rules.
	if err := validation.ValidateProfileEdit(fields); err != nil {
		respondError(c, err)
		return
	}
	if err := validation.ValidateProfileFields(fields); err != nil {
		respondError(c, err)
		return
	}

	update, err := buildProfileUpdate(fields)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.users.Update(c.Request.Context(), user.ID, update)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf(`{"level":"info","message":"Profile updated","user_id":"%s"}`, user.ID)

	c.JSON(http.StatusOK, ProfileResponse{
		Message: "Profile updated successfully",
		Data:    updated.ToProfile(),
	})
}

// buildProfileUpdate converts validated JSON payload values into the typed
// store update. Passwords arriving through the edit route are hashed here;
// plaintext never reaches the store.
func buildProfileUpdate(fields map[string]interface{}) (map[string]any, error) {
	update := make(map[string]any, len(fields))
	for key, value := range fields {
		switch key {
		case "password":
			hashed, err := auth.HashPassword(value.(string))
			if err != nil {
				return nil, err
			}
			update[key] = hashed
		case "age":
			update[key] = int(value.(float64))
		case "skills":
			raw := value.([]interface{})
			skills := make([]string, 0, len(raw))
			for _, entry := range raw {
				s, ok := entry.(string)
				if !ok {
					return nil, &validation.ValidationError{Message: "Skills must be strings"}
				}
				skills = append(skills, s)
			}
			update[key] = skills
		default:
			update[key] = value
		}
	}
	return update, nil
}

// ChangePassword godoc
// @Summary Change own password
// @Description Verify the current password and replace it with a new one
// @Tags profile
// @Accept json
// @Produce json
// @Param request body map[string]string true "currentPassword and newPassword"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security CookieAuth
// @Router /profile/password [patch]
func (h *Handler) ChangePassword(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized: please login first",
			Code:    models.ErrCodeUnauthorized,
		})
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request",
			Code:    models.ErrCodeInvalidRequest,
		})
		return
	}

	change := validation.PasswordChange{}
	if v, ok := fields["currentPassword"].(string); ok {
		change.CurrentPassword = v
	}
	if v, ok := fields["newPassword"].(string); ok {
		change.NewPassword = v
	}

	if err := validation.ValidatePasswordChange(fields, change); err != nil {
		respondError(c, err)
		return
	}

	// Requiring the current password keeps a stolen token from being able
	// to lock the account owner out.
	if !auth.VerifyPassword(change.CurrentPassword, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Current password is incorrect",
			Code:    models.ErrCodeUnauthorized,
		})
		return
	}

	hashedPassword, err := auth.HashPassword(change.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.users.UpdatePassword(c.Request.Context(), user.ID, hashedPassword); err != nil {
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

	log.Printf(`{"level":"info","message":"Password changed","user_id":"%s"}`, user.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

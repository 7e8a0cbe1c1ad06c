package gateway

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/connect-api/internal/auth"
	"github.com/devconnect/connect-api/internal/models"
	"github.com/devconnect/connect-api/internal/store"
)

// ConnectionResponse wraps a stored connection request
type ConnectionResponse struct {
	Message string                   `json:"message"`
	Data    models.ConnectionRequest `json:"data"`
}

// SendConnectionRequest godoc
// @Summary Send connection request
// @Description Create a directed connection request to another user
// @Tags requests
// @Produce json
// @Param status path string true "Request status" Enums(ignored, interested)
// @Param toUserId path string true "Receiver user ID"
// @Success 200 {object} ConnectionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security CookieAuth
// @Router /requests/send/{status}/{toUserId} [post]
func (h *Handler) SendConnectionRequest(c *gin.Context) {
	sender, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Message: "Unauthorized: please login first",
			Code:    models.ErrCodeUnauthorized,
		})
		return
	}

	status := models.ConnectionStatus(c.Param("status"))
	toUserID := c.Param("toUserId")

	if !status.IsSendable() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid status type: " + string(status),
			Code:    models.ErrCodeInvalidRequest,
		})
		return
	}

	// Self-requests are rejected before any persistence call.
	if toUserID == sender.ID {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Cannot send connection request to yourself",
			Code:    models.ErrCodeValidationFailed,
		})
		return
	}

	receiver, err := h.users.GetByID(c.Request.Context(), toUserID)
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

	// Fast-path duplicate check. The unique index on the unordered pair is
	// the authoritative guard; a concurrent insert between this check and
	// ours still comes back as ErrDuplicate below.
	exists, err := h.connections.ExistsBetween(c.Request.Context(), sender.ID, toUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Connection request already exists",
			Code:    models.ErrCodeAlreadyExists,
		})
		return
	}

	request := &models.ConnectionRequest{
		FromUserID: sender.ID,
		ToUserID:   toUserID,
		Status:     status,
	}

	if err := h.connections.Insert(c.Request.Context(), request); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "Connection request already exists",
				Code:    models.ErrCodeAlreadyExists,
			})
			return
		}
		respondError(c, err)
		return
	}

	message := connectionMessage(status, sender.FirstName, receiver.FirstName)

	log.Printf(`{"level":"info","message":"Connection request sent","from_user_id":"%s","to_user_id":"%s","status":"%s"}`,
		sender.ID, toUserID, status)

	if h.notifier != nil {
		h.notifier.NotifyConnectionRequest(c.Request.Context(), message, request)
	}

	c.JSON(http.StatusOK, ConnectionResponse{
		Message: message,
		Data:    *request,
	})
}

func connectionMessage(status models.ConnectionStatus, senderName, receiverName string) string {
	switch status {
	case models.ConnectionStatusInterested:
		return fmt.Sprintf("%s has expressed interest in connecting with %s!", senderName, receiverName)
	case models.ConnectionStatusIgnored:
		return fmt.Sprintf("%s has marked the connection with %s as ignored.", senderName, receiverName)
	default:
		return fmt.Sprintf("%s sent a connection request to %s (status: %s).", senderName, receiverName, status)
	}
}

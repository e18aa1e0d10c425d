package messaging

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careline/social-api/internal/handler"
	"github.com/careline/social-api/internal/middleware"
	"github.com/careline/social-api/internal/model"
	"github.com/careline/social-api/internal/service/messaging"
	apperrors "github.com/careline/social-api/pkg/errors"
)

type Handler struct {
	svc messaging.Service
}

func NewHandler(svc messaging.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/messages/:id", h.GetConversation)
	r.POST("/messages/:id", h.SendMessage)
	r.GET("/notifications", h.ListNotifications)
}

// GetConversation renders the thread with the target profile. Opening it
// marks the target's messages to the caller as read.
func (h *Handler) GetConversation(c *gin.Context) {
	callerID, ok := callerProfileID(c)
	if !ok {
		return
	}

	withID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid profile ID"))
		return
	}

	conversation, err := h.svc.Conversation(c.Request.Context(), callerID, withID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(conversation))
}

// SendMessage creates a message and bounces back to the conversation view,
// so a refresh re-fetches the thread instead of resubmitting.
func (h *Handler) SendMessage(c *gin.Context) {
	callerID, ok := callerProfileID(c)
	if !ok {
		return
	}

	toID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid profile ID"))
		return
	}

	var req model.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.ValidationResponse(err))
		return
	}

	if _, err := h.svc.Send(c.Request.Context(), callerID, toID, req.Text); err != nil {
		c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, "/messages/"+toID.String())
}

// ListNotifications is read-only; markers are cleared only by opening the
// corresponding thread.
func (h *Handler) ListNotifications(c *gin.Context) {
	callerID, ok := callerProfileID(c)
	if !ok {
		return
	}

	notifications, err := h.svc.Notifications(c.Request.Context(), callerID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(notifications))
}

func callerProfileID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextProfileID))
	if err != nil {
		c.Error(apperrors.Unauthorized(err))
		return uuid.Nil, false
	}
	return id, true
}

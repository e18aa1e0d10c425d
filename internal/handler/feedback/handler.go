package feedback

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careline/social-api/internal/handler"
	"github.com/careline/social-api/internal/middleware"
	"github.com/careline/social-api/internal/model"
	"github.com/careline/social-api/internal/service/feedback"
	apperrors "github.com/careline/social-api/pkg/errors"
)

type Handler struct {
	svc feedback.Service
}

func NewHandler(svc feedback.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/feedback/:id", h.SubmitFeedback)
}

// SubmitFeedback creates a feedback record about the target profile. An
// invalid form is silently discarded; either way the caller lands back on
// the target's profile page. Historical behavior, kept deliberately.
func (h *Handler) SubmitFeedback(c *gin.Context) {
	callerID, ok := callerProfileID(c)
	if !ok {
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid profile ID"))
		return
	}

	var req model.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debug().Err(err).Str("target", targetID.String()).Msg("discarding invalid feedback form")
		c.Redirect(http.StatusFound, "/person/"+targetID.String())
		return
	}

	if _, err := h.svc.Submit(c.Request.Context(), callerID, targetID, &req); err != nil {
		c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, "/person/"+targetID.String())
}

func callerProfileID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextProfileID))
	if err != nil {
		c.Error(apperrors.Unauthorized(err))
		return uuid.Nil, false
	}
	return id, true
}

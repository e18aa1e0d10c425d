package social

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careline/social-api/internal/handler"
	"github.com/careline/social-api/internal/middleware"
	"github.com/careline/social-api/internal/service/social"
	apperrors "github.com/careline/social-api/pkg/errors"
)

type Handler struct {
	svc social.Service
}

func NewHandler(svc social.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/follow/:id", h.Follow)
	r.POST("/unfollow/:id", h.Unfollow)
	r.GET("/following", h.ListFollowing)
}

// Follow adds the caller→target edge and redirects to the target profile.
// Re-following is a harmless no-op.
func (h *Handler) Follow(c *gin.Context) {
	h.mutateEdge(c, h.svc.Follow)
}

// Unfollow removes the edge; removing an absent edge is a no-op too.
func (h *Handler) Unfollow(c *gin.Context) {
	h.mutateEdge(c, h.svc.Unfollow)
}

func (h *Handler) mutateEdge(c *gin.Context, op func(ctx context.Context, followerID, followingID uuid.UUID) error) {
	callerID, ok := callerProfileID(c)
	if !ok {
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid profile ID"))
		return
	}

	if err := op(c.Request.Context(), callerID, targetID); err != nil {
		c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, "/person/"+targetID.String())
}

func (h *Handler) ListFollowing(c *gin.Context) {
	callerID, ok := callerProfileID(c)
	if !ok {
		return
	}

	profiles, err := h.svc.ListFollowing(c.Request.Context(), callerID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profiles))
}

func callerProfileID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextProfileID))
	if err != nil {
		c.Error(apperrors.Unauthorized(err))
		return uuid.Nil, false
	}
	return id, true
}

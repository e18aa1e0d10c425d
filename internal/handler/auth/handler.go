package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careline/social-api/internal/handler"
	"github.com/careline/social-api/internal/middleware"
	"github.com/careline/social-api/internal/model"
	"github.com/careline/social-api/internal/service/auth"
)

type Handler struct {
	svc auth.Service
}

func NewHandler(svc auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.RefreshToken)
}

// Home redirects authenticated callers to their own profile page and shows
// the landing document to everyone else.
func (h *Handler) Home(c *gin.Context) {
	if profileID := c.GetString(middleware.ContextProfileID); profileID != "" {
		c.Redirect(http.StatusFound, "/person/"+profileID)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"message": "welcome to careline",
	}))
}

// Register creates the account and profile and logs the new account in.
// A failed form produces field errors and no side effects.
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.ValidationResponse(err))
		return
	}

	profile, tokens, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"profile": profile,
		"tokens":  tokens,
	}))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.ValidationResponse(err))
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid credentials"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.ValidationResponse(err))
		return
	}

	tokens, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid refresh token"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

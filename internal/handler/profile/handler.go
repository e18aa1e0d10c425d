package profile

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careline/social-api/internal/handler"
	"github.com/careline/social-api/internal/middleware"
	"github.com/careline/social-api/internal/model"
	"github.com/careline/social-api/internal/service/profile"
	apperrors "github.com/careline/social-api/pkg/errors"
)

type Handler struct {
	svc profile.Service
}

func NewHandler(svc profile.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/person/:id", h.GetPerson)
	r.GET("/search", h.Search)
	r.GET("/search/doctors", h.SearchDoctors)
	r.GET("/search/patients", h.SearchPatients)
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/editprofile", h.GetEditProfile)
	r.POST("/editprofile", h.EditProfile)
}

// GetPerson renders a profile plus the feedback visible on it.
func (h *Handler) GetPerson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid profile ID"))
		return
	}

	view, err := h.svc.GetView(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

// Search looks up profiles by username fragment. A blank query sends the
// caller back to the home page instead of listing everyone.
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("username"))
	if query == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	profiles, err := h.svc.SearchByUsername(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profiles))
}

func (h *Handler) SearchDoctors(c *gin.Context) {
	profiles, err := h.svc.ListDoctors(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(profiles))
}

func (h *Handler) SearchPatients(c *gin.Context) {
	profiles, err := h.svc.ListPatients(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(profiles))
}

// GetEditProfile returns the caller's current editable fields, shaped by
// role so the client can render the right form.
func (h *Handler) GetEditProfile(c *gin.Context) {
	callerID, ok := callerProfileID(c)
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), callerID)
	if err != nil {
		c.Error(err)
		return
	}

	if p.IsDoctor {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(model.DoctorEditRequest{
			AboutMe:       p.AboutMe,
			Qualification: p.Qualification,
			Education:     p.Education,
			Workplace:     p.Workplace,
		}))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.PatientEditRequest{
		AboutMe: p.AboutMe,
	}))
}

// EditProfile validates the role-appropriate form variant, applies it and
// redirects to the caller's own profile page.
func (h *Handler) EditProfile(c *gin.Context) {
	callerID, ok := callerProfileID(c)
	if !ok {
		return
	}

	current, err := h.svc.Get(c.Request.Context(), callerID)
	if err != nil {
		c.Error(err)
		return
	}

	var edit model.ProfileEdit
	if current.IsDoctor {
		var req model.DoctorEditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, handler.ValidationResponse(err))
			return
		}
		edit = model.ProfileEdit{
			AboutMe:       req.AboutMe,
			Qualification: req.Qualification,
			Education:     req.Education,
			Workplace:     req.Workplace,
		}
	} else {
		var req model.PatientEditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, handler.ValidationResponse(err))
			return
		}
		edit = model.ProfileEdit{AboutMe: req.AboutMe}
	}

	if _, err := h.svc.Update(c.Request.Context(), callerID, &edit); err != nil {
		c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, "/person/"+callerID.String())
}

func callerProfileID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextProfileID))
	if err != nil {
		c.Error(apperrors.Unauthorized(err))
		return uuid.Nil, false
	}
	return id, true
}

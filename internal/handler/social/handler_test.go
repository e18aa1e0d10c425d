package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/careline/social-api/internal/middleware"
	"github.com/careline/social-api/internal/model"
)

type call struct {
	op          string
	followerID  uuid.UUID
	followingID uuid.UUID
}

type fakeService struct {
	calls []call
}

func (s *fakeService) Follow(_ context.Context, followerID, followingID uuid.UUID) error {
	s.calls = append(s.calls, call{"follow", followerID, followingID})
	return nil
}

func (s *fakeService) Unfollow(_ context.Context, followerID, followingID uuid.UUID) error {
	s.calls = append(s.calls, call{"unfollow", followerID, followingID})
	return nil
}

func (s *fakeService) ListFollowing(_ context.Context, _ uuid.UUID) ([]*model.Profile, error) {
	return []*model.Profile{{Username: "drsmith", IsDoctor: true}}, nil
}

func newTestRouter(svc *fakeService, callerID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextProfileID, callerID.String())
	})
	NewHandler(svc).RegisterRoutes(&r.RouterGroup)
	return r
}

func TestFollowRedirectsToTargetProfile(t *testing.T) {
	svc := &fakeService{}
	caller := uuid.New()
	target := uuid.New()
	r := newTestRouter(svc, caller)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/follow/"+target.String(), nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/person/"+target.String(), w.Header().Get("Location"))
	assert.Equal(t, []call{{"follow", caller, target}}, svc.calls)
}

func TestUnfollowRedirectsToTargetProfile(t *testing.T) {
	svc := &fakeService{}
	caller := uuid.New()
	target := uuid.New()
	r := newTestRouter(svc, caller)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/unfollow/"+target.String(), nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/person/"+target.String(), w.Header().Get("Location"))
	assert.Equal(t, []call{{"unfollow", caller, target}}, svc.calls)
}

func TestFollowRejectsBadProfileID(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/follow/42", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.calls)
}

func TestListFollowing(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc, uuid.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/following", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "drsmith")
}

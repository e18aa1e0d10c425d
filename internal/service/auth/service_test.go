package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careline/social-api/config"
	"github.com/careline/social-api/internal/email"
	"github.com/careline/social-api/internal/model"
	"github.com/careline/social-api/pkg/auth"
	apperrors "github.com/careline/social-api/pkg/errors"
	"github.com/careline/social-api/pkg/security"
)

type fakeUserRepo struct {
	byID       map[uuid.UUID]*model.User
	byUsername map[string]*model.User
	lookupErr  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[uuid.UUID]*model.User),
		byUsername: make(map[string]*model.User),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.byID[user.ID] = user
	r.byUsername[user.Username] = user
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	if u, ok := r.byUsername[username]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user", nil)
}

type fakeProfileRepo struct {
	byID     map[uuid.UUID]*model.Profile
	byUserID map[uuid.UUID]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		byID:     make(map[uuid.UUID]*model.Profile),
		byUserID: make(map[uuid.UUID]*model.Profile),
	}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *model.Profile) error {
	r.byID[p.ID] = p
	r.byUserID[p.UserID] = p
	return nil
}

func (r *fakeProfileRepo) Get(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("profile", nil)
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Profile, error) {
	if p, ok := r.byUserID[userID]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("profile", nil)
}

func (r *fakeProfileRepo) Update(_ context.Context, p *model.Profile) error {
	r.byID[p.ID] = p
	r.byUserID[p.UserID] = p
	return nil
}

func (r *fakeProfileRepo) SearchByUsername(_ context.Context, _ string) ([]*model.Profile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) ListByRole(_ context.Context, _ bool) ([]*model.Profile, error) {
	return nil, nil
}

func newTestService() (Service, *fakeUserRepo, *fakeProfileRepo) {
	userRepo := newFakeUserRepo()
	profileRepo := newFakeProfileRepo()
	jwtSvc := auth.NewJWTService(auth.Config{Secret: "test-secret", RefreshSecret: "test-refresh"})
	hasher := security.NewBcryptHasher(4)
	emailSvc := email.NewService(config.EmailConfig{Enabled: false})
	return NewService(userRepo, profileRepo, jwtSvc, hasher, emailSvc), userRepo, profileRepo
}

func TestRegisterClearsDoctorTypeForPatients(t *testing.T) {
	svc, _, profiles := newTestService()

	profile, _, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username:   "alice",
		Password:   "password123",
		IsDoctor:   false,
		DoctorType: "cardiologist",
	})
	require.NoError(t, err)

	assert.False(t, profile.IsDoctor)
	assert.Empty(t, profile.DoctorType)

	stored, err := profiles.Get(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.DoctorType)
}

func TestRegisterKeepsDoctorTypeForDoctors(t *testing.T) {
	svc, _, _ := newTestService()

	profile, _, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username:   "bob",
		Password:   "password123",
		IsDoctor:   true,
		DoctorType: "cardiologist",
	})
	require.NoError(t, err)

	assert.True(t, profile.IsDoctor)
	assert.Equal(t, "cardiologist", profile.DoctorType)
}

func TestRegisterLogsTheNewAccountIn(t *testing.T) {
	svc, _, _ := newTestService()

	profile, tokens, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "carol",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	claims, err := svc.ValidateToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, claims.ProfileID)
	assert.Equal(t, "carol", claims.Username)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "dave",
		Password: "password123",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), &model.RegisterRequest{
		Username: "dave",
		Password: "password456",
	})
	assert.Error(t, err)
}

// A store failure on the username check must abort registration instead of
// reading as "username free".
func TestRegisterFailsWhenUsernameCheckErrors(t *testing.T) {
	svc, users, profiles := newTestService()
	users.lookupErr = errors.New("connection refused")

	_, _, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "grace",
		Password: "password123",
	})
	require.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))
	assert.Empty(t, users.byID)
	assert.Empty(t, profiles.byID)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "erin",
		Password: "password123",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), "erin", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, err = svc.Login(context.Background(), "erin", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	svc, _, _ := newTestService()

	_, tokens, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "frank",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	assert.Error(t, err, "an access token must not pass as a refresh token")
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careline/social-api/internal/email"
	"github.com/careline/social-api/internal/model"
	"github.com/careline/social-api/internal/repository"
	"github.com/careline/social-api/pkg/auth"
	apperrors "github.com/careline/social-api/pkg/errors"
	"github.com/careline/social-api/pkg/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service handles registration, login and token validation.
type Service interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Profile, *model.TokenResponse, error)
	Login(ctx context.Context, username, password string) (*model.TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*auth.TokenClaims, error)
	RefreshToken(ctx context.Context, refreshToken string) (*model.TokenResponse, error)
}

type service struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
	emailSvc    email.Service
}

func NewService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository,
	jwtSvc auth.JWTService, hasher security.PasswordHasher, emailSvc email.Service) Service {
	return &service{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtSvc:      jwtSvc,
		hasher:      hasher,
		emailSvc:    emailSvc,
	}
}

// Register creates the account and its profile and logs the new account in
// by issuing tokens. A non-doctor submission never keeps a doctor_type.
func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Profile, *model.TokenResponse, error) {
	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, nil, apperrors.Internal(fmt.Errorf("failed to check username: %w", err))
	}
	if existing != nil {
		return nil, nil, apperrors.BadRequest("username already taken", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, nil, apperrors.BadRequest("invalid password", err)
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	doctorType := req.DoctorType
	if !req.IsDoctor {
		doctorType = ""
	}

	profile := &model.Profile{
		Base:       model.Base{ID: uuid.New()},
		UserID:     user.ID,
		Username:   user.Username,
		IsDoctor:   req.IsDoctor,
		DoctorType: doctorType,
		AboutMe:    req.AboutMe,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, nil, fmt.Errorf("failed to create profile: %w", err)
	}

	tokens, err := s.generateTokens(user, profile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if user.Email != "" {
		if err := s.emailSvc.SendWelcome(user.Email, user.Username); err != nil {
			log.Error().Err(err).Str("username", user.Username).Msg("failed to send welcome email")
		}
	}

	return profile, tokens, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return s.generateTokens(user, profile)
}

func (s *service) ValidateToken(ctx context.Context, token string) (*auth.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return s.generateTokens(user, profile)
}

func (s *service) generateTokens(user *model.User, profile *model.Profile) (*model.TokenResponse, error) {
	claims := &auth.TokenClaims{
		UserID:    user.ID,
		ProfileID: profile.ID,
		Username:  user.Username,
	}

	accessToken, err := s.jwtSvc.GenerateAccessToken(claims)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtSvc.GenerateRefreshToken(claims)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

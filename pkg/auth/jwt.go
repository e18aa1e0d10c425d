package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried in access and refresh tokens.
type TokenClaims struct {
	UserID    uuid.UUID
	ProfileID uuid.UUID
	Username  string
}

// JWTService issues and validates the tokens that stand in for the session.
type JWTService interface {
	GenerateAccessToken(claims *TokenClaims) (string, error)
	GenerateRefreshToken(claims *TokenClaims) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

type Config struct {
	Secret             string
	RefreshSecret      string
	ExpiryHours        int
	RefreshExpiryHours int
}

type jwtService struct {
	cfg Config
}

func NewJWTService(cfg Config) JWTService {
	if cfg.ExpiryHours == 0 {
		cfg.ExpiryHours = 24
	}
	if cfg.RefreshExpiryHours == 0 {
		cfg.RefreshExpiryHours = 24 * 7
	}
	return &jwtService{cfg: cfg}
}

func (s *jwtService) GenerateAccessToken(claims *TokenClaims) (string, error) {
	return s.generate(claims, s.cfg.Secret, time.Duration(s.cfg.ExpiryHours)*time.Hour)
}

func (s *jwtService) GenerateRefreshToken(claims *TokenClaims) (string, error) {
	return s.generate(claims, s.cfg.RefreshSecret, time.Duration(s.cfg.RefreshExpiryHours)*time.Hour)
}

func (s *jwtService) generate(claims *TokenClaims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    claims.UserID.String(),
		"profile_id": claims.ProfileID.String(),
		"username":   claims.Username,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(token string) (*TokenClaims, error) {
	return s.validate(token, s.cfg.Secret)
}

func (s *jwtService) ValidateRefreshToken(token string) (*TokenClaims, error) {
	return s.validate(token, s.cfg.RefreshSecret)
}

func (s *jwtService) validate(tokenStr, secret string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	claims := &TokenClaims{}
	if v, ok := mapClaims["username"].(string); ok {
		claims.Username = v
	}
	if v, ok := mapClaims["user_id"].(string); ok {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID in token")
		}
		claims.UserID = id
	}
	if v, ok := mapClaims["profile_id"].(string); ok {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid profile ID in token")
		}
		claims.ProfileID = id
	}
	return claims, nil
}

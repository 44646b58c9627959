package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clubly/clubly/application/port/outbound"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// JWTService mints and verifies the HS256 access tokens the auth
// middleware decodes into an ActorContext.
type JWTService struct {
	secret         []byte
	accessTokenTTL time.Duration
}

func NewJWTService(secret string, accessTokenTTL time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTService{
		secret:         []byte(secret),
		accessTokenTTL: accessTokenTTL,
	}, nil
}

func (s *JWTService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	now := time.Now()
	tokenClaims := jwt.MapClaims{
		"actor_id":    claims.ActorID,
		"role":        claims.Role,
		"auth_method": claims.AuthenticatedVia,
		"exp":         now.Add(s.accessTokenTTL).Unix(),
		"iat":         now.Unix(),
		"type":        "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*outbound.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return nil, ErrInvalidToken
	}

	actorID, _ := claims["actor_id"].(string)
	if actorID == "" {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	authMethod, _ := claims["auth_method"].(string)

	return &outbound.TokenClaims{
		ActorID:          actorID,
		Role:             role,
		AuthenticatedVia: authMethod,
	}, nil
}

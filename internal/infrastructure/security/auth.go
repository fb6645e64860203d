// Package security provides JWT authentication and password hashing.
package security

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipesai/recipesai/internal/infrastructure/config"
)

// Claims is the token payload. The userID and username keys are part of the
// wire contract: clients decode them without verifying the signature.
type Claims struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService issues and validates bearer tokens and hashes passwords.
// Redis-backed revocation is best effort: an unreachable Redis degrades to
// accepting unexpired tokens, it never takes the API down.
type AuthService struct {
	config      *config.Config
	logger      *zap.Logger
	redisClient *redis.Client
	jwtSecret   []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) *AuthService {
	return &AuthService{
		config:      cfg,
		logger:      logger,
		redisClient: redisClient,
		jwtSecret:   []byte(cfg.Auth.JWTSecret),
	}
}

// GenerateToken creates a signed HS256 token for the given user.
func (a *AuthService) GenerateToken(userID, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "recipesai",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.config.Auth.JWTExpiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	if err := a.trackToken(claims.ID, userID); err != nil {
		a.logger.Warn("Failed to track token in Redis", zap.Error(err))
	}

	return tokenString, nil
}

// ValidateToken verifies the signature and expiry and returns the claims.
func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if revoked, err := a.isTokenRevoked(claims.ID); err != nil {
		a.logger.Warn("Failed to check token revocation", zap.Error(err))
	} else if revoked {
		return nil, fmt.Errorf("token has been revoked")
	}

	return claims, nil
}

// RevokeToken adds a token ID to the revocation list until its natural
// expiry would have passed.
func (a *AuthService) RevokeToken(tokenID string) error {
	ctx := context.Background()
	key := fmt.Sprintf("revoked_token:%s", tokenID)
	return a.redisClient.Set(ctx, key, "revoked", a.config.Auth.JWTExpiration).Err()
}

// HashPassword hashes a password with bcrypt.
func (a *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.config.Auth.BCryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a password against its bcrypt hash.
func (a *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (a *AuthService) trackToken(tokenID, userID string) error {
	ctx := context.Background()
	key := fmt.Sprintf("token:%s:%s", userID, tokenID)
	return a.redisClient.Set(ctx, key, time.Now().Unix(), a.config.Auth.JWTExpiration).Err()
}

func (a *AuthService) isTokenRevoked(tokenID string) (bool, error) {
	ctx := context.Background()
	key := fmt.Sprintf("revoked_token:%s", tokenID)
	exists, err := a.redisClient.Exists(ctx, key).Result()
	return exists > 0, err
}

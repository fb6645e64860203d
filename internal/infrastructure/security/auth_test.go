package security

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/infrastructure/config"
)

type AuthServiceTestSuite struct {
	suite.Suite
	authService *AuthService
	config      *config.Config
}

func (s *AuthServiceTestSuite) SetupSuite() {
	s.config = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-key-for-testing-only-32b",
			JWTExpiration: time.Hour,
			BCryptCost:    4,
		},
	}

	// Unreachable Redis: token tracking and revocation checks degrade to
	// warnings, which is exactly the production fallback behavior.
	redisClient := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})

	s.authService = NewAuthService(s.config, zap.NewNop(), redisClient)
}

func (s *AuthServiceTestSuite) TestTokenRoundTrip() {
	token, err := s.authService.GenerateToken("u-1", "alice")
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), token)

	claims, err := s.authService.ValidateToken(token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "u-1", claims.UserID)
	assert.Equal(s.T(), "alice", claims.Username)
	assert.Equal(s.T(), "recipesai", claims.Issuer)
	assert.NotEmpty(s.T(), claims.ID)
}

func (s *AuthServiceTestSuite) TestPayloadUsesWireKeys() {
	token, err := s.authService.GenerateToken("u-2", "bob")
	require.NoError(s.T(), err)

	parts := strings.Split(token, ".")
	require.Len(s.T(), parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(s.T(), err)

	var decoded map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(payload, &decoded))
	assert.Equal(s.T(), "u-2", decoded["userID"])
	assert.Equal(s.T(), "bob", decoded["username"])
}

func (s *AuthServiceTestSuite) TestValidateRejectsTamperedToken() {
	token, err := s.authService.GenerateToken("u-3", "carol")
	require.NoError(s.T(), err)

	_, err = s.authService.ValidateToken(token + "x")
	assert.Error(s.T(), err)
}

func (s *AuthServiceTestSuite) TestValidateRejectsWrongSecret() {
	other := NewAuthService(&config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "a-completely-different-secret-value",
			JWTExpiration: time.Hour,
			BCryptCost:    4,
		},
	}, zap.NewNop(), s.authService.redisClient)

	token, err := other.GenerateToken("u-4", "dave")
	require.NoError(s.T(), err)

	_, err = s.authService.ValidateToken(token)
	assert.Error(s.T(), err)
}

func (s *AuthServiceTestSuite) TestValidateRejectsExpiredToken() {
	expired := NewAuthService(&config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     s.config.Auth.JWTSecret,
			JWTExpiration: -time.Minute,
			BCryptCost:    4,
		},
	}, zap.NewNop(), s.authService.redisClient)

	token, err := expired.GenerateToken("u-5", "erin")
	require.NoError(s.T(), err)

	_, err = s.authService.ValidateToken(token)
	assert.Error(s.T(), err)
}

func (s *AuthServiceTestSuite) TestValidateRejectsGarbage() {
	_, err := s.authService.ValidateToken("not-a-token")
	assert.Error(s.T(), err)
}

func (s *AuthServiceTestSuite) TestPasswordHashing() {
	hash, err := s.authService.HashPassword("hunter2-hunter2")
	require.NoError(s.T(), err)
	assert.NotEqual(s.T(), "hunter2-hunter2", hash)

	assert.NoError(s.T(), s.authService.VerifyPassword(hash, "hunter2-hunter2"))
	assert.Error(s.T(), s.authService.VerifyPassword(hash, "wrong"))
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

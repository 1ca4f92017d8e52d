package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/repository"
)

type AuthServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *Service
}

func (s *AuthServiceSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "failed to open test database")
	require.NoError(s.T(), db.AutoMigrate(&models.User{}))

	s.db = db
	tokens := NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	s.svc = NewService(repository.NewUserRepo(db), tokens)
}

func (s *AuthServiceSuite) TestRegisterThenLogin() {
	user, err := s.svc.Register("Alice", "alice@example.com", "password123")
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), user.ID)
	assert.Equal(s.T(), "Alice", user.Name)
	assert.Equal(s.T(), "alice@example.com", user.Email)
	assert.NotEqual(s.T(), "password123", user.PasswordHash)

	loggedIn, tokens, err := s.svc.Login("alice@example.com", "password123")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, loggedIn.ID)
	assert.NotEmpty(s.T(), tokens.AccessToken)
	assert.NotEmpty(s.T(), tokens.RefreshToken)
}

func (s *AuthServiceSuite) TestRegisterDuplicateEmail() {
	_, err := s.svc.Register("Alice", "alice@example.com", "password123")
	require.NoError(s.T(), err)

	_, err = s.svc.Register("Other Alice", "alice@example.com", "different-password")
	assert.ErrorIs(s.T(), err, ErrDuplicateEmail)
}

func (s *AuthServiceSuite) TestLoginFailuresAreIndistinguishable() {
	_, err := s.svc.Register("Alice", "alice@example.com", "password123")
	require.NoError(s.T(), err)

	_, _, wrongPassword := s.svc.Login("alice@example.com", "wrong-password")
	_, _, unknownEmail := s.svc.Login("nobody@example.com", "password123")

	assert.ErrorIs(s.T(), wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(s.T(), unknownEmail, ErrInvalidCredentials)
	assert.Equal(s.T(), wrongPassword.Error(), unknownEmail.Error(),
		"the two failure modes must produce identical errors")
}

func (s *AuthServiceSuite) TestRefreshRotatesBothTokens() {
	user, err := s.svc.Register("Alice", "alice@example.com", "password123")
	require.NoError(s.T(), err)

	_, tokens, err := s.svc.Login("alice@example.com", "password123")
	require.NoError(s.T(), err)

	rotated, err := s.svc.RefreshAccessToken(tokens.RefreshToken)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), rotated.AccessToken)
	assert.NotEmpty(s.T(), rotated.RefreshToken)

	payload, err := s.svc.tokens.VerifyAccess(rotated.AccessToken)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, payload.UserID)
	assert.Equal(s.T(), "alice@example.com", payload.Email)

	_, err = s.svc.tokens.VerifyRefresh(rotated.RefreshToken)
	assert.NoError(s.T(), err, "rotation issues a usable refresh token too")
}

func (s *AuthServiceSuite) TestRefreshRejectsAccessToken() {
	_, err := s.svc.Register("Alice", "alice@example.com", "password123")
	require.NoError(s.T(), err)

	_, tokens, err := s.svc.Login("alice@example.com", "password123")
	require.NoError(s.T(), err)

	_, err = s.svc.RefreshAccessToken(tokens.AccessToken)
	assert.ErrorIs(s.T(), err, ErrInvalidToken)
}

func (s *AuthServiceSuite) TestRefreshRejectsGarbage() {
	_, err := s.svc.RefreshAccessToken("not-a-token")
	assert.ErrorIs(s.T(), err, ErrInvalidToken)
}

func (s *AuthServiceSuite) TestRefreshForDeletedUser() {
	user, err := s.svc.Register("Alice", "alice@example.com", "password123")
	require.NoError(s.T(), err)

	_, tokens, err := s.svc.Login("alice@example.com", "password123")
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.db.Delete(&models.User{}, "id = ?", user.ID).Error)

	_, err = s.svc.RefreshAccessToken(tokens.RefreshToken)
	assert.ErrorIs(s.T(), err, ErrUserNotFound)
}

func (s *AuthServiceSuite) TestLogoutIsAcknowledgementOnly() {
	assert.NoError(s.T(), s.svc.Logout("some-user-id"))
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

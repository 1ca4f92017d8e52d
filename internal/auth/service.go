package auth

import (
	"log"

	"github.com/pkg/errors"

	"expense-tracker-api/internal/models"
)

var (
	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("user with this e-mail already exists")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid e-mail or password")

	// ErrUserNotFound is returned when a token decodes but its user row no
	// longer exists.
	ErrUserNotFound = errors.New("user not found")
)

// UserStore is the persistence collaborator for accounts. Implementations
// return (nil, nil) when no row matches.
type UserStore interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id string) (*models.User, error)
	Create(user *models.User) error
}

// Service orchestrates registration, login and token refresh.
type Service struct {
	users  UserStore
	tokens *TokenService
}

func NewService(users UserStore, tokens *TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new account with a hashed password. The returned user
// carries no password material in its JSON form.
func (s *Service) Register(name, email, password string) (*models.User, error) {
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, errors.Wrap(err, "look up email failed")
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password failed")
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, errors.Wrap(err, "create user failed")
	}
	return user, nil
}

// Login verifies credentials and issues a fresh token pair. An unknown
// email and a wrong password are indistinguishable to the caller.
func (s *Service) Login(email, password string) (*models.User, TokenPair, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, TokenPair{}, errors.Wrap(err, "look up email failed")
	}
	if user == nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	tokens, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, TokenPair{}, errors.Wrap(err, "issue tokens failed")
	}
	return user, tokens, nil
}

// RefreshAccessToken rotates the whole pair: both a new access token and a
// new refresh token are issued.
func (s *Service) RefreshAccessToken(refreshToken string) (TokenPair, error) {
	payload, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidToken
	}

	user, err := s.users.FindByID(payload.UserID)
	if err != nil {
		return TokenPair{}, errors.Wrap(err, "look up user failed")
	}
	if user == nil {
		return TokenPair{}, ErrUserNotFound
	}

	tokens, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return TokenPair{}, errors.Wrap(err, "issue tokens failed")
	}
	return tokens, nil
}

// Logout is an acknowledgement only. Tokens are stateless and unrevoked, so
// there is nothing to invalidate server-side.
func (s *Service) Logout(userID string) error {
	log.Printf("user %s logged out", userID)
	return nil
}

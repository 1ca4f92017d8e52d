package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// ErrInvalidToken covers every way a presented token can fail verification:
// bad signature, expired, malformed, or signed for the other token kind.
var ErrInvalidToken = errors.New("invalid or expired token")

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// TokenPayload is the identity claim carried by both token kinds.
type TokenPayload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// TokenPair holds a freshly signed access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type tokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies stateless JWTs. Access and refresh tokens
// carry the same payload but are signed with independent secrets and
// expiries, plus a kind claim so one can never pass as the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Issue signs the payload twice and returns the pair. No server-side state
// is created; the tokens are self-contained.
func (t *TokenService) Issue(userID, email string) (TokenPair, error) {
	now := time.Now()

	accessToken, err := t.sign(userID, email, kindAccess, t.accessSecret, now, now.Add(t.accessTTL))
	if err != nil {
		return TokenPair{}, errors.Wrap(err, "sign access token failed")
	}

	refreshToken, err := t.sign(userID, email, kindRefresh, t.refreshSecret, now, now.Add(t.refreshTTL))
	if err != nil {
		return TokenPair{}, errors.Wrap(err, "sign refresh token failed")
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (t *TokenService) sign(userID, email, kind string, secret []byte, iat, exp time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: userID,
		Email:  email,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	return token.SignedString(secret)
}

// VerifyAccess validates an access token and returns its payload.
func (t *TokenService) VerifyAccess(token string) (*TokenPayload, error) {
	return t.verify(token, kindAccess, t.accessSecret)
}

// VerifyRefresh validates a refresh token and returns its payload.
func (t *TokenService) VerifyRefresh(token string) (*TokenPayload, error) {
	return t.verify(token, kindRefresh, t.refreshSecret)
}

func (t *TokenService) verify(tokenString, kind string, secret []byte) (*TokenPayload, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != kind {
		return nil, ErrInvalidToken
	}
	return &TokenPayload{UserID: claims.UserID, Email: claims.Email}, nil
}

// ExtractBearer pulls the token out of an Authorization header of the exact
// shape "Bearer <token>". Any other shape yields false.
func ExtractBearer(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

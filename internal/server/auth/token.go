// Package auth implements the authentication core: a dual-token JWT scheme
// (short-lived access tokens, long-lived refresh tokens), bcrypt password
// hashing, and the self-mutation ownership check.
package auth

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/learnbudget/server/internal/common"
	"github.com/learnbudget/server/internal/server/models"
)

// TokenKind discriminates access tokens from refresh tokens. The kind is
// fixed at issuance and checked on every validation: an access token never
// passes where a refresh token is required, and vice versa.
type TokenKind string

const (
	KindAccess  TokenKind = "ACCESS"
	KindRefresh TokenKind = "REFRESH"
)

// Claims is the payload of every issued token: the registered claims
// (sub=email, iat, exp) plus a snapshot of the user's identity and the
// token kind.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64     `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	TokenType TokenKind `json:"tokenType"`
}

// Manager issues and validates tokens. The signing secret and lifetimes are
// fixed at construction, so a single Manager is safe for concurrent use.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager decodes the base64-encoded secret and fixes both lifetimes.
// The refresh lifetime must exceed the access lifetime.
func NewManager(secretKey string, accessTTL, refreshTTL time.Duration) (*Manager, error) {
	secret, err := base64.StdEncoding.DecodeString(secretKey)
	if err != nil {
		return nil, fmt.Errorf("decoding secret key: %w", err)
	}
	if refreshTTL <= accessTTL {
		return nil, fmt.Errorf("refresh token validity (%v) must exceed access token validity (%v)", refreshTTL, accessTTL)
	}
	return &Manager{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

// GenerateAccessToken issues a short-lived ACCESS token for the user.
func (m *Manager) GenerateAccessToken(user *models.User) (string, error) {
	return m.generateToken(user, KindAccess, m.accessTTL)
}

// GenerateRefreshToken issues a long-lived REFRESH token for the user.
func (m *Manager) GenerateRefreshToken(user *models.User) (string, error) {
	return m.generateToken(user, KindRefresh, m.refreshTTL)
}

func (m *Manager) generateToken(user *models.User, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		TokenType: kind,
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// decode verifies the signature and parses the claims. Expiry is NOT
// enforced here; callers check it explicitly so that an expired token can
// still be inspected.
func (m *Manager) decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// ExtractEmail returns the subject claim. Malformed or badly signed input
// propagates as an error.
func (m *Manager) ExtractEmail(tokenString string) (string, error) {
	claims, err := m.decode(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractUserID returns the userId claim.
func (m *Manager) ExtractUserID(tokenString string) (int64, error) {
	claims, err := m.decode(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// ExtractTokenType returns the tokenType claim.
func (m *Manager) ExtractTokenType(tokenString string) (TokenKind, error) {
	claims, err := m.decode(tokenString)
	if err != nil {
		return "", err
	}
	return claims.TokenType, nil
}

// IsTokenExpired reports whether the token's expiration has passed. A token
// that cannot be decoded counts as expired.
func (m *Manager) IsTokenExpired(tokenString string) bool {
	claims, err := m.decode(tokenString)
	if err != nil {
		return true
	}
	return expired(claims)
}

// IsAccessTokenValid reports whether tokenString is a well-signed,
// unexpired ACCESS token whose subject equals email. It never returns an
// error: any decode failure, empty input, kind mismatch, or expiry yields
// false.
func (m *Manager) IsAccessTokenValid(tokenString string, email string) bool {
	if tokenString == "" {
		return false
	}
	claims, err := m.decode(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == email && !expired(claims) && claims.TokenType == KindAccess
}

// IsRefreshTokenValid reports whether tokenString is a well-signed,
// unexpired REFRESH token. Same fail-closed contract as IsAccessTokenValid.
func (m *Manager) IsRefreshTokenValid(tokenString string) bool {
	if tokenString == "" {
		return false
	}
	claims, err := m.decode(tokenString)
	if err != nil {
		return false
	}
	return !expired(claims) && claims.TokenType == KindRefresh
}

func expired(claims *Claims) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Before(time.Now())
}

package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/campus-hub/internal/domain"
)

// ErrInvalidToken covers bad signature, malformed structure, and expiry alike.
// Callers never learn which; they must also re-check purpose and kind claims.
var ErrInvalidToken = errors.New("invalid token")

const (
	defaultAccessTTL  = 30 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims describes the JWT payload carried by access and refresh tokens.
type Claims struct {
	Kind    domain.PrincipalKind `json:"kind"`
	Purpose domain.TokenPurpose  `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates signed identity tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a manager. Zero TTLs fall back to defaults.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL == 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL == 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess signs a short-lived access token for the subject.
func (tm *TokenManager) IssueAccess(subject string, kind domain.PrincipalKind) (string, time.Time, error) {
	return tm.issue(subject, kind, domain.TokenPurposeAccess, tm.accessTTL)
}

// IssueRefresh signs a long-lived refresh token for the subject.
func (tm *TokenManager) IssueRefresh(subject string, kind domain.PrincipalKind) (string, time.Time, error) {
	return tm.issue(subject, kind, domain.TokenPurposeRefresh, tm.refreshTTL)
}

func (tm *TokenManager) issue(subject string, kind domain.PrincipalKind, purpose domain.TokenPurpose, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Kind:    kind,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Decode validates the signature and expiry and returns the claims.
func (tm *TokenManager) Decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

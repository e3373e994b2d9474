// Package security verifies identity-provider tokens. Sign-in itself
// happens outside this system; requests arrive carrying a signed token
// whose claims project the signed-in user.
package security

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"synagogue-manager/internal/synagogue/domain/model"
)

var (
	ErrTokenInvalid          = errors.New("token is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
)

// Claims are the token claims the identity provider signs for a user.
type Claims struct {
	UserID      string `json:"uid"`
	Email       string `json:"email"`
	Role        string `json:"role,omitempty"`
	PrayerID    string `json:"prayerId,omitempty"`
	DisplayName string `json:"name,omitempty"`
	PhotoURL    string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier validates provider tokens with a shared HMAC secret.
type TokenVerifier struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewTokenVerifier builds a verifier. The TTL is only used when issuing
// tokens locally (development and tests).
func NewTokenVerifier(secretKey, issuer string, ttl time.Duration) (*TokenVerifier, error) {
	if secretKey == "" {
		return nil, errors.New("token secret key cannot be empty")
	}
	if issuer == "" {
		return nil, errors.New("token issuer cannot be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token TTL must be positive")
	}
	return &TokenVerifier{secretKey: []byte(secretKey), issuer: issuer, ttl: ttl}, nil
}

// VerifyToken validates the token and projects its claims onto a user.
func (v *TokenVerifier) VerifyToken(ctx context.Context, tokenString string) (*model.User, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return v.secretKey, nil
	}, jwt.WithIssuer(v.issuer))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return &model.User{
		UID:         claims.UserID,
		Email:       claims.Email,
		Role:        model.ParseRole(claims.Role),
		PrayerID:    claims.PrayerID,
		DisplayName: claims.DisplayName,
		PhotoURL:    claims.PhotoURL,
	}, nil
}

// IssueToken signs a token for the given user. Used by development mode
// and tests; production tokens come from the identity provider.
func (v *TokenVerifier) IssueToken(ctx context.Context, user model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:      user.UID,
		Email:       user.Email,
		Role:        string(user.Role),
		PrayerID:    user.PrayerID,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    v.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secretKey)
}

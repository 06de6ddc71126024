package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// RevocationKey is the Redis key under which a logged-out token's jti is
// stored until the token would have expired anyway.
func RevocationKey(jti string) string {
	return "revoked:" + jti
}

// Identity is what a verified token asserts about the caller. It is trusted
// as-is for the rest of the request; role changes only take effect on
// re-login.
type Identity struct {
	UserID    int
	Email     string
	Role      string
	JTI       string
	ExpiresAt time.Time
}

// Manager signs and verifies session tokens with a server-held secret. The
// secret comes from config at startup, not from package state.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed HS256 token embedding the user's id, email and role.
// The jti claim uniquely names this token so logout can revoke it.
func (m *Manager) Issue(userID int, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(m.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify parses and checks the token, returning the embedded identity. It
// fails on a malformed token, a wrong or tampered signature, or expiry. The
// store is never consulted.
func (m *Manager) Verify(tokenString string) (Identity, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return Identity{}, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	jti, _ := claims["jti"].(string)

	return Identity{
		UserID:    int(userID),
		Email:     email,
		Role:      role,
		JTI:       jti,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

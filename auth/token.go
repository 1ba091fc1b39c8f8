package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"portfolio-backend/errs"
)

// TokenProvider issues and validates the bearer tokens used by the API
type TokenProvider struct {
	secret     []byte
	expiration time.Duration
}

func NewTokenProvider(secret string, expiration time.Duration) TokenProvider {
	return TokenProvider{secret: []byte(secret), expiration: expiration}
}

type claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Generate signs a token for the given principal
func (t TokenProvider) Generate(p Principal) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: p.Username,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiration)),
		},
	})
	return token.SignedString(t.secret)
}

// Validate parses tokenString and returns the principal it identifies
func (t TokenProvider) Validate(tokenString string) (Principal, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return Anonymous, errs.NewUnauthorizedError("invalid access token")
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return Anonymous, errs.NewUnauthorizedError("invalid access token")
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return Anonymous, errs.NewUnauthorizedError("invalid token subject")
	}

	return Principal{UserID: userID, Username: c.Username, Role: c.Role}, nil
}

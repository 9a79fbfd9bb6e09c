package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Leeway tolerado entre relojes del API y de los terminales POS.
const clockSkew = 30 * time.Second

var (
	ErrEmptySecret  = errors.New("jwt: secret vacío")
	ErrInvalidToken = errors.New("jwt: token inválido")
)

// Principal es quien opera: usuario y rol (ADMIN, SELLER, WAREHOUSE).
type Principal struct {
	UserID int64
	Role   string
}

type claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// Generate firma (HS256) un token para p válido durante ttl.
func Generate(secret, issuer string, ttl time.Duration, p Principal) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(p.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: p.UserID,
		Role:   p.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// Parse valida firma y expiración. El rol viaja en el token; el middleware RBAC no consulta la DB.
func Parse(secret, token string) (Principal, error) {
	if secret == "" {
		return Principal{}, ErrEmptySecret
	}
	var c claims
	_, err := jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if c.UserID <= 0 {
		return Principal{}, fmt.Errorf("%w: user_id ausente", ErrInvalidToken)
	}
	return Principal{UserID: c.UserID, Role: c.Role}, nil
}

package jwt

import (
	"errors"
	"fmt"
	"time"

	"photostudio/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// AdminClaims is the payload of tokens minted by the admin login.
type AdminClaims struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
	jwt.RegisteredClaims
}

// ClientClaims is the payload of tokens minted by the client login.
type ClientClaims struct {
	ClientID uuid.UUID `json:"clientId"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

func NewAdminToken(admin models.Admin, secret string, duration time.Duration) (string, error) {
	now := time.Now()

	claims := AdminClaims{
		ID:    admin.ID,
		Email: admin.Email,
		Role:  admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}

	return sign(claims, secret)
}

func NewClientToken(client models.Client, secret string, duration time.Duration) (string, error) {
	now := time.Now()

	claims := ClientClaims{
		ClientID: client.ID,
		Email:    client.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   client.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}

	return sign(claims, secret)
}

func ParseAdminToken(tokenString, secret string) (*AdminClaims, error) {
	claims := new(AdminClaims)
	if err := parse(tokenString, secret, claims); err != nil {
		return nil, err
	}

	return claims, nil
}

func ParseClientToken(tokenString, secret string) (*ClientClaims, error) {
	claims := new(ClientClaims)
	if err := parse(tokenString, secret, claims); err != nil {
		return nil, err
	}

	return claims, nil
}

func sign(claims jwt.Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func parse(tokenString, secret string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return ErrInvalidToken
	}

	return nil
}

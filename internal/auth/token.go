package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/parfumdelite/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// AuthToken issues and verifies signed authorization tokens.
type AuthToken struct {
	key []byte
}

// NewAuthToken creates new AuthToken with the given HMAC signing key.
func NewAuthToken(key []byte) *AuthToken {
	return &AuthToken{key: key}
}

// CreateToken creates signed token for user
func (at *AuthToken) CreateToken(user *models.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID: user.ID.Hex(),
	})

	signed, err := token.SignedString(at.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken parses and validates a token string and returns its payload.
func (at *AuthToken) VerifyToken(tokenString string) (*models.TokenPayload, error) {
	var c claims

	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return at.key, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &models.TokenPayload{UserID: userID}, nil
}

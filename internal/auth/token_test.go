package auth

import (
	"testing"

	"github.com/parfumdelite/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuthToken_RoundTrip(t *testing.T) {
	at := NewAuthToken([]byte("test-signing-key"))

	user := &models.User{ID: primitive.NewObjectID()}

	token, err := at.CreateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := at.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, payload.UserID)
}

func TestAuthToken_WrongKey(t *testing.T) {
	at := NewAuthToken([]byte("test-signing-key"))
	other := NewAuthToken([]byte("another-signing-key"))

	token, err := at.CreateToken(&models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthToken_Garbage(t *testing.T) {
	at := NewAuthToken([]byte("test-signing-key"))

	_, err := at.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = at.VerifyToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

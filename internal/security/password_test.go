package security

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{
			name:     "too_short",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "common_password",
			password: "password1234",
			wantErr:  ErrPasswordTooCommon,
		},
		{
			name:     "common_password_uppercase",
			password: "PASSWORD1234",
			wantErr:  ErrPasswordTooCommon,
		},
		{
			name:     "strong_password",
			password: "ThisIsAStrongPassword123!",
			wantErr:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePasswordMessages(t *testing.T) {
	assert.Equal(t, "Password must be at least 12 characters long", ErrPasswordTooShort.Error())
	assert.Equal(t, "Password is too common. Please choose a stronger password.", ErrPasswordTooCommon.Error())
}

func TestGenerateVerificationToken(t *testing.T) {
	token, err := GenerateVerificationToken()
	require.NoError(t, err)

	assert.Len(t, token, 64)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), token)

	other, err := GenerateVerificationToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("mySecretPassword")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	// salted: hashing the same input twice yields different digests
	other, err := HashPassword("mySecretPassword")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correctPassword")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "correctPassword"))
	assert.False(t, VerifyPassword(hash, "wrongPassword"))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{name: "empty", digest: ""},
		{name: "not_a_hash", digest: "notAValidHash"},
		{name: "wrong_scheme", digest: "$2a$10$abcdefghijklmnopqrstuv"},
		{name: "truncated", digest: "$argon2id$v=19$m=65536,t=1,p=4"},
		{name: "bad_base64", digest: "$argon2id$v=19$m=65536,t=1,p=4$!!!$!!!"},
		{name: "zero_rounds", digest: "$argon2id$v=19$m=65536,t=0,p=4$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaA"},
		{name: "zero_threads", digest: "$argon2id$v=19$m=65536,t=1,p=0$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaA"},
		{name: "absurd_memory", digest: "$argon2id$v=19$m=4294967295,t=1,p=4$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyPassword(tt.digest, "password"))
		})
	}
}

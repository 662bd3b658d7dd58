package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Generate(t *testing.T) {
	tests := []struct {
		name      string
		secretKey string
		tokenTTL  time.Duration
		role      string
	}{
		{name: "User token", secretKey: "test-secret-key", tokenTTL: time.Hour, role: "user"},
		{name: "Admin token", secretKey: "another-secret", tokenTTL: 30 * time.Minute, role: "admin"},
		{name: "Empty role", secretKey: "secret", tokenTTL: time.Hour, role: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.secretKey, tt.tokenTTL)
			token, err := m.Generate(uuid.New(), tt.role)

			require.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func TestManager_Validate(t *testing.T) {
	secretKey := "test-secret-key"
	userID := uuid.New()

	t.Run("Valid token", func(t *testing.T) {
		m := NewManager(secretKey, time.Hour)
		token, err := m.Generate(userID, "admin")
		require.NoError(t, err)

		identity, err := m.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, userID, identity.UserID)
		assert.Equal(t, "admin", identity.Role)
	})

	t.Run("Invalid token - wrong secret", func(t *testing.T) {
		token, err := NewManager(secretKey, time.Hour).Generate(userID, "user")
		require.NoError(t, err)

		_, err = NewManager("wrong-secret", time.Hour).Validate(token)
		assert.Error(t, err)
	})

	t.Run("Invalid token - malformed", func(t *testing.T) {
		_, err := NewManager(secretKey, time.Hour).Validate("invalid.token.string")
		assert.Error(t, err)
	})

	t.Run("Invalid token - empty", func(t *testing.T) {
		_, err := NewManager(secretKey, time.Hour).Validate("")
		assert.Error(t, err)
	})

	t.Run("Expired token", func(t *testing.T) {
		m := NewManager(secretKey, -time.Minute)
		token, err := m.Generate(userID, "user")
		require.NoError(t, err)

		_, err = m.Validate(token)
		assert.Error(t, err)
	})

	t.Run("Nil user id", func(t *testing.T) {
		m := NewManager(secretKey, time.Hour)
		token, err := m.Generate(uuid.Nil, "user")
		require.NoError(t, err)

		_, err = m.Validate(token)
		assert.Error(t, err)
	})
}

func TestManager_ValidateWithNoneAlgorithm(t *testing.T) {
	m := NewManager("secret", time.Hour)

	_, err := m.Validate("eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJ1c2VyX2lkIjoiYjE2ZjE0ZjQtMDAwMC0wMDAwLTAwMDAtMDAwMDAwMDAwMDAwIn0.")
	assert.Error(t, err)
}

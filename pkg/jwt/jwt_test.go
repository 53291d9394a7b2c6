package jwt

import (
	"testing"
	"time"

	"github.com/sefazor/photoclub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	id := models.Identity{Subject: "alice", Email: "alice@example.com", FirstName: "Alice"}
	token, err := GenerateToken("secret", id, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())
}

func TestValidateRejects(t *testing.T) {
	good, err := GenerateToken("secret", models.Identity{Subject: "alice"}, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken("secret", models.Identity{Subject: "alice"}, -time.Minute)
	require.NoError(t, err)
	anonymous, err := GenerateToken("secret", models.Identity{}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong secret", "other", good},
		{"expired", "secret", expired},
		{"missing subject", "secret", anonymous},
		{"garbage", "secret", "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.secret, tt.token)
			assert.Error(t, err)
		})
	}
}

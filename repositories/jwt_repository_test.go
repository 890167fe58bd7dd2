package repositories

import (
	"testing"
	"time"

	"github.com/checkmarble/asset-lists/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJwtRepository(t *testing.T) {
	repo := NewJWTRepository("some-signing-key")
	user := models.User{UserId: "user-a", Email: "a@example.com", Name: "Alice"}

	t.Run("round trip", func(t *testing.T) {
		token, err := repo.EncodeToken(time.Now().Add(time.Hour), user)
		require.NoError(t, err)

		creds, err := repo.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, models.UserId("user-a"), creds.ActorIdentity.UserId)
		assert.Equal(t, "a@example.com", creds.ActorIdentity.Email)
		assert.Equal(t, "Alice", creds.ActorIdentity.Name)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := repo.EncodeToken(time.Now().Add(-time.Minute), user)
		require.NoError(t, err)

		_, err = repo.ValidateToken(token)
		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})

	t.Run("other signing key", func(t *testing.T) {
		token, err := NewJWTRepository("another-key").EncodeToken(time.Now().Add(time.Hour), user)
		require.NoError(t, err)

		_, err = repo.ValidateToken(token)
		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := jwt.NewWithClaims(ValidationAlgo, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte("some-signing-key"))
		require.NoError(t, err)

		_, err = repo.ValidateToken(token)
		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := repo.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, models.UnAuthorizedError)
	})
}

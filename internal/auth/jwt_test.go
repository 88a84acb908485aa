package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testUser(t *testing.T) domain.User {
	t.Helper()
	r := domain.NewUser("alice", "alice@example.com", "hash", domain.RoleAdmin)
	require.True(t, r.IsOk())
	return r.Value()
}

func TestTokenRoundTrip(t *testing.T) {
	user := testUser(t)

	signed, err := GenerateToken(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	identity := claims.Identity()
	assert.Equal(t, user.ID, identity.UserID)
	assert.True(t, identity.IsAdmin())
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	signed, err := GenerateToken(testUser(t), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(signed, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	signed, err := GenerateToken(testUser(t), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(signed, testSecret)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestIdentityIsAdmin(t *testing.T) {
	assert.False(t, Identity{Role: domain.RoleUser}.IsAdmin())
	assert.True(t, Identity{Role: domain.RoleAdmin}.IsAdmin())
}

func TestDownloadTokenRoundTrip(t *testing.T) {
	docID := uuid.New()

	signed, err := GenerateDownloadToken(docID, testSecret, time.Hour)
	require.NoError(t, err)

	got, err := ParseDownloadToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, docID, got)
}

func TestDownloadTokenIsNotAnIdentityToken(t *testing.T) {
	// Separate secrets keep the two token families apart even though
	// both are HS256.
	signed, err := GenerateDownloadToken(uuid.New(), "download-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(signed, testSecret)
	assert.Error(t, err)
}

func TestDownloadTokenExpired(t *testing.T) {
	signed, err := GenerateDownloadToken(uuid.New(), testSecret, -time.Second)
	require.NoError(t, err)

	_, err = ParseDownloadToken(signed, testSecret)
	assert.Error(t, err)
}

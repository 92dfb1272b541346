package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	provider := NewJWTProvider("test-secret")

	token, expiresAt, err := provider.Generate("company-42", AudienceCompany, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	subject, err := provider.Parse(token, AudienceCompany)
	require.NoError(t, err)
	assert.Equal(t, "company-42", subject)
}

func TestParseRejectsWrongAudience(t *testing.T) {
	provider := NewJWTProvider("test-secret")

	token, _, err := provider.Generate("user_abc", AudienceUser, time.Hour)
	require.NoError(t, err)

	_, err = provider.Parse(token, AudienceCompany)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	provider := NewJWTProvider("test-secret")

	token, _, err := provider.Generate("user_abc", AudienceUser, -time.Minute)
	require.NoError(t, err)

	_, err = provider.Parse(token, AudienceUser)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTProvider("issuer-secret")
	verifier := NewJWTProvider("other-secret")

	token, _, err := issuer.Generate("user_abc", AudienceUser, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Parse(token, AudienceUser)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	_, err := provider.Parse("not-a-token", AudienceUser)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}

package security

import (
	"encoding/base64"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIdentityToken(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString([]byte("token-test-secret"))

	tok, err := CreateIdentityToken(&FleetIdentity{ID: "u-7", UserName: "yard", Email: "yard@example.com", Role: RoleSiteManager}, secret, 300)
	require.NoError(t, err)

	key, err := DecodeSecret(secret)
	require.NoError(t, err)

	claims := &IdentityClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) { return key, nil })
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "u-7", claims.UserID)
	assert.Equal(t, "u-7", claims.Subject)
	assert.Equal(t, RoleSiteManager, claims.Role)
	assert.Equal(t, "fleetops", claims.Issuer)
}

func TestDecodeSecret(t *testing.T) {
	_, err := DecodeSecret("")
	assert.Error(t, err)

	_, err = DecodeSecret("not base64!")
	assert.Error(t, err)
}

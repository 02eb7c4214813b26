package auth

import (
	"crypto/elliptic"
	"encoding/json"
	"testing"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJWK(t *testing.T) {
	raw := genKey(t, elliptic.P384())
	jwkKey, err := jwk.FromRaw(raw)
	require.NoError(t, err)
	data, err := json.Marshal(jwkKey)
	require.NoError(t, err)

	key, err := ParseJWK(data)
	require.NoError(t, err)
	assert.Equal(t, 0, raw.D.Cmp(key.D))
	assert.True(t, raw.PublicKey.Equal(&key.PublicKey))
}

func TestParseJWKInvalidJSON(t *testing.T) {
	_, err := ParseJWK([]byte("{not a key"))
	assert.Error(t, err)
}

func TestParseJWKPublicOnly(t *testing.T) {
	raw := genKey(t, elliptic.P256())
	jwkKey, err := jwk.FromRaw(raw)
	require.NoError(t, err)
	pub, err := jwk.PublicKeyOf(jwkKey)
	require.NoError(t, err)
	data, err := json.Marshal(pub)
	require.NoError(t, err)

	// A public key cannot sign; refusing it at startup beats failing per-token.
	_, err = ParseJWK(data)
	assert.Error(t, err)
}

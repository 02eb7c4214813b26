package auth

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// ParseJWK decodes a JSON-encoded JWK into the EC private key used for token
// signing. The relay is configured with the matching public key, so the key
// type has to line up with what its verifier accepts.
func ParseJWK(data []byte) (*ecdsa.PrivateKey, error) {
	key, err := jwk.ParseKey(data)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}

	var priv ecdsa.PrivateKey
	if err := key.Raw(&priv); err != nil {
		return nil, fmt.Errorf("signing key is not an EC private key: %w", err)
	}
	return &priv, nil
}

package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens are short-lived and never revoked; clients fetch a fresh one when
// theirs expires.
const tokenTTL = time.Hour

// Claims is the access-token payload in the field names the relay's verifier
// expects. Exp is a unix timestamp in milliseconds, not seconds. The relay
// reads it in that unit, so it must not be normalized to standard JWT seconds.
type Claims struct {
	Iss    string `json:"iss"`
	Exp    int64  `json:"exp"`
	UserID string `json:"yuserid"`
}

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.UnixMilli(c.Exp)), nil
}

func (c Claims) GetIssuedAt() (*jwt.NumericDate, error)  { return nil, nil }
func (c Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c Claims) GetIssuer() (string, error)              { return c.Iss, nil }
func (c Claims) GetSubject() (string, error)             { return "", nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error)  { return nil, nil }

// Issuer mints signed access tokens binding a user identity to this service.
type Issuer struct {
	key    *ecdsa.PrivateKey
	method jwt.SigningMethod
	issuer string
	now    func() time.Time
}

// NewIssuer builds an issuer around the configured private key. The signing
// method follows the key's curve.
func NewIssuer(key *ecdsa.PrivateKey, issuer string) (*Issuer, error) {
	method, err := methodForCurve(key.Curve)
	if err != nil {
		return nil, err
	}
	return &Issuer{key: key, method: method, issuer: issuer, now: time.Now}, nil
}

// Issue signs a token for userID expiring one hour from now. Any userID is
// accepted; a real deployment authenticates the caller before this point.
func (i *Issuer) Issue(userID string) (string, error) {
	claims := Claims{
		Iss:    i.issuer,
		Exp:    i.now().Add(tokenTTL).UnixMilli(),
		UserID: userID,
	}
	return jwt.NewWithClaims(i.method, claims).SignedString(i.key)
}

// Verify parses a token this service issued and returns its claims. Expired
// or tampered tokens fail.
func (i *Issuer) Verify(tokenString string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &i.key.PublicKey, nil
	})
	if err != nil {
		return Claims{}, err
	}
	return claims, nil
}

func methodForCurve(curve elliptic.Curve) (jwt.SigningMethod, error) {
	switch curve {
	case elliptic.P256():
		return jwt.SigningMethodES256, nil
	case elliptic.P384():
		return jwt.SigningMethodES384, nil
	case elliptic.P521():
		return jwt.SigningMethodES512, nil
	}
	return nil, fmt.Errorf("unsupported signing curve %q", curve.Params().Name)
}

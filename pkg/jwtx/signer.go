package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// MinSecretBytes is the smallest signing secret we accept. HS256 keys
// shorter than the hash output weaken the HMAC for no benefit.
const MinSecretBytes = 32

// HS256Signer implements the Signer interface using HMAC-SHA256 with a
// shared symmetric secret. The secret is injected at construction and the
// signer is read-only afterwards, so it is safe for concurrent use.
type HS256Signer struct {
	secret []byte
	alg    string
}

// NewSignerHS256 creates an HS256 signer from the raw secret bytes.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretBytes {
		return nil, errors.New("jwtx: signing secret too short")
	}

	return &HS256Signer{
		secret: secret,
		alg:    jwt.SigningMethodHS256.Alg(),
	}, nil
}

func (s *HS256Signer) Alg() string { return s.alg }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate does a quick sanity check to make sure we actually have a secret.
func (s *HS256Signer) Validate() error {
	if len(s.secret) < MinSecretBytes {
		return errors.New("jwtx: nil or short HS256 secret")
	}
	return nil
}

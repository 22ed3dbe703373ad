package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/veligame/adminpanel/pkg/jwtx"
)

const exampleIssuer = "panel-api"

var exampleSecret = []byte("0123456789abcdef0123456789abcdef")

func TestHS256SignAndVerify(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(exampleSecret)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())
	require.Equal(t, "HS256", signer.Alg())

	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims(
		"alice",
		jwtx.DefaultAccessTokenTTL,
		exampleIssuer,
		[]string{"panel"},
		now,
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verifier := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer, []string{"panel"})

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", parsed.Subject)
	require.Equal(t, exampleIssuer, parsed.Issuer)
	require.ElementsMatch(t, claims.Audience, parsed.Audience)
	require.NotEmpty(t, parsed.ID)
}

func TestHS256RejectsShortSecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256([]byte("too-short"))
	require.Error(t, err)
}

func TestHS256VerifyFailures(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(exampleSecret)
	require.NoError(t, err)

	now := time.Now().UTC()
	token, err := signer.Sign(jwtx.NewAccessClaims(
		"alice", jwtx.DefaultAccessTokenTTL, exampleIssuer, []string{"panel"}, now,
	))
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := []byte("ffffffffffffffffffffffffffffffff")
		v := jwtx.NewVerifierHS256(other, exampleIssuer, []string{"panel"})
		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		tampered := parts[0] + "." + parts[1] + "x." + parts[2]

		v := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer, []string{"panel"})
		_, err := v.Verify(tampered)
		require.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		v := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer, []string{"panel"})
		_, err := v.Verify("not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		v := jwtx.NewVerifierHS256(exampleSecret, "different-issuer", []string{"panel"})
		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("audience mismatch", func(t *testing.T) {
		v := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer, []string{"admin"})
		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("expired token via injected clock", func(t *testing.T) {
		v := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer, []string{"panel"})
		v.Now = func() time.Time { return now.Add(3 * time.Minute) }

		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("still valid just before expiry", func(t *testing.T) {
		v := jwtx.NewVerifierHS256(exampleSecret, exampleIssuer, []string{"panel"})
		v.Now = func() time.Time { return now.Add(jwtx.DefaultAccessTokenTTL - time.Second) }

		parsed, err := v.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "alice", parsed.Subject)
	})
}

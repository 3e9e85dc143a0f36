package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/auth"
	_ "github.com/taskhive/taskhive/testing"
)

func newCodec(t *testing.T, secret, algorithm string) *auth.TokenCodec {
	t.Helper()
	codec, err := auth.NewTokenCodec(secret, algorithm)
	require.NoError(t, err)
	return codec
}

func TestTokenRoundTrip(t *testing.T) {
	codec := newCodec(t, "test-secret", "HS256")

	token, err := codec.Issue("subject-1", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "subject-1", claims.Subject)
	require.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestDecodeExpiredToken(t *testing.T) {
	codec := newCodec(t, "test-secret", "HS256")

	token, err := codec.Issue("subject-1", -time.Second)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDecodeWrongSecret(t *testing.T) {
	issuer := newCodec(t, "secret-one", "HS256")
	verifier := newCodec(t, "secret-two", "HS256")

	token, err := issuer.Issue("subject-1", time.Minute)
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDecodeAlgorithmMismatch(t *testing.T) {
	issuer := newCodec(t, "test-secret", "HS512")
	verifier := newCodec(t, "test-secret", "HS256")

	token, err := issuer.Issue("subject-1", time.Minute)
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDecodeMalformedToken(t *testing.T) {
	codec := newCodec(t, "test-secret", "HS256")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Decode(token)
		require.ErrorIs(t, err, auth.ErrInvalidToken, "token=%q", token)
	}
}

func TestNewTokenCodecRejectsNonHMAC(t *testing.T) {
	for _, alg := range []string{"RS256", "ES256", "none", "bogus"} {
		_, err := auth.NewTokenCodec("test-secret", alg)
		require.Error(t, err, "alg=%q", alg)
	}
}

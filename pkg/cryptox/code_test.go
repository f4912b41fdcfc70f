package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyCode(t *testing.T) {
	t.Parallel()

	hash, err := HashCode("482916")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyCode("482916", hash))
	require.ErrorIs(t, VerifyCode("482917", hash), ErrCodeMismatch)
}

func TestVerifyCodeRejectsMalformedHashes(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"not-a-hash",
		"$bcrypt$v=19$m=1,t=1,p=1$salt$hash",
		"$argon2id$v=18$m=1,t=1,p=1$salt$hash",
	}
	for _, bad := range cases {
		err := VerifyCode("123456", bad)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrCodeMismatch)
	}
}

func TestHashCodeProducesUniqueSalts(t *testing.T) {
	t.Parallel()

	a, err := HashCode("000000")
	require.NoError(t, err)
	b, err := HashCode("000000")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.Len(t, tok, 43)

	_, err = GenerateToken(0)
	require.Error(t, err)

	require.Equal(t, FingerprintToken(tok), FingerprintToken(tok))
	require.NotEqual(t, FingerprintToken(tok), FingerprintToken(tok+"x"))
}

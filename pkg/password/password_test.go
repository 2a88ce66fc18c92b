package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestioncom-api/pkg/password"
)

func TestHashYVerify(t *testing.T) {
	encoded, err := password.Hash("Secreta123!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"), "formato PHC argon2id")

	ok, err := password.Verify("Secreta123!", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = password.Verify("otra-clave", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Dos hashes del mismo password difieren (salt aleatorio).
func TestHash_SaltAleatorio(t *testing.T) {
	a, err := password.Hash("Secreta123!")
	require.NoError(t, err)
	b, err := password.Hash("Secreta123!")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerify_HashMalformado(t *testing.T) {
	_, err := password.Verify("x", "no-es-un-hash")
	assert.ErrorIs(t, err, password.ErrHashMalformed)

	_, err = password.Verify("x", "$bcrypt$algo$raro")
	assert.ErrorIs(t, err, password.ErrHashMalformed)
}

package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/streetwear-admin-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestJWT_GenerateAndParse(t *testing.T) {
	id := pkgjwt.Identity{UID: "uid-1", Email: "ops@drop.test", Role: pkgjwt.RoleAdmin}
	tok, err := pkgjwt.Generate(testSecret, "identity-test", id, 60)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(testSecret, "identity-test", tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWT_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "", pkgjwt.Identity{UID: "uid-1"}, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, "", tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretOEmisorIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "identity-test", pkgjwt.Identity{UID: "uid-1"}, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", "identity-test", tok)
	assert.Error(t, err)

	_, err = pkgjwt.Parse(testSecret, "otro-emisor", tok)
	assert.Error(t, err)
}

func TestJWT_SinUID(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "", pkgjwt.Identity{Email: "x@y.z"}, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, "", tok)
	assert.Error(t, err)
}
